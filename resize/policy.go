// Package resize contains the pure geometry policies used to fit a
// source texture into a destination bound.
package resize

import (
	"fmt"
	"math"

	"github.com/xaionaro-go/texturegraph/types"
)

type Policy int

const (
	// PolicyFill stretches the source to the bound exactly; the aspect
	// ratio is not preserved.
	PolicyFill Policy = iota

	// PolicyAspectFit scales the source uniformly so that it fits
	// entirely inside the bound.
	PolicyAspectFit

	// PolicyAspectFill scales the source uniformly so that it covers
	// the whole bound; the result may exceed the bound in one dimension.
	PolicyAspectFill

	EndOfPolicy
)

func (p Policy) String() string {
	switch p {
	case PolicyFill:
		return "fill"
	case PolicyAspectFit:
		return "aspect_fit"
	case PolicyAspectFill:
		return "aspect_fill"
	}
	return fmt.Sprintf("unexpected_policy_%d", int(p))
}

func PolicyFromString(s string) (Policy, error) {
	for p := PolicyFill; p < EndOfPolicy; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return EndOfPolicy, fmt.Errorf("unknown resize policy '%s'", s)
}

// Apply computes the output size for the given source size and
// destination bound. If either input has a non-positive or non-finite
// dimension, the zero size is returned to signal that the policy is
// not applicable.
func (p Policy) Apply(source, bound types.Size) types.Size {
	if !source.IsUsable() || !bound.IsUsable() {
		return types.Size{}
	}

	switch p {
	case PolicyFill:
		return bound
	case PolicyAspectFit:
		scale := math.Min(bound.Width/source.Width, bound.Height/source.Height)
		return types.Size{Width: source.Width * scale, Height: source.Height * scale}
	case PolicyAspectFill:
		scale := math.Max(bound.Width/source.Width, bound.Height/source.Height)
		return types.Size{Width: source.Width * scale, Height: source.Height * scale}
	}
	return types.Size{}
}
