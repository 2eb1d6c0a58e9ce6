package types

import (
	"fmt"
	"math"
)

// Size is a 2D extent in pixels. Fractional values are allowed in
// intermediate computations (e.g. while applying a resize policy);
// they are rounded up only at texture-allocation time.
type Size struct {
	Width  float64
	Height float64
}

func SizeOf(width, height float64) Size {
	return Size{Width: width, Height: height}
}

func (s Size) String() string {
	return fmt.Sprintf("%.0fx%.0f", s.Width, s.Height)
}

// IsZero reports whether the size is the zero value, which is used
// throughout the package as a "no size / not applicable" sentinel.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// IsUsable reports whether both dimensions are finite and positive.
func (s Size) IsUsable() bool {
	return isUsableDimension(s.Width) && isUsableDimension(s.Height)
}

func isUsableDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Swapped returns the size with width and height exchanged.
func (s Size) Swapped() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// Ceil rounds each dimension up to the next integer.
func (s Size) Ceil() Size {
	return Size{Width: math.Ceil(s.Width), Height: math.Ceil(s.Height)}
}
