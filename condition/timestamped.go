package condition

import (
	"context"

	"github.com/xaionaro-go/texturegraph/texture"
)

// Timestamped matches textures that may be retained across draws
// (i.e. everything except transient ones).
type Timestamped struct{}

var _ Condition = (*Timestamped)(nil)

func (Timestamped) String() string {
	return "Timestamped"
}

func (Timestamped) Match(ctx context.Context, tex *texture.Texture) bool {
	return !tex.Timing.IsTransient
}
