package condition

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/texture"
)

type Not struct {
	Condition Condition
}

var _ Condition = (*Not)(nil)

func (v Not) String() string {
	return fmt.Sprintf("Not(%s)", v.Condition)
}

func (v Not) Match(ctx context.Context, tex *texture.Texture) bool {
	return !v.Condition.Match(ctx, tex)
}
