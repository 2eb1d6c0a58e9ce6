package condition

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/texture"
)

type Function func(context.Context, *texture.Texture) bool

var _ Condition = (Function)(nil)

func (fn Function) String() string {
	return fmt.Sprintf("<custom_function:%p>", fn)
}

func (fn Function) Match(ctx context.Context, tex *texture.Texture) bool {
	return fn(ctx, tex)
}
