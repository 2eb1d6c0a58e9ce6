package condition

import (
	"context"
	"fmt"
	"strings"

	"github.com/xaionaro-go/texturegraph/texture"
)

type And []Condition

var _ Condition = (And)(nil)

func (s And) String() string {
	var result []string
	for _, cond := range s {
		result = append(result, cond.String())
	}
	return fmt.Sprintf("(%s)", strings.Join(result, "&"))
}

func (s And) Match(
	ctx context.Context,
	tex *texture.Texture,
) bool {
	for _, item := range s {
		if !item.Match(ctx, tex) {
			return false
		}
	}
	return true
}
