// Package condition provides predicates that gate texture deliveries
// on the fan-out edges of a graph.
package condition

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/texture"
)

type Condition interface {
	fmt.Stringer
	Match(context.Context, *texture.Texture) bool
}
