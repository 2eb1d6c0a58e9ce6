package texturegraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/texturegraph/logger"
)

// Traverse walks every node reachable from the given roots (each node
// once, cycles included) and invokes the callback on it.
func Traverse[T Abstract](
	ctx context.Context,
	callback func(ctx context.Context, node Abstract) error,
	nodes ...T,
) (_err error) {
	logger.Debugf(ctx, "Traverse: %v", nodes)
	defer func() { logger.Debugf(ctx, "/Traverse: %v: %v", nodes, _err) }()

	visited := map[Abstract]struct{}{}
	var errs []error
	var walk func(n Abstract)
	walk = func(n Abstract) {
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		if err := callback(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("the callback returned an error on '%v': %w", n, err))
		}
		pusher, ok := n.(GetPushToser)
		if !ok {
			return
		}
		for _, pushTo := range pusher.GetPushTos() {
			walk(pushTo.Node)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return errors.Join(errs...)
}
