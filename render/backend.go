// Package render abstracts the GPU backend the graph renders through.
//
// The backend is passed explicitly to every node instead of being a
// process-wide singleton, so tests (and whole graphs) can substitute
// their own implementation.
package render

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
)

// Program is an opaque handle to a compiled shader program. Shader
// compilation is the backend's business; the core only forwards the
// handle into draw submissions.
type Program interface {
	fmt.Stringer
}

// Uniforms is the uniform parameter set of a single draw.
type Uniforms map[string]any

// Clone returns a shallow copy, so per-dispatch values (e.g. the
// aspect ratio) do not leak into the node's base uniform set.
func (u Uniforms) Clone() Uniforms {
	if u == nil {
		return nil
	}
	result := make(Uniforms, len(u))
	for k, v := range u {
		result[k] = v
	}
	return result
}

// Backend is the rendering device. Both methods may fail transiently;
// per the drop-frame policy the caller skips the frame instead of
// retrying.
type Backend interface {
	AllocateTexture(
		ctx context.Context,
		orientation types.Orientation,
		size types.Size,
		timing types.Timing,
	) (*texture.Texture, error)

	Begin(ctx context.Context) (CommandBuffer, error)
}

// CommandBuffer collects draw submissions. Submission order to the
// underlying queue is the Commit order; execution is asynchronous.
type CommandBuffer interface {
	Draw(
		ctx context.Context,
		program Program,
		inputs []*texture.Texture,
		uniforms Uniforms,
		output *texture.Texture,
	) error

	Commit(ctx context.Context)
}
