// Package rendertest provides a recording in-memory implementation of
// render.Backend for tests and demos.
package rendertest

import (
	"context"

	"github.com/xaionaro-go/texturegraph/render"
	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
	"github.com/xaionaro-go/xsync"
)

// Image is the fake GPU resource; it only remembers whether it was
// released.
type Image struct {
	Released bool
}

var _ texture.Image = (*Image)(nil)

func (img *Image) Release() {
	img.Released = true
}

// DrawCall is one recorded draw submission.
type DrawCall struct {
	Program  render.Program
	Inputs   []*texture.Texture
	Uniforms render.Uniforms
	Output   *texture.Texture
}

// Backend records every allocation and draw. The *Err fields inject
// failures into the corresponding calls (used to exercise the
// drop-frame paths).
type Backend struct {
	Locker xsync.Mutex

	Allocated []*texture.Texture
	Draws     []DrawCall
	Commits   int

	AllocateErr error
	BeginErr    error
	DrawErr     error
}

var _ render.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func (b *Backend) AllocateTexture(
	ctx context.Context,
	orientation types.Orientation,
	size types.Size,
	timing types.Timing,
) (_ *texture.Texture, _err error) {
	var tex *texture.Texture
	b.Locker.Do(ctx, func() {
		if b.AllocateErr != nil {
			_err = b.AllocateErr
			return
		}
		tex = texture.New(&Image{}, size, orientation, timing)
		b.Allocated = append(b.Allocated, tex)
	})
	return tex, _err
}

func (b *Backend) Begin(ctx context.Context) (_ render.CommandBuffer, _err error) {
	var cb render.CommandBuffer
	b.Locker.Do(ctx, func() {
		if b.BeginErr != nil {
			_err = b.BeginErr
			return
		}
		cb = &commandBuffer{backend: b}
	})
	return cb, _err
}

type commandBuffer struct {
	backend *Backend
}

var _ render.CommandBuffer = (*commandBuffer)(nil)

func (cb *commandBuffer) Draw(
	ctx context.Context,
	program render.Program,
	inputs []*texture.Texture,
	uniforms render.Uniforms,
	output *texture.Texture,
) error {
	b := cb.backend
	return xsync.DoR1(ctx, &b.Locker, func() error {
		if b.DrawErr != nil {
			return b.DrawErr
		}
		inputsCopy := make([]*texture.Texture, len(inputs))
		copy(inputsCopy, inputs)
		b.Draws = append(b.Draws, DrawCall{
			Program:  program,
			Inputs:   inputsCopy,
			Uniforms: uniforms.Clone(),
			Output:   output,
		})
		return nil
	})
}

func (cb *commandBuffer) Commit(ctx context.Context) {
	b := cb.backend
	b.Locker.Do(ctx, func() {
		b.Commits++
	})
}

// Program is a named fake shader program.
type Program string

var _ render.Program = (Program)("")

func (p Program) String() string {
	return string(p)
}
