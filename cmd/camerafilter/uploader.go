package main

import (
	"context"

	"github.com/xaionaro-go/texturegraph/capture"
	"github.com/xaionaro-go/texturegraph/render"
	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
	"gocv.io/x/gocv"
)

// matUploader turns captured frames into textures of the demo backend.
// A real GPU uploader would also copy the pixel data; the recording
// backend only needs the geometry.
type matUploader struct {
	backend render.Backend
}

var _ capture.FrameUploader = (*matUploader)(nil)

func newMatUploader(backend render.Backend) *matUploader {
	return &matUploader{backend: backend}
}

func (u *matUploader) UploadFrame(
	ctx context.Context,
	mat *gocv.Mat,
	orientation types.Orientation,
	timing types.Timing,
) (*texture.Texture, error) {
	return u.backend.AllocateTexture(
		ctx,
		orientation,
		types.SizeOf(float64(mat.Cols()), float64(mat.Rows())),
		timing,
	)
}
