// Package texture defines the handle that flows between operation
// nodes: an opaque GPU image together with its orientation, size and
// timing classification.
package texture

import (
	"fmt"

	"github.com/xaionaro-go/texturegraph/types"
)

// Image is the backend-owned GPU resource behind a Texture. The core
// never looks inside it; it only releases it when the texture is
// purged or overwritten.
type Image interface {
	Release()
}

type Texture struct {
	Image       Image
	Size        types.Size
	Orientation types.Orientation
	Timing      types.Timing
}

func New(
	img Image,
	size types.Size,
	orientation types.Orientation,
	timing types.Timing,
) *Texture {
	return &Texture{
		Image:       img,
		Size:        size,
		Orientation: orientation,
		Timing:      timing,
	}
}

func (t *Texture) String() string {
	return fmt.Sprintf("Texture(%s, %s, %s)", t.Size, t.Orientation, t.Timing)
}

// AspectRatio returns height/width after applying the given rotation
// (the ratio the vertex stage needs to keep the image undistorted).
func (t *Texture) AspectRatio(rotation types.Rotation) float64 {
	if !t.Size.IsUsable() {
		return 1
	}
	if rotation.SwapsDimensions() {
		return t.Size.Width / t.Size.Height
	}
	return t.Size.Height / t.Size.Width
}

// Release frees the underlying image. It is safe to call on a texture
// without an image (e.g. one produced by a test backend).
func (t *Texture) Release() {
	if t == nil || t.Image == nil {
		return
	}
	t.Image.Release()
}
