package types

import (
	"fmt"
)

// Orientation describes how the pixel data of a texture is rotated
// and/or mirrored relative to its presentation orientation.
type Orientation int

const (
	OrientationUp Orientation = iota
	OrientationRight
	OrientationDown
	OrientationLeft
	OrientationUpMirrored
	OrientationRightMirrored
	OrientationDownMirrored
	OrientationLeftMirrored
	EndOfOrientation
)

func (o Orientation) String() string {
	switch o {
	case OrientationUp:
		return "up"
	case OrientationRight:
		return "right"
	case OrientationDown:
		return "down"
	case OrientationLeft:
		return "left"
	case OrientationUpMirrored:
		return "up_mirrored"
	case OrientationRightMirrored:
		return "right_mirrored"
	case OrientationDownMirrored:
		return "down_mirrored"
	case OrientationLeftMirrored:
		return "left_mirrored"
	}
	return fmt.Sprintf("unexpected_orientation_%d", int(o))
}

func (o Orientation) quarterTurns() int {
	switch o {
	case OrientationUp, OrientationUpMirrored:
		return 0
	case OrientationRight, OrientationRightMirrored:
		return 1
	case OrientationDown, OrientationDownMirrored:
		return 2
	case OrientationLeft, OrientationLeftMirrored:
		return 3
	}
	return 0
}

// IsMirrored reports whether the orientation includes a horizontal flip.
func (o Orientation) IsMirrored() bool {
	switch o {
	case OrientationUpMirrored, OrientationRightMirrored,
		OrientationDownMirrored, OrientationLeftMirrored:
		return true
	}
	return false
}

// RotationTo returns the rotation that maps pixel data in orientation `o`
// onto orientation `target`.
func (o Orientation) RotationTo(target Orientation) Rotation {
	return Rotation{
		QuarterTurns: (target.quarterTurns() - o.quarterTurns() + 4) % 4,
		Mirrored:     o.IsMirrored() != target.IsMirrored(),
	}
}

// Rotation is the transform needed to re-orient pixel data:
// a number of clockwise quarter turns, optionally followed by
// a horizontal flip.
type Rotation struct {
	QuarterTurns int
	Mirrored     bool
}

func (r Rotation) String() string {
	s := fmt.Sprintf("rotate%d", r.QuarterTurns*90)
	if r.Mirrored {
		s += "_mirrored"
	}
	return s
}

// IsIdentity reports whether the rotation leaves pixel data untouched.
func (r Rotation) IsIdentity() bool {
	return r.QuarterTurns == 0 && !r.Mirrored
}

// SwapsDimensions reports whether applying the rotation exchanges
// width and height.
func (r Rotation) SwapsDimensions() bool {
	return r.QuarterTurns%2 == 1
}
