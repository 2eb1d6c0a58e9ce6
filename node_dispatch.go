package texturegraph

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/logger"
	"github.com/xaionaro-go/texturegraph/render"
	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
)

// UniformRotation is the uniform the rotation pre-pass receives its
// types.Rotation through.
const UniformRotation = "rotation"

// SendInputTexture delivers a texture into an input slot. A new
// texture for an already-filled slot overwrites (and releases) the
// previous one; only the most recent frame per slot participates in a
// dispatch.
//
// Once every slot is filled (or the passthrough bootstrap is armed)
// the node dispatches exactly one draw, purges transient inputs and
// forwards the output to every downstream target. The per-node lock
// is held across accumulation and dispatch, but dropped around the
// fan-out call, which may recurse into arbitrarily deep subgraphs.
func (n *OperationNode) SendInputTexture(
	ctx context.Context,
	tex *texture.Texture,
	slotIndex int,
) {
	logger.Tracef(ctx, "SendInputTexture[%s]: slot:%d: %s", n, slotIndex, tex)
	defer func() { logger.Tracef(ctx, "/SendInputTexture[%s]: slot:%d", n, slotIndex) }()
	assert(ctx, tex != nil, "tex != nil")
	assert(
		ctx,
		slotIndex >= 0 && slotIndex < len(n.InputSlots),
		"slot index is within bounds", slotIndex, len(n.InputSlots),
	)

	n.Received.Add(1)
	n.Locker.Do(ctx, func() {
		if old := n.InputSlots[slotIndex]; old != nil {
			old.Release()
		} else {
			n.filledCount++
		}
		n.InputSlots[slotIndex] = tex

		if n.filledCount < len(n.InputSlots) && !n.PassthroughNext {
			// still accumulating
			return
		}
		n.dispatchLocked(ctx)
	})
}

func (n *OperationNode) dispatchLocked(ctx context.Context) {
	primary := n.InputSlots[0]
	assert(ctx, primary != nil, "slot 0 must be filled at dispatch time", n.String())

	outputOrientation := primary.Orientation
	if n.Config.OutputOrientation != nil {
		outputOrientation = *n.Config.OutputOrientation
	}

	outputSize := primary.Size
	if n.Config.MaxOutputSize.IsUsable() {
		if resized := n.Config.ResizePolicy.Apply(outputSize, n.Config.MaxOutputSize); !resized.IsZero() {
			outputSize = resized.Ceil()
		}
	}

	uniforms := n.Config.Uniforms.Clone()
	if n.Config.AspectRatioUniform != "" {
		if uniforms == nil {
			uniforms = render.Uniforms{}
		}
		rotation := primary.Orientation.RotationTo(outputOrientation)
		uniforms[n.Config.AspectRatioUniform] = primary.AspectRatio(rotation)
	}

	output, err := n.Backend.AllocateTexture(ctx, outputOrientation, outputSize, primary.Timing)
	if err != nil {
		logger.Debugf(ctx, "dropping the frame: unable to allocate the output texture: %v", err)
		n.Dropped.Add(1)
		return
	}

	if n.PassthroughNext {
		// seed a feedback cycle with a placeholder frame: no draw
		n.PassthroughNext = false
		n.Passthroughs.Add(1)
		n.purgeTransientsLocked(ctx)
		n.forwardWithoutLock(ctx, output)
		return
	}

	if !n.drawLocked(ctx, uniforms, output) {
		return
	}
	n.Dispatched.Add(1)
	n.purgeTransientsLocked(ctx)
	n.forwardWithoutLock(ctx, output)
}

// drawLocked submits exactly one draw for the current slot snapshot.
// It reports whether the submission happened; on any transient
// failure the frame is dropped silently (a live pipeline prefers
// skipping a frame over retrying a stale one).
func (n *OperationNode) drawLocked(
	ctx context.Context,
	uniforms render.Uniforms,
	output *texture.Texture,
) bool {
	cb, err := n.Backend.Begin(ctx)
	if err != nil {
		logger.Debugf(ctx, "dropping the frame: unable to acquire a command buffer: %v", err)
		n.Dropped.Add(1)
		return false
	}

	inputs := make([]*texture.Texture, 0, len(n.InputSlots))
	for _, tex := range n.InputSlots {
		if tex != nil {
			inputs = append(inputs, tex)
		}
	}

	var scratch *texture.Texture
	if routine := n.Config.Accelerated; routine != nil && routine.IsAvailable(ctx) {
		rotation := inputs[0].Orientation.RotationTo(routine.CanonicalOrientation())
		if !rotation.IsIdentity() {
			scratch, err = n.rotationPrePass(ctx, cb, inputs[0], rotation)
			if err != nil {
				logger.Debugf(ctx, "dropping the frame: %v", err)
				n.Dropped.Add(1)
				return false
			}
			inputs[0] = scratch
		}
		err = routine.Render(ctx, cb, inputs, uniforms, output)
	} else {
		err = cb.Draw(ctx, n.Program, inputs, uniforms, output)
	}
	if scratch != nil {
		scratch.Release()
	}
	if err != nil {
		logger.Debugf(ctx, "dropping the frame: draw submission failed: %v", err)
		n.Dropped.Add(1)
		return false
	}

	cb.Commit(ctx)
	return true
}

// rotationPrePass renders the slot-0 texture into a scratch texture in
// the canonical orientation the accelerated routine expects. The
// scratch texture is transient: it substitutes slot 0 for this one
// draw only and never propagates downstream.
//
// TODO: cover orientation pairs that both rotate and mirror; only
// pure quarter-turn rotations are exercised by the current tests.
func (n *OperationNode) rotationPrePass(
	ctx context.Context,
	cb render.CommandBuffer,
	src *texture.Texture,
	rotation types.Rotation,
) (*texture.Texture, error) {
	logger.Tracef(ctx, "rotationPrePass[%s]: %s", n, rotation)
	size := src.Size
	if rotation.SwapsDimensions() {
		size = size.Swapped()
	}
	scratch, err := n.Backend.AllocateTexture(
		ctx,
		n.Config.Accelerated.CanonicalOrientation(),
		size,
		types.TransientTiming(),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate the scratch texture: %w", err)
	}
	err = cb.Draw(
		ctx,
		n.Config.RotateProgram,
		[]*texture.Texture{src},
		render.Uniforms{UniformRotation: rotation},
		scratch,
	)
	if err != nil {
		scratch.Release()
		return nil, fmt.Errorf("unable to render the rotation pass: %w", err)
	}
	return scratch, nil
}

func (n *OperationNode) purgeTransientsLocked(ctx context.Context) {
	for idx, tex := range n.InputSlots {
		if tex == nil || !tex.Timing.IsTransient {
			continue
		}
		logger.Tracef(ctx, "purging the transient texture in slot %d", idx)
		tex.Release()
		n.InputSlots[idx] = nil
		n.filledCount--
		n.Purged.Add(1)
	}
}

// forwardWithoutLock fans the output texture out to every downstream
// target. The caller holds the lock; it is dropped for the duration of
// the fan-out (downstream dispatch can be long and can even recurse
// back into this node through a feedback edge) and reacquired before
// returning.
func (n *OperationNode) forwardWithoutLock(ctx context.Context, output *texture.Texture) {
	pushTos := n.PushTos
	n.Locker.UDo(ctx, func() {
		for _, pushTo := range pushTos {
			if pushTo.Condition != nil && !pushTo.Condition.Match(ctx, output) {
				logger.Tracef(ctx, "push condition %s was not met", pushTo.Condition)
				continue
			}
			n.Forwarded.Add(1)
			pushTo.Node.SendInputTexture(ctx, output, pushTo.SlotIndex)
		}
	})
}
