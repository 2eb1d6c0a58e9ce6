package texturegraph

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/texturegraph/render/rendertest"
	"github.com/xaionaro-go/texturegraph/resize"
	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
)

func newTestTexture(
	size types.Size,
	orientation types.Orientation,
	timing types.Timing,
) *texture.Texture {
	return texture.New(&rendertest.Image{}, size, orientation, timing)
}

func TestNodeAccumulatesUntilAllSlotsFilled(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("blend"), "blend", 2)
	sink := NewSink("out", nil)
	n.AddPushTo(sink, 0)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.Empty(t, backend.Draws, "must not dispatch with only slot 0 filled")

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 1)
	require.Len(t, backend.Draws, 1)
	require.Equal(t, 1, backend.Commits)
	require.EqualValues(t, 1, sink.Received.Load())
}

func TestNodeDispatchesOncePerInputPair(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("blend"), "blend", 2)

	for i := 0; i < 3; i++ {
		n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
		n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 1)
	}
	require.Len(t, backend.Draws, 3)
	require.EqualValues(t, 3, n.Dispatched.Load())
}

func TestNodeTransientSlotRequiredAgain(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("blend"), "blend", 2)

	slot1 := newTestTexture(types.SizeOf(64, 64), types.OrientationUp, types.TransientTiming())
	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	n.SendInputTexture(ctx, slot1, 1)
	require.Len(t, backend.Draws, 1)
	require.True(t, slot1.Image.(*rendertest.Image).Released, "transient slot must be purged after the draw")

	// slot 1 was transient, so the next slot-0 delivery alone must not dispatch
	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.Len(t, backend.Draws, 1)
}

func TestNodeNonTransientSlotRetainedAcrossFrames(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("blend"), "blend", 2)

	overlay := newTestTexture(types.SizeOf(64, 64), types.OrientationUp, types.TimestampedTiming(0))
	n.SendInputTexture(ctx, overlay, 1)
	require.Empty(t, backend.Draws)

	// a constant overlay in slot 1 survives; every slot-0 delivery dispatches
	for i := 1; i <= 3; i++ {
		n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
		require.Len(t, backend.Draws, i)
	}
	require.False(t, overlay.Image.(*rendertest.Image).Released)
}

func TestNodeSlotOverwriteReleasesPrevious(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("blend"), "blend", 2)

	first := newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming())
	second := newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming())
	n.SendInputTexture(ctx, first, 0)
	n.SendInputTexture(ctx, second, 0)
	require.True(t, first.Image.(*rendertest.Image).Released)
	require.Empty(t, backend.Draws)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(64, 64), types.OrientationUp, types.TransientTiming()), 1)
	require.Len(t, backend.Draws, 1)
	require.Same(t, second, backend.Draws[0].Inputs[0])
}

func TestNodePassthroughBootstrap(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("lowpass"), "lowpass", 2)
	var received []*texture.Texture
	sink := NewSink("out", func(ctx context.Context, tex *texture.Texture) {
		received = append(received, tex)
	})
	n.AddPushTo(sink, 0)

	n.SetPassthroughOnNextFrame(ctx)
	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TimestampedTiming(0)), 0)

	// exactly one output was produced without any draw
	require.Empty(t, backend.Draws)
	require.Zero(t, backend.Commits)
	require.Len(t, received, 1)
	require.Len(t, backend.Allocated, 1)
	require.EqualValues(t, 1, n.Passthroughs.Load())

	// the flag is one-shot: the second delivery behaves normally
	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(64, 64), types.OrientationUp, types.TransientTiming()), 1)
	require.Len(t, backend.Draws, 1)
	require.Len(t, received, 2)
}

func TestNodePassthroughPurgesTransientInputs(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("lowpass"), "lowpass", 2)
	sink := NewSink("out", nil)
	n.AddPushTo(sink, 0)

	n.SetPassthroughOnNextFrame(ctx)
	transient := newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming())
	n.SendInputTexture(ctx, transient, 0)

	require.EqualValues(t, 1, n.Passthroughs.Load())
	require.True(t, transient.Image.(*rendertest.Image).Released, "transient slot 0 must be purged by the passthrough dispatch")
	require.EqualValues(t, 1, n.Purged.Load())

	// the purged slot must fill again: a slot-1-only delivery keeps
	// accumulating instead of drawing with a stale frame
	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TimestampedTiming(33)), 1)
	require.Empty(t, backend.Draws)
	require.EqualValues(t, 1, sink.Received.Load())
}

func TestNodeOutputGeometryFollowsSlot0(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(1280, 720), types.OrientationLeft, types.TimestampedTiming(42)), 0)
	require.Len(t, backend.Draws, 1)
	out := backend.Draws[0].Output
	require.Equal(t, types.SizeOf(1280, 720), out.Size)
	require.Equal(t, types.OrientationLeft, out.Orientation)
	require.Equal(t, types.TimestampedTiming(42), out.Timing)
}

func TestNodeResizePolicyBoundsOutput(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(
		ctx, backend, rendertest.Program("sepia"), "sepia", 1,
		OptionResizePolicy(resize.PolicyAspectFit),
		OptionMaxOutputSize(types.SizeOf(500, 500)),
	)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(1920, 1080), types.OrientationUp, types.TransientTiming()), 0)
	require.Len(t, backend.Draws, 1)
	// 1920x1080 fit into 500x500 is 500x281.25, rounded up per dimension
	require.Equal(t, types.SizeOf(500, 282), backend.Draws[0].Output.Size)
}

func TestNodeAspectRatioUniform(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(
		ctx, backend, rendertest.Program("sepia"), "sepia", 1,
		OptionAspectRatioUniform("aspectRatio"),
		OptionOutputOrientation(types.OrientationUp),
	)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(1920, 1080), types.OrientationRight, types.TransientTiming()), 0)
	require.Len(t, backend.Draws, 1)
	// rotating right->up swaps dimensions: the ratio becomes w/h
	require.InDelta(t, 1920.0/1080.0, backend.Draws[0].Uniforms["aspectRatio"], 1e-9)

	backend2 := rendertest.New()
	n2 := NewOperationNode(
		ctx, backend2, rendertest.Program("sepia"), "sepia", 1,
		OptionAspectRatioUniform("aspectRatio"),
	)
	n2.SendInputTexture(ctx, newTestTexture(types.SizeOf(1920, 1080), types.OrientationUp, types.TransientTiming()), 0)
	require.InDelta(t, 1080.0/1920.0, backend2.Draws[0].Uniforms["aspectRatio"], 1e-9)
}

func TestNodeDropsFrameOnCommandBufferFailure(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	backend.BeginErr = fmt.Errorf("device is busy")
	n := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)
	sink := NewSink("out", nil)
	n.AddPushTo(sink, 0)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.Empty(t, backend.Draws)
	require.Zero(t, sink.Received.Load())
	require.EqualValues(t, 1, n.Dropped.Load())

	// recovery: the next delivery goes through
	backend.BeginErr = nil
	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.Len(t, backend.Draws, 1)
	require.EqualValues(t, 1, sink.Received.Load())
}

func TestNodeDropsFrameOnAllocationFailure(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	backend.AllocateErr = fmt.Errorf("out of device memory")
	n := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.Empty(t, backend.Draws)
	require.EqualValues(t, 1, n.Dropped.Load())
}

func TestNodeFanOut(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)
	sinkA := NewSink("a", nil)
	sinkB := NewSink("b", nil)
	n.AddPushTo(sinkA, 0)
	n.AddPushTo(sinkB, 0)

	n.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.EqualValues(t, 1, sinkA.Received.Load())
	require.EqualValues(t, 1, sinkB.Received.Load())
	require.EqualValues(t, 2, n.Forwarded.Load())
}

func TestNodeChainRecursiveDispatch(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	first := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)
	second := NewOperationNode(ctx, backend, rendertest.Program("invert"), "invert", 1)
	sink := NewSink("out", nil)
	first.AddPushTo(second, 0)
	second.AddPushTo(sink, 0)

	first.SendInputTexture(ctx, newTestTexture(types.SizeOf(640, 480), types.OrientationUp, types.TransientTiming()), 0)
	require.Len(t, backend.Draws, 2)
	require.EqualValues(t, 1, sink.Received.Load())
}

func TestNodeConcurrentDeliveries(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)
	sink := NewSink("out", nil)
	n.AddPushTo(sink, 0)

	const producers = 8
	const perProducer = 50
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				n.SendInputTexture(ctx, newTestTexture(types.SizeOf(64, 64), types.OrientationUp, types.TransientTiming()), 0)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, producers*perProducer, n.Received.Load())
	require.EqualValues(t, producers*perProducer, n.Dispatched.Load())
	require.Len(t, backend.Draws, producers*perProducer)
}

func TestNodeSendToInvalidSlotPanics(t *testing.T) {
	ctx := context.Background()
	backend := rendertest.New()
	n := NewOperationNode(ctx, backend, rendertest.Program("sepia"), "sepia", 1)
	require.Panics(t, func() {
		n.SendInputTexture(ctx, newTestTexture(types.SizeOf(64, 64), types.OrientationUp, types.TransientTiming()), 1)
	})
}
