// Package delay implements the bounded reorder/delay buffer the
// capture source uses to keep video and audio delivery lip-synced.
//
// Video samples are staged until the buffer has seen `capacity` of
// them; until then nothing is released and audio is held back
// entirely. Once the window has been filled (the "capacity reached"
// latch), every push immediately releases the oldest staged sample of
// the same kind, so steady-state adds a fixed constant delay and no
// extra latency jitter.
package delay

import (
	"context"

	"github.com/xaionaro-go/texturegraph/logger"
	"github.com/xaionaro-go/texturegraph/types"
	"github.com/xaionaro-go/typing"
	"github.com/xaionaro-go/xsync"
)

type Buffer[T any] struct {
	Locker xsync.Mutex

	capacity        uint
	capacityReached bool
	video           []T
	audio           []T
}

func New[T any](capacity uint) *Buffer[T] {
	return &Buffer[T]{
		capacity: capacity,
	}
}

// Push stages an item and returns the item released by this push
// (if any). With capacity zero the buffer is a passthrough and the
// pushed item is returned as is.
func (b *Buffer[T]) Push(
	ctx context.Context,
	item T,
	kind types.MediaKind,
) typing.Optional[T] {
	return xsync.DoA2R1(ctx, &b.Locker, b.push, item, kind)
}

func (b *Buffer[T]) push(
	item T,
	kind types.MediaKind,
) typing.Optional[T] {
	if b.capacity == 0 {
		return typing.Opt(item)
	}

	switch kind {
	case types.MediaKindVideo:
		b.video = append(b.video, item)
		if !b.capacityReached {
			if uint(len(b.video)) < b.capacity {
				return typing.Optional[T]{}
			}
			b.capacityReached = true
		}
		return b.popOldest(&b.video)
	case types.MediaKindAudio:
		b.audio = append(b.audio, item)
		if !b.capacityReached {
			return typing.Optional[T]{}
		}
		return b.popOldest(&b.audio)
	}
	return typing.Optional[T]{}
}

func (b *Buffer[T]) popOldest(queue *[]T) typing.Optional[T] {
	if len(*queue) == 0 {
		return typing.Optional[T]{}
	}
	item := (*queue)[0]
	var zeroValue T
	(*queue)[0] = zeroValue
	*queue = (*queue)[1:]
	return typing.Opt(item)
}

// Reset discards everything staged and re-opens the initial buffering
// window.
func (b *Buffer[T]) Reset(ctx context.Context) {
	logger.Debugf(ctx, "Reset")
	b.Locker.Do(ctx, b.reset)
}

func (b *Buffer[T]) reset() {
	b.video = nil
	b.audio = nil
	b.capacityReached = false
}

// SetCapacity reconfigures the lookahead window. Items staged under
// the old capacity are no longer valid under the new one, so this is
// also a Reset.
func (b *Buffer[T]) SetCapacity(ctx context.Context, capacity uint) {
	logger.Debugf(ctx, "SetCapacity(%d)", capacity)
	b.Locker.Do(ctx, func() {
		b.capacity = capacity
		b.reset()
	})
}

func (b *Buffer[T]) Capacity(ctx context.Context) uint {
	return xsync.DoR1(ctx, &b.Locker, func() uint {
		return b.capacity
	})
}

// Len returns how many items are currently staged per kind.
func (b *Buffer[T]) Len(ctx context.Context) (video, audio uint) {
	b.Locker.Do(ctx, func() {
		video = uint(len(b.video))
		audio = uint(len(b.audio))
	})
	return
}
