// Package capture reads frames from a camera device and feeds them,
// paced by the lip-sync delay buffer, into the entry node of a
// texture graph.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/asticode/go-astikit"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/texturegraph"
	"github.com/xaionaro-go/texturegraph/delay"
	"github.com/xaionaro-go/texturegraph/helpers/closuresignaler"
	"github.com/xaionaro-go/texturegraph/logger"
	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
	"github.com/xaionaro-go/xcontext"
	"go.uber.org/atomic"
	"gocv.io/x/gocv"
)

// FrameUploader converts a raw captured frame into a GPU texture.
// It is the boundary between the capture device and the rendering
// backend (e.g. an RGB upload pass or a YUV conversion pass).
type FrameUploader interface {
	UploadFrame(
		ctx context.Context,
		mat *gocv.Mat,
		orientation types.Orientation,
		timing types.Timing,
	) (*texture.Texture, error)
}

// AudioChunk is a block of captured audio samples.
type AudioChunk struct {
	Data []byte
	PTS  time.Duration
}

// AudioSampler produces audio chunks; ReadChunk blocks until a chunk
// is available or the context is cancelled.
type AudioSampler interface {
	ReadChunk(ctx context.Context) (*AudioChunk, error)
}

// Sample is what goes through the delay buffer: either a video
// texture or an audio chunk.
type Sample struct {
	Kind    types.MediaKind
	Texture *texture.Texture
	Audio   *AudioChunk
}

type Config struct {
	// Orientation tags every uploaded frame (e.g. front camera on a
	// rotated device).
	Orientation types.Orientation

	// DelayCapacity is the lookahead window of the lip-sync buffer;
	// zero disables buffering.
	DelayCapacity uint

	// AudioSampler is optional; without it the source is video-only.
	AudioSampler AudioSampler

	// AudioOutput receives released audio chunks.
	AudioOutput func(ctx context.Context, chunk *AudioChunk)

	// DestinationSlot is the input slot of Destination that frames
	// are delivered into.
	DestinationSlot int
}

// Source owns the camera device and the goroutines draining it.
type Source struct {
	*closuresignaler.ClosureSignaler
	Uploader    FrameUploader
	Destination texturegraph.Abstract
	Delay       *delay.Buffer[Sample]
	Config      Config

	// FrameInterval throttles the capture loop; zero reads as fast as
	// the device delivers. Tunable at runtime.
	FrameInterval atomic.Duration

	cam      *gocv.VideoCapture
	closer   *astikit.Closer
	cancelFn context.CancelFunc
	startTS  time.Time
}

// New opens the camera device (a device index or a device path, as
// accepted by gocv) and starts the capture loops.
func New(
	ctx context.Context,
	deviceID any,
	uploader FrameUploader,
	dst texturegraph.Abstract,
	cfg Config,
) (_ *Source, _err error) {
	logger.Debugf(ctx, "New(%v)", deviceID)
	defer func() { logger.Debugf(ctx, "/New(%v): %v", deviceID, _err) }()

	cam, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("unable to open the capture device '%v': %w", deviceID, err)
	}

	s := &Source{
		ClosureSignaler: closuresignaler.New(),
		Uploader:        uploader,
		Destination:     dst,
		Delay:           delay.New[Sample](cfg.DelayCapacity),
		Config:          cfg,
		cam:             cam,
		closer:          astikit.NewCloser(),
	}
	s.closer.Add(func() {
		if err := cam.Close(); err != nil {
			logger.Errorf(ctx, "unable to close the capture device: %v", err)
		}
	})

	ctx, cancelFn := context.WithCancel(xcontext.DetachDone(ctx))
	s.cancelFn = cancelFn
	s.startTS = time.Now()

	observability.Go(ctx, func(ctx context.Context) {
		s.videoLoop(ctx)
	})
	if cfg.AudioSampler != nil {
		observability.Go(ctx, func(ctx context.Context) {
			s.audioLoop(ctx)
		})
	}
	return s, nil
}

func (s *Source) videoLoop(ctx context.Context) {
	logger.Debugf(ctx, "videoLoop")
	defer func() { logger.Debugf(ctx, "/videoLoop") }()

	mat := gocv.NewMat()
	defer mat.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.CloseChan():
			return
		default:
		}

		if !s.cam.Read(&mat) || mat.Empty() {
			// end of stream or a hiccup; live devices recover
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if interval := s.FrameInterval.Load(); interval > 0 {
			time.Sleep(interval)
		}

		pts := time.Since(s.startTS)
		tex, err := s.Uploader.UploadFrame(
			ctx,
			&mat,
			s.Config.Orientation,
			types.TimestampedTiming(pts),
		)
		if err != nil {
			logger.Debugf(ctx, "dropping the captured frame: unable to upload: %v", err)
			continue
		}

		s.DeliverVideo(ctx, tex)
	}
}

// DeliverVideo routes one uploaded frame through the delay buffer and
// into the destination slot.
func (s *Source) DeliverVideo(ctx context.Context, tex *texture.Texture) {
	released := s.Delay.Push(ctx, Sample{Kind: types.MediaKindVideo, Texture: tex}, types.MediaKindVideo)
	if !released.IsSet() {
		return
	}
	s.Destination.SendInputTexture(ctx, released.Get().Texture, s.Config.DestinationSlot)
}

func (s *Source) audioLoop(ctx context.Context) {
	logger.Debugf(ctx, "audioLoop")
	defer func() { logger.Debugf(ctx, "/audioLoop") }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.CloseChan():
			return
		default:
		}

		chunk, err := s.Config.AudioSampler.ReadChunk(ctx)
		if err != nil {
			logger.Debugf(ctx, "dropping the audio chunk: %v", err)
			continue
		}

		s.DeliverAudio(ctx, chunk)
	}
}

// DeliverAudio routes one audio chunk through the delay buffer and
// into the audio output callback.
func (s *Source) DeliverAudio(ctx context.Context, chunk *AudioChunk) {
	released := s.Delay.Push(ctx, Sample{Kind: types.MediaKindAudio, Audio: chunk}, types.MediaKindAudio)
	if !released.IsSet() {
		return
	}
	if s.Config.AudioOutput != nil {
		s.Config.AudioOutput(ctx, released.Get().Audio)
	}
}

// SetDelayCapacity reconfigures the lip-sync lookahead at runtime,
// discarding anything currently staged.
func (s *Source) SetDelayCapacity(ctx context.Context, capacity uint) {
	s.Delay.SetCapacity(ctx, capacity)
}

func (s *Source) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	s.ClosureSignaler.Close(ctx)
	s.cancelFn()
	return s.closer.Close()
}
