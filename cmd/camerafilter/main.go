package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/texturegraph"
	"github.com/xaionaro-go/texturegraph/capture"
	"github.com/xaionaro-go/texturegraph/logger"
	"github.com/xaionaro-go/texturegraph/render/rendertest"
	"github.com/xaionaro-go/texturegraph/resize"
	"github.com/xaionaro-go/texturegraph/types"
)

func main() {

	// parse the input

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	camera := pflag.String("camera", "0", "capture device (an index or a device path)")
	delayCapacity := pflag.Uint("delay", 3, "lip-sync lookahead window in frames (0 disables)")
	maxWidth := pflag.Float64("max-width", 0, "output width bound (0 disables resizing)")
	maxHeight := pflag.Float64("max-height", 0, "output height bound (0 disables resizing)")
	resizePolicyStr := pflag.String("resize-policy", "aspect_fit", "fill | aspect_fit | aspect_fill")
	frameInterval := pflag.Duration("frame-interval", 0, "artificial delay between captured frames (0 disables throttling)")
	duration := pflag.Duration("duration", 0, "stop after this long (0: run until interrupted)")
	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	// init the context

	ctx := withLogger(context.Background(), loggerLevel)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	defer belt.Flush(ctx)
	if *duration > 0 {
		var timeoutCancelFn context.CancelFunc
		ctx, timeoutCancelFn = context.WithTimeout(ctx, *duration)
		defer timeoutCancelFn()
	}

	resizePolicy, err := resize.PolicyFromString(*resizePolicyStr)
	assert(ctx, err == nil, err)

	// the backend; a real application injects its GPU implementation here
	backend := rendertest.New()

	// filter node

	sepia := texturegraph.NewOperationNode(
		ctx, backend, rendertest.Program("sepia"), "sepia", 1,
		texturegraph.OptionAspectRatioUniform("aspectRatio"),
		texturegraph.OptionResizePolicy(resizePolicy),
		texturegraph.OptionMaxOutputSize(types.SizeOf(*maxWidth, *maxHeight)),
	)

	// temporal smoothing node with a feedback edge (a low-pass filter)

	lowpass := texturegraph.NewOperationNode(
		ctx, backend, rendertest.Program("lowpass_blend"), "lowpass", 2,
		texturegraph.OptionUniforms(map[string]any{"strength": 0.6}),
	)

	display := texturegraph.NewSink("display", nil)

	// route nodes: sepia -> lowpass -> display, with lowpass feeding itself

	sepia.AddPushTo(lowpass, 0)
	lowpass.AddPushTo(display, 0)
	lowpass.AddPushTo(lowpass, 1)
	lowpass.SetPassthroughOnNextFrame(ctx)

	logger.Infof(ctx, "resulting pipeline: %s", texturegraph.Nodes[texturegraph.Abstract]{sepia}.String())
	logger.Debugf(ctx, "resulting pipeline (for graphviz):\n%s\n", texturegraph.Nodes[texturegraph.Abstract]{sepia}.DotString())

	// start capturing

	logger.Debugf(ctx, "opening '%s' as the capture device...", *camera)
	src, err := capture.New(ctx, *camera, newMatUploader(backend), sepia, capture.Config{
		Orientation:   types.OrientationUp,
		DelayCapacity: *delayCapacity,
	})
	assert(ctx, err == nil, err)
	defer src.Close(ctx)
	src.FrameInterval.Store(*frameInterval)

	// observe

	statusTicker := time.NewTicker(time.Second)
	defer statusTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "finished")
			return
		case <-src.CloseChan():
			logger.Infof(ctx, "the capture device was closed")
			return
		case <-statusTicker.C:
			printStatistics(ctx, sepia)
		}
	}
}

func printStatistics(ctx context.Context, root texturegraph.Abstract) {
	texturegraph.Traverse(ctx, func(ctx context.Context, n texturegraph.Abstract) error {
		stats := n.GetStatistics().Convert()
		logger.Infof(ctx, "%s: received:%s dispatched:%s dropped:%s purged:%s",
			n,
			humanize.Comma(int64(stats.Received)),
			humanize.Comma(int64(stats.Dispatched)),
			humanize.Comma(int64(stats.Dropped)),
			humanize.Comma(int64(stats.Purged)),
		)
		logger.Debugf(ctx, "%s: %s", n, spew.Sdump(stats))
		return nil
	}, root)
}
