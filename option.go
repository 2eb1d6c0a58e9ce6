// option.go defines functional options for configuring operation nodes.

package texturegraph

import (
	"github.com/xaionaro-go/texturegraph/render"
	"github.com/xaionaro-go/texturegraph/resize"
	"github.com/xaionaro-go/texturegraph/types"
)

type NodeConfig struct {
	// ResizePolicy and MaxOutputSize together bound the output
	// geometry; when MaxOutputSize is unusable the slot-0 raw size is
	// used as is.
	ResizePolicy  resize.Policy
	MaxOutputSize types.Size

	// AspectRatioUniform, when non-empty, names the uniform the node
	// fills with the rotation-corrected aspect ratio before each
	// dispatch.
	AspectRatioUniform string

	// OutputOrientation overrides the output orientation (which
	// otherwise follows slot 0).
	OutputOrientation *types.Orientation

	// Uniforms is the base uniform set of every dispatch.
	Uniforms render.Uniforms

	// Accelerated substitutes the default draw when available.
	// RotateProgram renders the rotation pre-pass the routine may
	// need; it must be set if Accelerated is.
	Accelerated   AcceleratedRoutine
	RotateProgram render.Program
}

type Option interface {
	apply(*NodeConfig)
}

type Options []Option

func (s Options) apply(cfg *NodeConfig) {
	for _, opt := range s {
		opt.apply(cfg)
	}
}

func (s Options) Config() NodeConfig {
	cfg := NodeConfig{}
	s.apply(&cfg)
	return cfg
}

type OptionResizePolicy resize.Policy

func (opt OptionResizePolicy) apply(cfg *NodeConfig) {
	cfg.ResizePolicy = resize.Policy(opt)
}

type OptionMaxOutputSize types.Size

func (opt OptionMaxOutputSize) apply(cfg *NodeConfig) {
	cfg.MaxOutputSize = types.Size(opt)
}

type OptionAspectRatioUniform string

func (opt OptionAspectRatioUniform) apply(cfg *NodeConfig) {
	cfg.AspectRatioUniform = string(opt)
}

type OptionOutputOrientation types.Orientation

func (opt OptionOutputOrientation) apply(cfg *NodeConfig) {
	v := types.Orientation(opt)
	cfg.OutputOrientation = &v
}

type OptionUniforms render.Uniforms

func (opt OptionUniforms) apply(cfg *NodeConfig) {
	cfg.Uniforms = render.Uniforms(opt)
}

type OptionAccelerated struct {
	Routine       AcceleratedRoutine
	RotateProgram render.Program
}

func (opt OptionAccelerated) apply(cfg *NodeConfig) {
	cfg.Accelerated = opt.Routine
	cfg.RotateProgram = opt.RotateProgram
}
