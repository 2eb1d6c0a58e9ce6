package texturegraph

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/logger"
	"github.com/xaionaro-go/texturegraph/texture"
)

// Sink is a terminal graph vertex: it hands every received texture to
// a callback (e.g. a presenter or an encoder feed) and forwards
// nothing.
type Sink struct {
	*NodeStatistics
	Name     string
	Callback func(ctx context.Context, tex *texture.Texture)
}

var _ Abstract = (*Sink)(nil)

func NewSink(
	name string,
	callback func(ctx context.Context, tex *texture.Texture),
) *Sink {
	return &Sink{
		NodeStatistics: &NodeStatistics{},
		Name:           name,
		Callback:       callback,
	}
}

func (s *Sink) String() string {
	return fmt.Sprintf("Sink(%s)", s.Name)
}

func (s *Sink) GetStatistics() *NodeStatistics {
	return s.NodeStatistics
}

func (s *Sink) SendInputTexture(
	ctx context.Context,
	tex *texture.Texture,
	slotIndex int,
) {
	logger.Tracef(ctx, "SendInputTexture[%s]: slot:%d", s, slotIndex)
	s.Received.Add(1)
	if s.Callback == nil {
		return
	}
	s.Callback(ctx, tex)
}
