package texturegraph

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/texturegraph/condition"
	"github.com/xaionaro-go/texturegraph/logger"
	"github.com/xaionaro-go/texturegraph/render"
	"github.com/xaionaro-go/texturegraph/texture"
	"github.com/xaionaro-go/texturegraph/types"
	"github.com/xaionaro-go/xsync"
)

// Abstract is anything that can receive a texture into an input slot.
type Abstract interface {
	fmt.Stringer
	SendInputTexture(ctx context.Context, tex *texture.Texture, slotIndex int)
	GetStatistics() *NodeStatistics
}

// GetPushToser is implemented by nodes that fan out to downstream
// targets; graph walkers (Traverse, DotString) use it to discover
// edges.
type GetPushToser interface {
	GetPushTos() PushTos
}

// AcceleratedRoutine is an alternate high-performance render routine a
// node may be constructed with. It expects its primary input in a
// canonical orientation; when the slot-0 texture deviates, the node
// renders a rotation pre-pass first.
type AcceleratedRoutine interface {
	fmt.Stringer
	IsAvailable(ctx context.Context) bool
	CanonicalOrientation() types.Orientation
	Render(
		ctx context.Context,
		cb render.CommandBuffer,
		inputs []*texture.Texture,
		uniforms render.Uniforms,
		output *texture.Texture,
	) error
}

// OperationNode is a graph vertex performing one shader pass over N
// input textures.
//
// Deliveries from multiple upstream producers are serialized by
// Locker; the lock is dropped around the downstream fan-out so a slow
// consumer does not hold up deliveries into other slots of this node.
type OperationNode struct {
	*NodeStatistics
	Backend render.Backend
	Program render.Program
	Name    string

	Config NodeConfig

	Locker          xsync.Mutex
	PushTos         PushTos
	InputSlots      []*texture.Texture
	PassthroughNext bool

	filledCount int
}

var _ Abstract = (*OperationNode)(nil)
var _ GetPushToser = (*OperationNode)(nil)

func NewOperationNode(
	ctx context.Context,
	backend render.Backend,
	program render.Program,
	name string,
	inputCount uint,
	opts ...Option,
) *OperationNode {
	assert(ctx, backend != nil, "backend != nil")
	assert(ctx, inputCount >= 1, "inputCount >= 1", inputCount)
	return &OperationNode{
		NodeStatistics: &NodeStatistics{},
		Backend:        backend,
		Program:        program,
		Name:           name,
		Config:         Options(opts).Config(),
		InputSlots:     make([]*texture.Texture, inputCount),
	}
}

func (n *OperationNode) String() string {
	if n.Name != "" {
		return fmt.Sprintf("OperationNode(%s)", n.Name)
	}
	return fmt.Sprintf("OperationNode(%s)", n.Program)
}

func (n *OperationNode) GetStatistics() *NodeStatistics {
	return n.NodeStatistics
}

func (n *OperationNode) GetPushTos() PushTos {
	if n == nil {
		return nil
	}
	return xsync.DoR1(context.TODO(), &n.Locker, func() PushTos {
		return n.PushTos
	})
}

func (n *OperationNode) AddPushTo(
	dst Abstract,
	slotIndex int,
	conds ...condition.Condition,
) {
	ctx := context.TODO()
	logger.Debugf(ctx, "AddPushTo")
	defer logger.Debugf(ctx, "/AddPushTo")
	n.Locker.Do(ctx, func() {
		n.PushTos.Add(dst, slotIndex, conds...)
	})
}

func (n *OperationNode) SetPushTos(s PushTos) {
	n.Locker.Do(context.TODO(), func() {
		n.PushTos = s
	})
}

// SetPassthroughOnNextFrame arms the passthrough bootstrap: the next
// delivery dispatches immediately and forwards an unrendered
// placeholder frame, which is how a feedback cycle gets unblocked
// before any upstream data has gone around it.
func (n *OperationNode) SetPassthroughOnNextFrame(ctx context.Context) {
	logger.Debugf(ctx, "SetPassthroughOnNextFrame[%s]", n)
	n.Locker.Do(ctx, func() {
		n.PassthroughNext = true
	})
}

// PurgeInputs releases every held input texture. It is used when a
// node is detached from the graph.
func (n *OperationNode) PurgeInputs(ctx context.Context) {
	logger.Debugf(ctx, "PurgeInputs[%s]", n)
	n.Locker.Do(ctx, func() {
		for idx, tex := range n.InputSlots {
			if tex == nil {
				continue
			}
			tex.Release()
			n.InputSlots[idx] = nil
			n.Purged.Add(1)
		}
		n.filledCount = 0
	})
}
