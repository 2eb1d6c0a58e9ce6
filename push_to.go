package texturegraph

import (
	"github.com/xaionaro-go/texturegraph/condition"
)

// PushTo is one fan-out edge: the downstream node, the input slot the
// texture lands in, and an optional delivery condition.
type PushTo struct {
	Node      Abstract
	SlotIndex int
	Condition condition.Condition
}

type PushTos []PushTo

func (s *PushTos) Add(dst Abstract, slotIndex int, conds ...condition.Condition) *PushTos {
	var cond condition.Condition
	switch len(conds) {
	case 0:
	case 1:
		cond = conds[0]
	default:
		cond = condition.And(conds)
	}
	*s = append(*s, PushTo{
		Node:      dst,
		SlotIndex: slotIndex,
		Condition: cond,
	})
	return s
}
