package texturegraph

import (
	"sync/atomic"
)

// NodeStatistics counts what happened to textures passing through a
// node. All counters are monotonic and safe for concurrent use.
type NodeStatistics struct {
	Received     atomic.Uint64
	Dispatched   atomic.Uint64
	Passthroughs atomic.Uint64
	Dropped      atomic.Uint64
	Purged       atomic.Uint64
	Forwarded    atomic.Uint64
}

type NodeStatisticsSnapshot struct {
	Received     uint64
	Dispatched   uint64
	Passthroughs uint64
	Dropped      uint64
	Purged       uint64
	Forwarded    uint64
}

func (stats *NodeStatistics) Convert() NodeStatisticsSnapshot {
	return NodeStatisticsSnapshot{
		Received:     stats.Received.Load(),
		Dispatched:   stats.Dispatched.Load(),
		Passthroughs: stats.Passthroughs.Load(),
		Dropped:      stats.Dropped.Load(),
		Purged:       stats.Purged.Load(),
		Forwarded:    stats.Forwarded.Load(),
	}
}
