package types

import (
	"fmt"
	"time"
)

// Timing classifies how long a texture remains valid:
//   - a transient texture is valid for exactly one consuming draw
//     and must be purged afterwards;
//   - a timestamped texture carries a presentation timestamp and may
//     be retained across draws (e.g. a constant overlay or the held
//     frame of a feedback loop).
type Timing struct {
	IsTransient bool
	PTS         time.Duration
}

func TransientTiming() Timing {
	return Timing{IsTransient: true}
}

func TimestampedTiming(pts time.Duration) Timing {
	return Timing{PTS: pts}
}

func (t Timing) String() string {
	if t.IsTransient {
		return "transient"
	}
	return fmt.Sprintf("timestamped(%v)", t.PTS)
}
