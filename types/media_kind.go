package types

import (
	"fmt"
)

// MediaKind tags a captured sample as video or audio. It decides which
// of the two queues of a delay buffer the sample goes through.
type MediaKind int

const (
	MediaKindVideo MediaKind = iota
	MediaKindAudio
	EndOfMediaKind
)

func (k MediaKind) String() string {
	switch k {
	case MediaKindVideo:
		return "video"
	case MediaKindAudio:
		return "audio"
	}
	return fmt.Sprintf("unexpected_media_kind_%d", int(k))
}
