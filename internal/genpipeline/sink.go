package genpipeline

import (
	"fmt"
	"io"
	"sync"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// WriterSink prints terminal events one line per file, for non-interactive
// runs. Intermediate working events are dropped to keep logs readable.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) OnEvent(evt Event) {
	if s == nil || s.W == nil || evt.File == "" {
		return
	}
	switch evt.Status {
	case StatusDone, StatusSkipped:
		s.mu.Lock()
		fmt.Fprintf(s.W, "%-8s %s\n", evt.Status, evt.File)
		s.mu.Unlock()
	case StatusError:
		s.mu.Lock()
		if evt.Err != nil {
			fmt.Fprintf(s.W, "%-8s %s: %v\n", evt.Status, evt.File, evt.Err)
		} else {
			fmt.Fprintf(s.W, "%-8s %s\n", evt.Status, evt.File)
		}
		s.mu.Unlock()
	}
}
