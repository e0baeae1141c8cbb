package runlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/finprofile-dev/finprofile/internal/metrics"
)

// Sink buffers observed scores of one run until Flush.
type Sink struct {
	RunID   uuid.UUID
	path    string
	now     func() time.Time
	pending []Entry
}

// NewSink creates a sink for a fresh run writing to path.
func NewSink(path string) *Sink {
	return &Sink{RunID: uuid.New(), path: path, now: time.Now}
}

// Observe implements metrics.Sink.
func (s *Sink) Observe(score metrics.Score) {
	s.pending = append(s.pending, Entry{
		Timestamp: s.now().UTC(),
		RunID:     s.RunID,
		Score:     score,
	})
}

// Pending reports how many entries await Flush.
func (s *Sink) Pending() int {
	return len(s.pending)
}

// Flush appends buffered entries to the log. The buffer is kept on error.
func (s *Sink) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := Append(s.path, s.pending); err != nil {
		return err
	}
	s.pending = nil
	return nil
}
