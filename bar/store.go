package bar

import (
	"sync/atomic"

	"termbar/blocks"
	"termbar/tags"
)

// Snapshot is the bar state at the end of a layout pass.
type Snapshot struct {
	Blocks []blocks.Block `json:"blocks"`
	Tags   []tags.Tag     `json:"tags"`
	Frame  Frame          `json:"frame"`
}

// Store hands the newest snapshot to readers outside the UI loop.
type Store struct {
	v atomic.Pointer[Snapshot]
}

func (s *Store) Publish(snap *Snapshot) { s.v.Store(snap) }

// Load returns the newest snapshot, or nil before the first layout.
func (s *Store) Load() *Snapshot { return s.v.Load() }
