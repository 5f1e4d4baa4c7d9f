// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"sync/atomic"
	"time"
)

// Stats accumulates invocation counters across concurrent searches.
// All fields are updated atomically; a snapshot is internally consistent
// enough for reporting purposes, which is all it serves.
type Stats struct {
	searches    atomic.Int64
	totalMillis atomic.Int64
	lastUnixMs  atomic.Int64
}

// StatsSnapshot is a point-in-time view of the counters.
type StatsSnapshot struct {
	Searches     int64         `json:"searches"`
	TotalElapsed time.Duration `json:"total_elapsed"`
	LastSearch   time.Time     `json:"last_search"`
}

func (s *Stats) record(elapsed time.Duration) {
	s.searches.Add(1)
	s.totalMillis.Add(elapsed.Milliseconds())
	s.lastUnixMs.Store(time.Now().UnixMilli())
}

// Snapshot returns the current counter values. LastSearch is the zero
// time when no search has run yet.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Searches:     s.searches.Load(),
		TotalElapsed: time.Duration(s.totalMillis.Load()) * time.Millisecond,
	}
	if ms := s.lastUnixMs.Load(); ms != 0 {
		snap.LastSearch = time.UnixMilli(ms)
	}
	return snap
}
