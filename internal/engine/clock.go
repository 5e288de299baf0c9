package engine

import "sync/atomic"

// Clock is the monotonic logical clock that stamps processed lines.
//
// Transcript entries are ordered by seq, never by wall-clock time, so
// recorded sessions replay in exactly the order they ran.
//
// Thread-safety: atomic, though the session's single-threaded loop
// means only one goroutine normally calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next() returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
