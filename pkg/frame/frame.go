// Package frame schedules per-frame callbacks.
package frame

import "time"

// Callback receives the frame timestamp. Timestamps passed to successive
// callbacks never decrease.
type Callback func(ts time.Duration)

// Handle identifies a pending callback. The zero Handle is never issued.
type Handle uint64

// Scheduler requests and cancels frame callbacks.
type Scheduler interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
}

type entry struct {
	h  Handle
	cb Callback
}

// Loop is a Scheduler driven by the host: each call to Fire runs the
// callbacks that were pending when Fire was called. Callbacks requested
// during Fire wait for the next one. Loop is not safe for concurrent use.
type Loop struct {
	last    Handle
	pending []entry
	now     time.Duration
}

var _ Scheduler = (*Loop)(nil)

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(cb Callback) Handle {
	l.last++
	l.pending = append(l.pending, entry{h: l.last, cb: cb})
	return l.last
}

// CancelFrame implements Scheduler. Unknown handles are ignored.
func (l *Loop) CancelFrame(h Handle) {
	for i, e := range l.pending {
		if e.h == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next Fire.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Fire runs the pending callbacks with timestamp ts and returns how many
// ran. A ts earlier than the previous one is raised to it.
func (l *Loop) Fire(ts time.Duration) int {
	l.now = max(l.now, ts)
	batch := l.pending
	l.pending = nil
	for _, e := range batch {
		e.cb(l.now)
	}
	return len(batch)
}

// Now returns the timestamp of the last Fire.
func (l *Loop) Now() time.Duration {
	return l.now
}
