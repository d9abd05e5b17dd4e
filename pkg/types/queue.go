package types

import "sync"

// queue is an unbounded FIFO. Not safe for concurrent use.
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// ControlledQueue is an unbounded FIFO with many senders and receivers,
// closed by its controller. Hosts use it to move input from reader
// goroutines onto the loop goroutine that owns the zoom controller.
type ControlledQueue[T any] struct {
	data          queue[T]
	mu            sync.Mutex
	requestRecvCh chan struct{}
	stopCh        chan struct{}
	closeOnce     sync.Once
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		stopCh:        make(chan struct{}),
		requestRecvCh: make(chan struct{}, 1),
	}
}

// Close wakes blocked receivers. Values still queued are dropped.
// Safe to call more than once.
func (cq *ControlledQueue[T]) Close() {
	cq.closeOnce.Do(func() {
		close(cq.stopCh)
	})
}

// Done is closed when the queue is closed.
func (cq *ControlledQueue[T]) Done() <-chan struct{} {
	return cq.stopCh
}

// Send appends v. It returns false if the queue is closed.
func (cq *ControlledQueue[T]) Send(v T) bool {
	select {
	case <-cq.stopCh:
		return false
	default:
	}
	cq.mu.Lock()
	cq.data.push(v)
	cq.mu.Unlock()
	cq.notify()
	return true
}

// Coalesce replaces the last queued value with v if same reports true
// for it, and appends v otherwise. Used to collapse bursts of pointer
// moves without reordering them around other events. Returns false if
// the queue is closed.
func (cq *ControlledQueue[T]) Coalesce(v T, same func(old T) bool) bool {
	select {
	case <-cq.stopCh:
		return false
	default:
	}
	cq.mu.Lock()
	if n := cq.data.len(); n > 0 && same(cq.data.data[n-1]) {
		cq.data.data[n-1] = v
		cq.mu.Unlock()
		return true
	}
	cq.data.push(v)
	cq.mu.Unlock()
	cq.notify()
	return true
}

func (cq *ControlledQueue[T]) notify() {
	select {
	case cq.requestRecvCh <- struct{}{}:
	default:
	}
}

// Len returns the number of queued values.
func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}

// Recv blocks until a value is available or the queue is closed.
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// AttemptRecv returns
//
//	(false, zero, true) on empty, when not blocking
//	(true, v, true)     on receive
//	(true, zero, false) on closed
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		select {
		case <-cq.stopCh:
			return true, v, false
		default:
		}

		cq.mu.Lock()
		if cq.data.len() > 0 {
			v = cq.data.pop()
			more := cq.data.len() > 0
			cq.mu.Unlock()
			if more {
				cq.notify()
			}
			return true, v, true
		}
		cq.mu.Unlock()

		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.requestRecvCh:
		case <-cq.stopCh:
		}
	}
}
