package concurrent

import "sync/atomic"

// AtomicInteger is an int64 counter safe for concurrent use.
// Keep it 64-bit aligned when embedding it in a struct.
type AtomicInteger int64

func (i *AtomicInteger) IncrementAndGet() int64 {
	return atomic.AddInt64((*int64)(i), 1)
}

func (i *AtomicInteger) DecrementAndGet() int64 {
	return atomic.AddInt64((*int64)(i), -1)
}

func (i *AtomicInteger) Get() int64 {
	return atomic.LoadInt64((*int64)(i))
}
