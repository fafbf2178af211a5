package session

import (
	"sync"
)

// ringBuffer is a thread-safe circular byte buffer holding the most recent
// terminal output up to a fixed capacity. When full, the oldest bytes are
// discarded. Viewers joining mid-session replay its contents before
// receiving live output.
type ringBuffer struct {
	mu       sync.RWMutex
	data     []byte
	capacity int
}

func newRingBuffer(capacity int) *ringBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &ringBuffer{
		data:     make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// Write appends p, evicting the oldest bytes once capacity is exceeded.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	// Oversized writes keep only their own tail.
	if len(p) >= rb.capacity {
		rb.data = append(rb.data[:0], p[len(p)-rb.capacity:]...)
		return len(p), nil
	}

	overflow := len(rb.data) + len(p) - rb.capacity
	if overflow > 0 {
		n := copy(rb.data, rb.data[overflow:])
		rb.data = rb.data[:n]
	}
	rb.data = append(rb.data, p...)

	return len(p), nil
}

// Bytes returns a copy of the buffered output.
func (rb *ringBuffer) Bytes() []byte {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if len(rb.data) == 0 {
		return nil
	}
	out := make([]byte, len(rb.data))
	copy(out, rb.data)
	return out
}

// Len returns the number of buffered bytes.
func (rb *ringBuffer) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	return len(rb.data)
}
