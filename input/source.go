package input

import (
	"context"
	"errors"
)

// ErrClosed is returned by ReadKey once a source has no more input
var ErrClosed = errors.New("input source closed")

// Source is a polled key input
type Source interface {
	// KeyAvailable reports whether ReadKey would return without blocking
	KeyAvailable() bool
	// ReadKey consumes one key, blocking until one arrives or ctx ends
	ReadKey(ctx context.Context) (Key, error)
}

// queue is a buffered key channel shared by the concrete sources
type queue struct {
	keys   chan Key
	closed chan struct{}
}

func newQueue(size int) queue {
	return queue{
		keys:   make(chan Key, size),
		closed: make(chan struct{}),
	}
}

func (q *queue) KeyAvailable() bool {
	return len(q.keys) > 0
}

func (q *queue) ReadKey(ctx context.Context) (Key, error) {
	// Queued keys are delivered even after close
	select {
	case k := <-q.keys:
		return k, nil
	default:
	}

	select {
	case k := <-q.keys:
		return k, nil
	case <-q.closed:
		return Key{}, ErrClosed
	case <-ctx.Done():
		return Key{}, ctx.Err()
	}
}

// offer enqueues without blocking, reporting false when the buffer is full
func (q *queue) offer(k Key) bool {
	select {
	case q.keys <- k:
		return true
	default:
		return false
	}
}

// MemorySource is a scripted Source for headless runs and tests
type MemorySource struct {
	queue
}

// NewMemorySource creates a source preloaded with keys
func NewMemorySource(keys ...Key) *MemorySource {
	size := len(keys) + 64
	m := &MemorySource{queue: newQueue(size)}
	for _, k := range keys {
		m.offer(k)
	}
	return m
}

// Push enqueues actions, dropping them when the buffer is full
func (m *MemorySource) Push(actions ...Action) {
	for _, a := range actions {
		m.offer(Key{Action: a, Name: a.String()})
	}
}

// Close makes ReadKey return ErrClosed once drained
func (m *MemorySource) Close() {
	select {
	case <-m.closed:
	default:
		close(m.closed)
	}
}
