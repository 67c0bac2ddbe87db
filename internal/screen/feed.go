package screen

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

// FeedMsg carries one value pushed into a Feed.
type FeedMsg[T any] struct {
	Feed  *Feed[T]
	Value T
}

// Feed turns observer callbacks, which arrive on other goroutines, into
// Bubble Tea messages. Values are delivered in push order. A screen arms
// the feed with Next and re-arms it after handling each FeedMsg.
type Feed[T any] struct {
	mu     sync.Mutex
	items  []T
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewFeed creates an empty feed.
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Push queues v. It never blocks and is safe to call after Close.
func (f *Feed[T]) Push(v T) {
	f.mu.Lock()
	f.items = append(f.items, v)
	f.mu.Unlock()

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// Next returns a command that waits for the next value.
// The command yields nil once the feed is closed.
func (f *Feed[T]) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			if v, ok := f.pop(); ok {
				return FeedMsg[T]{Feed: f, Value: v}
			}
			select {
			case <-f.signal:
			case <-f.done:
				return nil
			}
		}
	}
}

// Close releases any command waiting in Next.
func (f *Feed[T]) Close() {
	f.once.Do(func() { close(f.done) })
}

func (f *Feed[T]) pop() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var zero T
	select {
	case <-f.done:
		return zero, false
	default:
	}
	if len(f.items) == 0 {
		return zero, false
	}
	v := f.items[0]
	f.items = f.items[1:]
	return v, true
}
