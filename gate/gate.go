package gate

import "sync"

// Static is a gate with a fixed value. It implements both the attention and
// progress gate contracts.
type Static bool

// IsActive implements the attention gate contract.
func (s Static) IsActive() bool { return bool(s) }

// IsAllowed implements the progress gate contract.
func (s Static) IsAllowed() bool { return bool(s) }

// Manual is a settable gate implementing both the attention and progress
// gate contracts. Subscribers are notified on every value change.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Subscribers are invoked sequentially, outside the gate's lock, in
//   registration order. They must not block.
type Manual struct {
	mu     sync.Mutex
	value  bool
	subs   map[int]func(bool)
	nextID int
}

// NewManual creates a Manual gate with the given initial value.
func NewManual(value bool) *Manual {
	return &Manual{value: value}
}

// IsActive implements the attention gate contract.
func (g *Manual) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// IsAllowed implements the progress gate contract.
func (g *Manual) IsAllowed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Set updates the gate value, notifying subscribers when it changed.
func (g *Manual) Set(value bool) {
	g.mu.Lock()
	if g.value == value {
		g.mu.Unlock()
		return
	}
	g.value = value
	subs := make([]func(bool), 0, len(g.subs))
	for id := 0; id < g.nextID; id++ {
		if fn, ok := g.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Subscribe registers fn to be called with the new value on every change.
// The returned function removes the subscription; calling it more than once
// is harmless.
func (g *Manual) Subscribe(fn func(bool)) (unsubscribe func()) {
	g.mu.Lock()
	if g.subs == nil {
		g.subs = make(map[int]func(bool))
	}
	id := g.nextID
	g.nextID++
	g.subs[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}

// Bind invokes resume each time g transitions to a permitting value. It is
// the usual way to forward a connectivity or attention recovery into a
// retryer's Continue. The returned function removes the binding.
func Bind(g *Manual, resume func()) (unbind func()) {
	return g.Subscribe(func(value bool) {
		if value {
			resume()
		}
	})
}
