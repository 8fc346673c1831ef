// Package notify provides a typed observer registry for table change events,
// replacing implicit event propagation with an explicit subscribe/publish
// contract and an explicit lifecycle.
package notify

import "sync"

// Subscription identifies a registered observer so it can be removed.
type Subscription int

// Dispatcher delivers typed payloads to registered observers. Construct with
// NewDispatcher; Close releases all subscriptions. Safe for concurrent use.
type Dispatcher[T any] struct {
	mu     sync.RWMutex
	next   Subscription
	subs   map[Subscription]func(T)
	closed bool
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{
		subs: make(map[Subscription]func(T)),
	}
}

// Subscribe registers fn to receive every published payload and returns a
// handle for Unsubscribe. Subscribing to a closed dispatcher returns a
// handle that will never fire.
func (d *Dispatcher[T]) Subscribe(fn func(T)) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	if d.closed {
		return d.next
	}

	d.subs[d.next] = fn
	return d.next
}

// Unsubscribe removes a previously registered observer. Unknown handles are
// ignored (idempotent).
func (d *Dispatcher[T]) Unsubscribe(sub Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, sub)
}

// Publish delivers payload to every registered observer, synchronously, in
// unspecified order.
func (d *Dispatcher[T]) Publish(payload T) {
	d.mu.RLock()
	fns := make([]func(T), 0, len(d.subs))
	for _, fn := range d.subs {
		fns = append(fns, fn)
	}
	d.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}

// Len returns the number of registered observers.
func (d *Dispatcher[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}

// Close removes all observers and rejects future subscriptions.
func (d *Dispatcher[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.subs = make(map[Subscription]func(T))
}
