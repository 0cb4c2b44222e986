package reactive

import "sync"

// Derived is a read-only value computed from other signals.
//
// Unlike a memo, Derived never caches: every Get runs the computation, so
// the value can't drift from its sources. It can still be subscribed to, and
// it forwards change notifications from whatever it read last time.
type Derived[T any] struct {
	base signalBase

	compute func() T

	sources   []*signalBase
	sourcesMu sync.Mutex
}

// NewDerived creates a derived value from compute.
func NewDerived[T any](compute func() T) *Derived[T] {
	return &Derived[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get computes the value and subscribes the current listener.
func (d *Derived[T]) Get() T {
	d.base.track()
	return d.evaluate()
}

// Peek computes the value without subscribing the current listener.
func (d *Derived[T]) Peek() T {
	return d.evaluate()
}

// MarkDirty forwards a source change to subscribers.
func (d *Derived[T]) MarkDirty() {
	d.base.notifySubscribers()
}

// ID returns the unique identifier for this value.
func (d *Derived[T]) ID() uint64 {
	return d.base.id
}

func (d *Derived[T]) source() *signalBase {
	return &d.base
}

func (d *Derived[T]) addSource(source *signalBase) {
	d.sourcesMu.Lock()
	defer d.sourcesMu.Unlock()

	for _, s := range d.sources {
		if s == source {
			return
		}
	}
	d.sources = append(d.sources, source)
}

func (d *Derived[T]) evaluate() T {
	// A circular read on the same goroutine sees the zero value.
	ctx := getTrackingContext()
	if ctx.computing[d.base.id] {
		var zero T
		return zero
	}
	if ctx.computing == nil {
		ctx.computing = make(map[uint64]bool)
	}
	ctx.computing[d.base.id] = true
	defer delete(ctx.computing, d.base.id)

	d.sourcesMu.Lock()
	for _, source := range d.sources {
		source.unsubscribe(d)
	}
	d.sources = d.sources[:0]
	d.sourcesMu.Unlock()

	old := setCurrentListener(d)
	defer setCurrentListener(old)
	return d.compute()
}

var _ dependent = (*Derived[int])(nil)
