package reactive

// Listener is anything that can be notified when a dependency changes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc struct {
	id uint64
	fn func()
}

// NewListenerFunc wraps fn in a Listener with a fresh ID.
func NewListenerFunc(fn func()) *ListenerFunc {
	return &ListenerFunc{id: nextID(), fn: fn}
}

// MarkDirty calls the wrapped function.
func (l *ListenerFunc) MarkDirty() {
	if l.fn != nil {
		l.fn()
	}
}

// ID returns the listener ID.
func (l *ListenerFunc) ID() uint64 {
	return l.id
}

// Source is a value that listeners can subscribe to. It is implemented by
// Signal and Derived.
type Source interface {
	source() *signalBase
}

// Observe subscribes fn to every source. fn runs once per notification pass
// in which any of the sources changed. The returned function removes the
// subscription.
func Observe(fn func(), sources ...Source) (stop func()) {
	l := NewListenerFunc(fn)
	for _, s := range sources {
		s.source().subscribe(l)
	}
	return func() {
		for _, s := range sources {
			s.source().unsubscribe(l)
		}
	}
}
