package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs whenever a value it read during its
// last run changes. Create one with Watch.
type Effect struct {
	id uint64
	fn func()

	sources   []*signalBase
	sourcesMu sync.Mutex

	disposed atomic.Bool
}

// Watch runs fn immediately and again after every change to the values fn
// read. The returned function disposes the effect.
//
// Example:
//
//	stop := reactive.Watch(func() {
//	    fmt.Printf("Total Number of Bugs: %d\n", bugs.Count())
//	})
//	defer stop()
func Watch(fn func()) (stop func()) {
	e := &Effect{id: nextID(), fn: fn}
	e.run()
	return e.Dispose
}

// MarkDirty re-runs the effect.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Dispose unsubscribes the effect from all of its sources. It is idempotent.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.dropSources()
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.dropSources()
	WithListener(e, e.fn)
}

var _ dependent = (*Effect)(nil)
