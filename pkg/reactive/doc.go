// Package reactive provides the observable primitives that rstore stores are
// built from.
//
// Dependencies are tracked at runtime: reading a Signal or Derived value while
// a Listener is active subscribes that listener to the value's changes.
//
// # Core Types
//
// Signal[T] is a mutable value container:
//
//	bugs := NewSignal([]string{"Centipede"})
//	list := bugs.Get()   // Read (subscribes current listener)
//	bugs.Set(list)       // Write (notifies subscribers)
//	bugs.Update(func(b []string) []string { return append(b, "Locust") })
//
// Derived[T] is a read-only value computed from other values. It is never
// cached; every Get runs the computation again:
//
//	count := NewDerived(func() int { return len(bugs.Get()) })
//
// Watch runs a function now and again whenever anything it read changes:
//
//	stop := Watch(func() {
//	    fmt.Println("Total Number of Bugs:", count.Get())
//	})
//	defer stop()
//
// # Batching
//
// Writes inside Batch notify each affected listener once, after the outermost
// batch returns:
//
//	Batch(func() {
//	    items.Set(next)
//	    status.Set(Success)
//	})
//
// Notifications raised by a listener while a notification pass is already
// running are queued behind that pass instead of recursing.
//
// # Thread Safety
//
// Signals are safe for concurrent use. Tracking and batching state is kept per
// goroutine, so a Batch only defers notifications raised on its own goroutine.
package reactive
