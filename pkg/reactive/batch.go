package reactive

import "log/slog"

// DebugMode makes TxNamed log transaction boundaries at debug level.
// Set it at startup.
var DebugMode bool

// Logger receives TxNamed debug output. Defaults to slog.Default().
var Logger = slog.Default()

// Batch groups signal writes into a single notification phase.
// Listeners affected by any write inside fn are collected, deduplicated, and
// notified once when the outermost batch completes.
//
// Example:
//
//	Batch(func() {
//	    items.Set(loaded)
//	    status.Set(Success)
//	})
//	// Subscribers of items and status are notified once
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() && !getTrackingContext().flushing {
			flush(drainPendingUpdates())
		}
	}()

	fn()
}

// notify delivers a change to listeners, or queues it when a batch or a
// flush is in progress on this goroutine.
func notify(listeners []Listener) {
	if len(listeners) == 0 {
		return
	}

	ctx := getTrackingContext()
	if ctx.batchDepth > 0 || ctx.flushing {
		ctx.pendingUpdates = append(ctx.pendingUpdates, listeners...)
		return
	}
	flush(listeners)
}

// flush notifies each unique listener once, then keeps draining whatever the
// listeners themselves queued until nothing is left.
func flush(listeners []Listener) {
	if len(listeners) == 0 {
		return
	}

	ctx := getTrackingContext()
	ctx.flushing = true
	defer func() { ctx.flushing = false }()

	for len(listeners) > 0 {
		for _, l := range dedupe(listeners) {
			l.MarkDirty()
		}
		listeners = drainPendingUpdates()
	}
}

func dedupe(listeners []Listener) []Listener {
	seen := make(map[uint64]bool, len(listeners))
	unique := make([]Listener, 0, len(listeners))
	for _, l := range listeners {
		id := l.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, l)
		}
	}
	return unique
}

// Untracked runs fn without recording signal reads as dependencies.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// Tx is an alias for Batch.
func Tx(fn func()) {
	Batch(fn)
}

// TxNamed runs fn as a named batch. The name is logged in DebugMode.
func TxNamed(name string, fn func()) {
	if DebugMode {
		Logger.Debug("tx start", "tx", name)
		defer Logger.Debug("tx end", "tx", name)
	}
	Batch(fn)
}
