package reactive

import "testing"

func TestBatchSingleNotification(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	c := NewSignal(0)

	listener := newTestListener()
	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
		_ = c.Get()
	})

	Batch(func() {
		a.Set(1)
		b.Set(2)
		c.Set(3)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification (batched), got %d", listener.getDirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	Batch(func() {
		count.Set(1)

		Batch(func() {
			count.Set(2)
		})

		if listener.getDirtyCount() != 0 {
			t.Errorf("inner batch should not notify, got %d", listener.getDirtyCount())
		}
		if getBatchDepth() != 1 {
			t.Errorf("expected batch depth 1, got %d", getBatchDepth())
		}
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.getDirtyCount())
	}
	if getBatchDepth() != 0 {
		t.Errorf("expected batch depth 0, got %d", getBatchDepth())
	}
}

func TestBatchNoChanges(t *testing.T) {
	count := NewSignal(1)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	Batch(func() {
		count.Set(1)
	})

	if listener.getDirtyCount() != 0 {
		t.Errorf("unchanged value should not notify, got %d", listener.getDirtyCount())
	}
}

func TestFlushIsNotReentrant(t *testing.T) {
	items := NewSignal([]string{"Centipede"})

	depth, maxDepth, calls := 0, 0, 0
	var stop func()
	stop = Observe(func() {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		calls++
		// A listener that writes during notification gets queued, not nested.
		if len(items.Peek()) < 3 {
			items.Update(func(b []string) []string {
				return append(append([]string(nil), b...), "Locust")
			})
		}
		depth--
	}, items)
	defer stop()

	items.Update(func(b []string) []string {
		return append(append([]string(nil), b...), "Beetle")
	})

	if maxDepth != 1 {
		t.Errorf("expected no nested notification, max depth %d", maxDepth)
	}
	if got := len(items.Peek()); got != 3 {
		t.Errorf("expected 3 items, got %d", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestUntracked(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		Untracked(func() {
			_ = count.Get()
		})
	})

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("untracked read should not subscribe, got %d", listener.getDirtyCount())
	}
}

func TestTxNamed(t *testing.T) {
	DebugMode = true
	defer func() { DebugMode = false }()

	a := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = a.Get() })

	TxNamed("bump", func() {
		a.Set(1)
		a.Set(2)
	})
	Tx(func() {
		a.Set(3)
	})

	if listener.getDirtyCount() != 2 {
		t.Errorf("expected 2 notifications, got %d", listener.getDirtyCount())
	}
}
