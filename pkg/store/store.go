package store

import (
	"log/slog"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/vango-dev/rstore/internal/logging"
	"github.com/vango-dev/rstore/pkg/reactive"
)

// Snapshot is a consistent view of a store at one point in time.
type Snapshot[T any] struct {
	Items  []T        `json:"items"`
	Count  int        `json:"count"`
	Status Status     `json:"status"`
	Query  url.Values `json:"query,omitempty"`
}

// Observer receives store activity, typically for metrics.
type Observer interface {
	// ObserveOperation is called when a remote operation completes.
	ObserveOperation(store, op string, result Status, elapsed time.Duration)

	// ObserveItems is called with the item count after every commit.
	ObserveItems(store string, count int)
}

// Store is an observable list of T.
type Store[T any] struct {
	name string

	items  *reactive.Signal[[]T]
	status *reactive.Signal[Status]
	query  *reactive.Signal[url.Values]
	count  *reactive.Derived[int]

	// commitMu makes multi-field commits atomic with respect to Snapshot.
	commitMu sync.RWMutex

	cfgMu    sync.Mutex
	remote   Remote
	loader   Loader[T]
	logger   *slog.Logger
	observer Observer
	onError  func(error)
}

// New creates a store named name holding initial.
func New[T any](name string, initial ...T) *Store[T] {
	items := slices.Clone(initial)
	if items == nil {
		items = []T{}
	}

	s := &Store[T]{
		name:   name,
		items:  reactive.NewSignal(items),
		status: reactive.NewSignal(Initial),
		query:  reactive.NewSignal(url.Values{}),
		loader: decodeList[T],
		logger: logging.Nop(),
	}
	s.count = reactive.NewDerived(func() int {
		return len(s.items.Get())
	})
	return s
}

// Name returns the store name used in logs and metrics.
func (s *Store[T]) Name() string {
	return s.name
}

// Items returns a copy of the current items.
// Reading it inside a tracked context subscribes the current listener.
func (s *Store[T]) Items() []T {
	return slices.Clone(s.items.Get())
}

// Count returns the number of items. It is computed from the list on every
// call.
func (s *Store[T]) Count() int {
	return s.count.Get()
}

// Status returns the outcome of the last operation.
func (s *Store[T]) Status() Status {
	return s.status.Get()
}

// Query returns a copy of the store's filter state.
func (s *Store[T]) Query() url.Values {
	return cloneValues(s.query.Get())
}

// SetQuery replaces the filter state used by Refresh.
func (s *Store[T]) SetQuery(q url.Values) {
	s.commit(func() {
		s.query.Set(cloneValues(q))
	})
}

// Snapshot returns items, count, status and query as of one commit.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.commitMu.RLock()
	defer s.commitMu.RUnlock()

	items := slices.Clone(s.items.Peek())
	return Snapshot[T]{
		Items:  items,
		Count:  len(items),
		Status: s.status.Peek(),
		Query:  cloneValues(s.query.Peek()),
	}
}

// AddItem appends v. Subscribers are notified exactly once.
func (s *Store[T]) AddItem(v T) {
	s.commit(func() {
		s.items.Update(func(cur []T) []T {
			next := make([]T, len(cur), len(cur)+1)
			copy(next, cur)
			return append(next, v)
		})
	})
}

// Subscribe registers fn to run after every commit that changes the store.
// fn runs on the goroutine that committed the change. Writes fn makes to
// this or any other store are delivered after the current notification pass.
func (s *Store[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	return reactive.Observe(func() {
		fn(s.Snapshot())
	}, s.items, s.status, s.query)
}

// Sources exposes the store's signals for callers that combine stores with
// reactive.Observe.
func (s *Store[T]) Sources() []reactive.Source {
	return []reactive.Source{s.items, s.status, s.query}
}

// commit applies fn as one batch: observers see every write fn makes or
// none of them, and are notified once afterwards.
func (s *Store[T]) commit(fn func()) {
	reactive.Batch(func() {
		s.commitMu.Lock()
		defer s.commitMu.Unlock()
		fn()
	})
	s.afterCommit()
}

func (s *Store[T]) afterCommit() {
	s.cfgMu.Lock()
	observer := s.observer
	s.cfgMu.Unlock()

	if observer != nil {
		observer.ObserveItems(s.name, len(s.items.Peek()))
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = slices.Clone(vals)
	}
	return out
}
