package store

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreIsInitial(t *testing.T) {
	s := New[string]("empty")

	assert.Equal(t, "empty", s.Name())
	assert.Empty(t, s.Items())
	assert.NotNil(t, s.Items())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, Initial, s.Status())
	assert.Empty(t, s.Query())
}

func TestAddItemKeepsCountInSync(t *testing.T) {
	s := New("bugs", "Centipede")
	require.Equal(t, 1, s.Count())

	for i, bug := range []string{"Locust", "Beetle", "Ant"} {
		s.AddItem(bug)
		assert.Equal(t, i+2, s.Count())
		assert.Equal(t, len(s.Items()), s.Count())
	}

	assert.Equal(t, []string{"Centipede", "Locust", "Beetle", "Ant"}, s.Items())
}

func TestAddItemDuplicatesAllowed(t *testing.T) {
	s := New("bugs", "Centipede")
	s.AddItem("Centipede")

	assert.Equal(t, []string{"Centipede", "Centipede"}, s.Items())
	assert.Equal(t, 2, s.Count())
}

func TestAddItemNotifiesOnce(t *testing.T) {
	s := New("bugs", "Centipede")

	var got []Snapshot[string]
	unsubscribe := s.Subscribe(func(snap Snapshot[string]) {
		got = append(got, snap)
	})
	defer unsubscribe()

	s.AddItem("Locust")

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, []string{"Centipede", "Locust"}, got[0].Items)
}

func TestUnsubscribe(t *testing.T) {
	s := New[int]("numbers")

	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot[int]) { calls++ })
	s.AddItem(1)
	unsubscribe()
	s.AddItem(2)

	assert.Equal(t, 1, calls)
}

func TestSubscriberCanMutateStore(t *testing.T) {
	s := New("bugs", "Centipede")

	var counts []int
	depth, maxDepth := 0, 0
	unsubscribe := s.Subscribe(func(snap Snapshot[string]) {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		counts = append(counts, snap.Count)
		if snap.Count == 2 {
			s.AddItem("Locust")
		}
		depth--
	})
	defer unsubscribe()

	s.AddItem("Beetle")

	assert.Equal(t, 1, maxDepth)
	assert.Equal(t, []int{2, 3}, counts)
	assert.Equal(t, 3, s.Count())
}

func TestSubscriberSeesItemsAndCountTogether(t *testing.T) {
	s := New[int]("numbers")

	unsubscribe := s.Subscribe(func(snap Snapshot[int]) {
		assert.Equal(t, len(snap.Items), snap.Count)
		assert.Equal(t, len(s.Items()), s.Count())
	})
	defer unsubscribe()

	for i := 0; i < 5; i++ {
		s.AddItem(i)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := New("bugs", "Centipede")

	items := s.Items()
	items[0] = "Locust"

	assert.Equal(t, []string{"Centipede"}, s.Items())
}

func TestNewCopiesInitial(t *testing.T) {
	initial := []string{"a", "b"}
	s := New("letters", initial...)
	initial[0] = "z"

	assert.Equal(t, []string{"a", "b"}, s.Items())
}

func TestSetQuery(t *testing.T) {
	s := New[string]("countries")

	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot[string]) { calls++ })
	defer unsubscribe()

	q := url.Values{"name": {"per"}}
	s.SetQuery(q)
	q.Set("name", "chi")

	assert.Equal(t, url.Values{"name": {"per"}}, s.Query())
	assert.Equal(t, 1, calls)

	s.SetQuery(url.Values{"name": {"per"}})
	assert.Equal(t, 1, calls, "identical query must not notify")
}

func TestIndependentStores(t *testing.T) {
	bugs := New("bugs", "Centipede")
	hoopers := New("hoopers", "Jordan")

	bugCalls, hooperCalls := 0, 0
	defer bugs.Subscribe(func(Snapshot[string]) { bugCalls++ })()
	defer hoopers.Subscribe(func(Snapshot[string]) { hooperCalls++ })()

	bugs.AddItem("Locust")

	assert.Equal(t, 1, bugCalls)
	assert.Equal(t, 0, hooperCalls)
	assert.Equal(t, 1, hoopers.Count())
}

func TestConcurrentAddItem(t *testing.T) {
	s := New[int]("numbers")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.AddItem(v)
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, 50, snap.Count)
	assert.Len(t, snap.Items, 50)
}

type recordingObserver struct {
	mu    sync.Mutex
	ops   []string
	items []int
}

func (o *recordingObserver) ObserveOperation(_ string, op string, result Status, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op+":"+result.String())
}

func (o *recordingObserver) ObserveItems(_ string, count int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, count)
}

func TestObserverSeesItemCounts(t *testing.T) {
	obs := &recordingObserver{}
	s := New("bugs", "Centipede").WithObserver(obs)

	s.AddItem("Locust")
	s.AddItem("Beetle")

	assert.Equal(t, []int{2, 3}, obs.items)
}
