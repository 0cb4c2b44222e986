package catalog

import "github.com/vango-dev/rstore/pkg/store"

// BugStore is a local list of bug names.
type BugStore struct {
	*store.Store[string]
}

// NewBugStore returns a bug store seeded with "Centipede".
func NewBugStore() *BugStore {
	return &BugStore{store.New("bugs", "Centipede")}
}

// AddBug appends a bug.
func (b *BugStore) AddBug(bug string) {
	b.AddItem(bug)
}

// BugsCount returns the number of bugs.
func (b *BugStore) BugsCount() int {
	return b.Count()
}

// HooperStore is a local list of basketball players.
type HooperStore struct {
	*store.Store[string]
}

// NewHooperStore returns an empty hooper store.
func NewHooperStore(initial ...string) *HooperStore {
	return &HooperStore{store.New("hoopers", initial...)}
}

func (h *HooperStore) AddHooper(name string) {
	h.AddItem(name)
}

func (h *HooperStore) HoopersCount() int {
	return h.Count()
}
