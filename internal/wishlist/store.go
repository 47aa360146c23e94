package wishlist

import "sync"

// Store holds one session's wishlist in insertion order.
type Store struct {
	mu    sync.Mutex
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

func NewStoreFromItems(items []Item) *Store {
	s := &Store{items: make([]Item, 0, len(items))}
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		s.items = append(s.items, it)
	}

	return s
}

// Add upserts by product id. Re-adding an existing product refreshes its
// stored fields in place and never duplicates the entry.
func (s *Store) Add(item Item) error {
	if item.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			return nil
		}
	}

	s.items = append(s.items, item)
	return nil
}

// Remove deletes by product id; removing a missing id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

// Items returns an insertion-ordered copy.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}
