package cart

import "sync"

// Store holds one session's cart. Quantity bounds are enforced here and
// nowhere else; callers never pre-validate. Totals are recomputed from the
// item list after every mutation rather than maintained by deltas, so they
// can never drift from the items.
type Store struct {
	mu            sync.Mutex
	items         []Item
	totalAmount   float64
	totalQuantity int
}

func NewStore() *Store {
	return &Store{}
}

// NewStoreFromItems rebuilds a store from persisted rows. Rows that violate
// the quantity bounds are clamped rather than dropped, so a session never
// loses an item to a bad row.
func NewStoreFromItems(items []Item) *Store {
	s := &Store{items: make([]Item, 0, len(items))}
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		if it.Quantity < MinQuantity {
			it.Quantity = MinQuantity
		}
		if it.Quantity > MaxQuantity {
			it.Quantity = MaxQuantity
		}
		seen[it.ID] = true
		s.items = append(s.items, it)
	}

	s.recompute()
	return s
}

// recompute derives both totals from the item list. Callers must hold mu.
func (s *Store) recompute() {
	var amount float64
	var quantity int
	for _, it := range s.items {
		amount += it.Price * float64(it.Quantity)
		quantity += it.Quantity
	}
	s.totalAmount = amount
	s.totalQuantity = quantity
}

// AddItem appends a new line or merges into an existing one with the same
// product id. A merge that would push the line past MaxQuantity is rejected
// whole, leaving the cart untouched.
func (s *Store) AddItem(item Item) error {
	if item.ID == "" {
		return ErrMissingID
	}
	if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			if s.items[i].Quantity+item.Quantity > MaxQuantity {
				return ErrInvalidQuantity
			}
			s.items[i].Quantity += item.Quantity
			s.recompute()
			return nil
		}
	}

	s.items = append(s.items, item)
	s.recompute()
	return nil
}

// RemoveItem deletes the line for the given product id. Removing an id that
// is not in the cart is a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.recompute()
			return
		}
	}
}

// UpdateQuantity overwrites a line's quantity. A quantity below MinQuantity
// is rejected; dropping a line goes through RemoveItem instead.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.recompute()
			return nil
		}
	}

	return ErrItemNotFound
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.recompute()
}

// Snapshot returns a copy of the current state in insertion order.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)

	return State{
		Items:         items,
		TotalAmount:   s.totalAmount,
		TotalQuantity: s.totalQuantity,
	}
}
