package order

import "sync"

// Repository persists orders. Place must be all-or-nothing: the order, its
// items, the payment row, coupon consumption, and the cart wipe either all
// land or none do.
type Repository interface {
	Place(ord Order, items []Item, pay Payment) (*Order, error)
	ListByUser(userID int) ([]Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Place(ord Order, items []Item, pay Payment) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.ID = r.nextID
	r.nextID++
	for i := range items {
		items[i].OrderID = ord.ID
		items[i].ID = i + 1
	}
	ord.Items = items
	r.orders = append(r.orders, ord)
	cp := ord
	return &cp, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
