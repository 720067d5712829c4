package coupon

import (
	"strings"
	"sync"
	"time"
)

// Repository provides access to coupon rules and each user's pending
// applied coupon. Consumption happens inside the order placement
// transaction, not here.
type Repository interface {
	FindByCode(code string) (*Coupon, error)
	ListActive() ([]Coupon, error)
	GetPending(userID int) (*Applied, error)
	// SavePending replaces any existing pending coupon for the user.
	SavePending(userID int, couponID int, appliedAt string) (*Applied, error)
	DeletePending(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	coupons []Coupon
	pending map[int]*Applied
	nextID  int
}

func NewInMemoryRepository(seed []Coupon) *InMemoryRepository {
	return &InMemoryRepository{
		coupons: append([]Coupon(nil), seed...),
		pending: make(map[int]*Applied),
		nextID:  1,
	}
}

func (r *InMemoryRepository) FindByCode(code string) (*Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.coupons {
		if strings.EqualFold(r.coupons[i].Code, code) {
			c := r.coupons[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) ListActive() ([]Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		if c.Status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetPending(userID int) (*Applied, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.pending[userID]
	if !ok || a.State != StatePending {
		return nil, ErrNoPending
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryRepository) SavePending(userID int, couponID int, appliedAt string) (*Applied, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *Coupon
	for i := range r.coupons {
		if r.coupons[i].ID == couponID {
			found = &r.coupons[i]
			break
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	if appliedAt == "" {
		appliedAt = time.Now().UTC().Format(time.RFC3339)
	}
	a := &Applied{ID: r.nextID, UserID: userID, Coupon: *found, State: StatePending, AppliedAt: appliedAt}
	r.nextID++
	r.pending[userID] = a
	cp := *a
	return &cp, nil
}

func (r *InMemoryRepository) DeletePending(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.pending[userID]; !ok || a.State != StatePending {
		return ErrNoPending
	}
	delete(r.pending, userID)
	return nil
}
