package cart

import "sync"

// Repository provides access to stored cart lines.
// Clear removes the user's lines together with any pending applied coupon;
// the Postgres implementation does both in one transaction.
type Repository interface {
	ListByUser(userID int) ([]Line, error)
	GetByID(lineID int) (*Line, error)
	// Upsert sums qty into an existing line with the same product+variant,
	// or inserts a new line.
	Upsert(userID int, productID int, variantID *int, qty int) (*Line, error)
	SetQuantity(lineID int, qty int) error
	Delete(lineID int) error
	DeleteByVariant(userID int, variantID int) (int64, error)
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios. It only holds
// cart lines; tests pair it with an in-memory coupon repository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	lines  []Line
	nextID int
}

func NewInMemoryRepository(seed []Line) *InMemoryRepository {
	r := &InMemoryRepository{lines: append([]Line(nil), seed...), nextID: 1}
	for _, ln := range seed {
		if ln.ID >= r.nextID {
			r.nextID = ln.ID + 1
		}
	}
	return r
}

func sameVariant(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Line, 0)
	for _, ln := range r.lines {
		if ln.UserID == userID {
			out = append(out, ln)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(lineID int) (*Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.lines {
		if r.lines[i].ID == lineID {
			ln := r.lines[i]
			return &ln, nil
		}
	}
	return nil, ErrLineNotFound
}

func (r *InMemoryRepository) Upsert(userID int, productID int, variantID *int, qty int) (*Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		ln := &r.lines[i]
		if ln.UserID == userID && ln.ProductID == productID && sameVariant(ln.VariantID, variantID) {
			ln.Quantity += qty
			cp := *ln
			return &cp, nil
		}
	}
	ln := Line{ID: r.nextID, UserID: userID, ProductID: productID, VariantID: variantID, Quantity: qty}
	r.nextID++
	r.lines = append(r.lines, ln)
	return &ln, nil
}

func (r *InMemoryRepository) SetQuantity(lineID int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		if r.lines[i].ID == lineID {
			r.lines[i].Quantity = qty
			return nil
		}
	}
	return ErrLineNotFound
}

func (r *InMemoryRepository) Delete(lineID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		if r.lines[i].ID == lineID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

func (r *InMemoryRepository) DeleteByVariant(userID int, variantID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.lines[:0]
	for _, ln := range r.lines {
		if ln.UserID == userID && ln.VariantID != nil && *ln.VariantID == variantID {
			n++
			continue
		}
		kept = append(kept, ln)
	}
	r.lines = kept
	return n, nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.lines[:0]
	for _, ln := range r.lines {
		if ln.UserID != userID {
			kept = append(kept, ln)
		}
	}
	r.lines = kept
	return nil
}
