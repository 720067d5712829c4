package product

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

// Repository provides read access to the catalog.
type Repository interface {
	GetByID(id int) (*Product, error)
	GetVariant(id int) (*Variant, error)
	ListByIDs(ids []int) ([]Product, error)
	List(categoryID *int, limit int) ([]Product, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	variants []Variant
}

func NewInMemoryRepository(products []Product, variants []Variant) *InMemoryRepository {
	return &InMemoryRepository{
		products: append([]Product(nil), products...),
		variants: append([]Variant(nil), variants...),
	}
}

func (r *InMemoryRepository) GetByID(id int) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) GetVariant(id int) (*Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.variants {
		if r.variants[i].ID == id {
			v := r.variants[i]
			return &v, nil
		}
	}
	return nil, ErrVariantNotFound
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for i := range r.products {
			if r.products[i].ID == id {
				out = append(out, r.products[i])
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List(categoryID *int, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Remove deletes a product, used by tests simulating catalog deletions.
func (r *InMemoryRepository) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.products[:0]
	for _, p := range r.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.products = kept
}
