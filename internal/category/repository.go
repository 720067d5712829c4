package category

import "sync"

// Repository provides access to category rows.
type Repository interface {
	List() ([]Category, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu   sync.RWMutex
	cats []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	return &InMemoryRepository{cats: append([]Category(nil), seed...)}
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Category(nil), r.cats...), nil
}
