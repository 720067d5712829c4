package wishlist

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyListed = errors.New("product already in wishlist")
	ErrNotListed     = errors.New("product not in wishlist")
)

// Repository provides access to each user's wishlist product ids.
type Repository interface {
	Add(userID int, productID int) ([]int, error)
	Remove(userID int, productID int) ([]int, error)
	List(userID int) ([]int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	lists map[int][]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lists: make(map[int][]int)}
}

func (r *InMemoryRepository) Add(userID int, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pid := range r.lists[userID] {
		if pid == productID {
			return nil, ErrAlreadyListed
		}
	}
	r.lists[userID] = append(r.lists[userID], productID)
	return append([]int(nil), r.lists[userID]...), nil
}

func (r *InMemoryRepository) Remove(userID int, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	kept := make([]int, 0, len(r.lists[userID]))
	for _, pid := range r.lists[userID] {
		if pid == productID {
			found = true
			continue
		}
		kept = append(kept, pid)
	}
	if !found {
		return nil, ErrNotListed
	}
	r.lists[userID] = kept
	return append([]int(nil), kept...), nil
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int(nil), r.lists[userID]...), nil
}
