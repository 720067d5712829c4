package wishlist

import (
	"github.com/velora-shop/velora-backend/internal/product"
)

// Service resolves wishlist product ids into full product records.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Add(userID int, productID int) ([]product.Product, error) {
	// Reject ids that do not resolve to a live product.
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	ids, err := s.repo.Add(userID, productID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByIDs(ids)
}

func (s *Service) Remove(userID int, productID int) ([]product.Product, error) {
	ids, err := s.repo.Remove(userID, productID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByIDs(ids)
}

// List enriches the stored ids; products deleted since being wished for
// are simply absent from the response.
func (s *Service) List(userID int) ([]product.Product, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByIDs(ids)
}
