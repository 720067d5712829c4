package product

// ServiceInterface is what other packages (cart, order, wishlist) depend on.
type ServiceInterface interface {
	GetByID(id int) (*Product, error)
	GetVariant(id int) (*Variant, error)
	ListByIDs(ids []int) ([]Product, error)
	List(categoryID *int, limit int) ([]Product, error)
}

// Service provides catalog reads over a repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (*Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetVariant(id int) (*Variant, error) {
	return s.repo.GetVariant(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return s.repo.ListByIDs(ids)
}

func (s *Service) List(categoryID *int, limit int) ([]Product, error) {
	return s.repo.List(categoryID, limit)
}
