package coupon

import "time"

// Service orchestrates coupon application.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Apply attaches a coupon to the user's pending slot, replacing any coupon
// already there. The minimum-order check happens later, at pricing time.
func (s *Service) Apply(userID int, code string) (*Applied, error) {
	c, err := s.repo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if err := Validate(c, s.now()); err != nil {
		return nil, err
	}
	return s.repo.SavePending(userID, c.ID, s.now().UTC().Format(time.RFC3339))
}

// Remove detaches the user's pending coupon, if any.
func (s *Service) Remove(userID int) error {
	return s.repo.DeletePending(userID)
}

// ListActive returns the coupons currently enabled.
func (s *Service) ListActive() ([]Coupon, error) {
	return s.repo.ListActive()
}
