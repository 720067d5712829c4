package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/velora-shop/velora-backend/internal/cart"
)

// CartPricer is the slice of the cart service the order flow needs: the
// server-side priced view. Client-sent totals are never trusted.
type CartPricer interface {
	PriceCart(userID int, isCOD bool) (*cart.View, error)
}

// Service turns a priced cart into a placed order.
type Service struct {
	repo   Repository
	pricer CartPricer
	now    func() time.Time
}

func NewService(repo Repository, pricer CartPricer) *Service {
	return &Service{repo: repo, pricer: pricer, now: time.Now}
}

// Place prices the user's cart and persists the order atomically. The
// repository consumes the pending coupon and clears the cart in the same
// transaction.
func (s *Service) Place(userID int, paymentMethod string) (*Order, error) {
	if paymentMethod != MethodCard && paymentMethod != MethodCOD {
		return nil, ErrBadPaymentMethod
	}

	view, err := s.pricer.PriceCart(userID, paymentMethod == MethodCOD)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	sum := view.Summary
	ord := Order{
		Number:         uuid.NewString(),
		UserID:         userID,
		TotalMRP:       sum.TotalMRP,
		CouponDiscount: sum.CouponDiscount,
		PlatformFee:    sum.PlatformFee,
		ShippingFee:    sum.ShippingFee,
		GrandTotal:     sum.FinalPayable,
		Status:         StatusPending,
		PaymentMethod:  paymentMethod,
		CreatedAt:      s.now().UTC().Format(time.RFC3339),
	}

	items := make([]Item, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, Item{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Name:      it.Name,
			Image:     it.Image,
			UnitPrice: it.UnitPrice,
			UnitMRP:   it.UnitMRP,
			Quantity:  it.Quantity,
		})
	}

	pay := Payment{Method: paymentMethod, Status: PaymentPending, Amount: sum.FinalPayable}
	return s.repo.Place(ord, items, pay)
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}
