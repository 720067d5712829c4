package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velora-shop/velora-backend/internal/coupon"
	"github.com/velora-shop/velora-backend/internal/eta"
	"github.com/velora-shop/velora-backend/internal/pricing"
	"github.com/velora-shop/velora-backend/internal/product"
)

// PendingCoupons is the slice of the coupon repository the aggregator
// needs; reading only, consumption happens at order placement.
type PendingCoupons interface {
	GetPending(userID int) (*coupon.Applied, error)
}

// Config carries the pricing knobs the aggregator applies on every read.
type Config struct {
	Delivery    pricing.DeliveryConfig
	PlatformFee decimal.Decimal
	Calendar    eta.Calendar
}

// Service assembles the priced cart view and orchestrates line mutations.
type Service struct {
	repo     Repository
	products product.ServiceInterface
	pendings PendingCoupons
	cfg      Config
	now      func() time.Time
}

func NewService(repo Repository, products product.ServiceInterface, pendings PendingCoupons, cfg Config) *Service {
	return &Service{repo: repo, products: products, pendings: pendings, cfg: cfg, now: time.Now}
}

// PriceCart produces the full priced view of the user's cart. Lines whose
// product no longer exists are dropped silently; a missing variant at read
// time falls back to product-level display fields (only add/sync treat a
// missing variant as an error).
func (s *Service) PriceCart(userID int, isCOD bool) (*View, error) {
	lines, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]Item, 0, len(lines))
	paid := make([]pricing.PaidLine, 0, len(lines))
	totalMRP := decimal.Zero
	totalSelling := decimal.Zero

	for _, ln := range lines {
		p, err := s.products.GetByID(ln.ProductID)
		if err == product.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}

		var vPrice, vMRP *decimal.Decimal
		var vImage, vColor, vSize *string
		if ln.VariantID != nil {
			v, err := s.products.GetVariant(*ln.VariantID)
			if err == nil {
				vPrice, vMRP = v.Price, v.MRP
				vImage, vColor, vSize = v.Image, v.Color, v.Size
			} else if err != product.ErrVariantNotFound {
				return nil, err
			}
		}

		price := *product.PickDisplay(vPrice, &p.Price)
		mrp := *product.PickDisplay(vMRP, &p.MRP)

		item := Item{
			LineID:    ln.ID,
			ProductID: ln.ProductID,
			VariantID: ln.VariantID,
			Name:      p.Name,
			Image:     product.PickDisplay(vImage, p.Image),
			Color:     product.PickDisplay(vColor, p.Color),
			Size:      product.PickDisplay(vSize, p.Size),
			Quantity:  ln.Quantity,
			UnitPrice: price,
			UnitMRP:   mrp,
		}

		qty := decimal.NewFromInt(int64(ln.Quantity))
		item.LineTotal = price.Mul(qty)
		if p.SLADays != nil {
			est := s.cfg.Calendar.Estimate(now, *p.SLADays)
			item.EstimatedDelivery = &est
		}

		totalMRP = totalMRP.Add(mrp.Mul(qty))
		totalSelling = totalSelling.Add(item.LineTotal)
		paid = append(paid, pricing.PaidLine{Quantity: ln.Quantity, DeliveryCharge: p.DeliveryCharge})
		items = append(items, item)
	}

	discount := decimal.Zero
	if s.pendings != nil {
		applied, err := s.pendings.GetPending(userID)
		if err == nil {
			discount = coupon.Discount(&applied.Coupon, totalSelling, now)
		} else if err != coupon.ErrNoPending {
			return nil, err
		}
	}

	totalAfter := totalSelling.Sub(discount)
	if totalAfter.IsNegative() {
		totalAfter = decimal.Zero
	}

	fee := pricing.CalculateDeliveryFee(paid, totalAfter, isCOD, s.cfg.Delivery)
	shipping := decimal.NewFromInt(fee.Fee)

	platform := s.cfg.PlatformFee
	if len(items) == 0 {
		platform = decimal.Zero
	}

	return &View{
		Items: items,
		Summary: pricing.Summary{
			TotalMRP:           totalMRP,
			DiscountOnMRP:      totalMRP.Sub(totalSelling),
			CouponDiscount:     discount,
			TotalAfterDiscount: totalAfter,
			PlatformFee:        platform,
			ShippingFee:        shipping,
			ShippingFormula:    fee.Formula,
			FinalPayable:       totalAfter.Add(platform).Add(shipping),
		},
	}, nil
}

// Add validates the product (and variant, when given) and merges the
// quantity into any existing line for the same product+variant.
func (s *Service) Add(userID int, productID int, variantID *int, qty int, isCOD bool) (*View, error) {
	if qty <= 0 {
		return nil, ErrBadQuantity
	}
	if err := s.validateLine(productID, variantID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Upsert(userID, productID, variantID, qty); err != nil {
		return nil, err
	}
	return s.PriceCart(userID, isCOD)
}

// UpdateQuantity sets the quantity of a line the user owns. A quantity of
// zero or below removes the line.
func (s *Service) UpdateQuantity(userID int, lineID int, qty int, isCOD bool) (*View, error) {
	ln, err := s.repo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if ln.UserID != userID {
		return nil, ErrForbidden
	}
	if qty <= 0 {
		err = s.repo.Delete(lineID)
	} else {
		err = s.repo.SetQuantity(lineID, qty)
	}
	if err != nil {
		return nil, err
	}
	return s.PriceCart(userID, isCOD)
}

// RemoveByVariant drops every line of the user holding the given variant.
func (s *Service) RemoveByVariant(userID int, variantID int, isCOD bool) (*View, error) {
	n, err := s.repo.DeleteByVariant(userID, variantID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrLineNotFound
	}
	return s.PriceCart(userID, isCOD)
}

// GuestLine is one entry of a guest cart being merged at login.
type GuestLine struct {
	ProductID int  `json:"productID"`
	VariantID *int `json:"variantID,omitempty"`
	Quantity  int  `json:"quantity"`
}

// Sync merges guest-cart lines into the user's cart, summing quantities on
// product+variant match. Unlike reads, sync validates every referenced
// product and variant and fails on the first miss.
func (s *Service) Sync(userID int, guest []GuestLine, isCOD bool) (*View, error) {
	for _, g := range guest {
		if g.Quantity <= 0 {
			return nil, ErrBadQuantity
		}
		if err := s.validateLine(g.ProductID, g.VariantID); err != nil {
			return nil, err
		}
	}
	for _, g := range guest {
		if _, err := s.repo.Upsert(userID, g.ProductID, g.VariantID, g.Quantity); err != nil {
			return nil, err
		}
	}
	return s.PriceCart(userID, isCOD)
}

// Clear empties the cart and the pending coupon slot.
func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}

func (s *Service) validateLine(productID int, variantID *int) error {
	if _, err := s.products.GetByID(productID); err != nil {
		return err
	}
	if variantID != nil {
		v, err := s.products.GetVariant(*variantID)
		if err != nil {
			return err
		}
		if v.ProductID != productID {
			return ErrVariantMismatch
		}
	}
	return nil
}
