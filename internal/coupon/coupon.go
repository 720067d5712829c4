package coupon

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// PriceType enumerates the supported coupon discount strategies.
type PriceType string

const (
	// PricePercentage discounts a percentage of the cart subtotal.
	PricePercentage PriceType = "PERCENTAGE"
	// PriceFixed discounts a fixed amount, capped at the subtotal.
	PriceFixed PriceType = "FIXED"
)

var (
	// ErrNotFound is returned when a coupon code does not exist.
	ErrNotFound = errors.New("coupon not found")
	// ErrInactive is returned when a coupon has been disabled.
	ErrInactive = errors.New("coupon is not active")
	// ErrExpired is returned when a coupon is outside its validity window.
	ErrExpired = errors.New("coupon is outside its validity window")
	// ErrNoPending is returned when a user has no pending applied coupon.
	ErrNoPending = errors.New("no pending coupon")
)

// Coupon is a discount rule created by an admin.
type Coupon struct {
	ID             int             `json:"couponID"`
	Code           string          `json:"code"`
	PriceType      PriceType       `json:"priceType"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	FromDate       *time.Time      `json:"fromDate,omitempty"`
	ToDate         *time.Time      `json:"toDate,omitempty"`
	Status         bool            `json:"status"`
}

// AppliedState tags the lifecycle of an applied coupon explicitly rather
// than relying on order_id nullability.
type AppliedState string

const (
	StatePending  AppliedState = "PENDING"
	StateConsumed AppliedState = "CONSUMED"
)

// Applied is a coupon a user attached to their cart. At most one pending
// row exists per user; placing an order marks it consumed.
type Applied struct {
	ID        int          `json:"id"`
	UserID    int          `json:"userID"`
	Coupon    Coupon       `json:"coupon"`
	State     AppliedState `json:"state"`
	OrderID   *int         `json:"orderID,omitempty"`
	AppliedAt string       `json:"appliedAt"`
}

// windowOpen reports whether the coupon is valid at the given instant.
// Unset bounds are open-ended.
func windowOpen(c *Coupon, now time.Time) bool {
	if c.FromDate != nil && c.FromDate.After(now) {
		return false
	}
	if c.ToDate != nil && c.ToDate.Before(now) {
		return false
	}
	return true
}

// Discount computes the discount a coupon grants on the given subtotal.
// It is read-only and returns zero whenever any eligibility check fails:
// disabled coupon, closed validity window, or subtotal below the minimum.
// The result never exceeds the subtotal.
func Discount(c *Coupon, subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if c == nil || !c.Status {
		return decimal.Zero
	}
	if !windowOpen(c, now) {
		return decimal.Zero
	}
	if subtotal.LessThan(c.MinOrderAmount) {
		return decimal.Zero
	}

	switch c.PriceType {
	case PricePercentage:
		return c.Value.Div(decimal.NewFromInt(100)).Mul(subtotal)
	case PriceFixed:
		if c.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return c.Value
	}
	return decimal.Zero
}

// Validate checks whether a coupon may be attached to a cart right now.
// The minimum-order check is deliberately not here: it is re-evaluated on
// every cart read, so a coupon applied to a small cart simply yields a
// zero discount until the cart grows.
func Validate(c *Coupon, now time.Time) error {
	if !c.Status {
		return ErrInactive
	}
	if !windowOpen(c, now) {
		return ErrExpired
	}
	return nil
}
