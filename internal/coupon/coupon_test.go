package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func percentCoupon() Coupon {
	return Coupon{
		ID:             1,
		Code:           "SAVE10",
		PriceType:      PricePercentage,
		Value:          dec("10"),
		MinOrderAmount: dec("500"),
		Status:         true,
	}
}

func TestDiscount_Percentage(t *testing.T) {
	c := percentCoupon()
	got := Discount(&c, dec("1000"), now)
	if !got.Equal(dec("100")) {
		t.Fatalf("expected discount 100, got %s", got)
	}
}

func TestDiscount_BelowMinimum(t *testing.T) {
	c := percentCoupon()
	got := Discount(&c, dec("400"), now)
	if !got.IsZero() {
		t.Fatalf("expected zero below minimum, got %s", got)
	}
}

func TestDiscount_FixedCappedAtSubtotal(t *testing.T) {
	c := Coupon{ID: 2, Code: "FLAT1000", PriceType: PriceFixed, Value: dec("1000"), Status: true}
	got := Discount(&c, dec("600"), now)
	if !got.Equal(dec("600")) {
		t.Fatalf("expected discount capped at 600, got %s", got)
	}
}

func TestDiscount_DisabledCoupon(t *testing.T) {
	c := percentCoupon()
	c.Status = false
	if got := Discount(&c, dec("1000"), now); !got.IsZero() {
		t.Fatalf("disabled coupon must give zero, got %s", got)
	}
}

func TestDiscount_ValidityWindow(t *testing.T) {
	c := percentCoupon()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	// open-ended bounds pass
	if got := Discount(&c, dec("1000"), now); got.IsZero() {
		t.Fatal("open-ended window should pass")
	}

	c.FromDate = &future
	if got := Discount(&c, dec("1000"), now); !got.IsZero() {
		t.Fatalf("not-yet-valid coupon must give zero, got %s", got)
	}

	c.FromDate = &past
	c.ToDate = &past
	if got := Discount(&c, dec("1000"), now); !got.IsZero() {
		t.Fatalf("expired coupon must give zero, got %s", got)
	}

	c.ToDate = &future
	if got := Discount(&c, dec("1000"), now); got.IsZero() {
		t.Fatal("in-window coupon should discount")
	}
}

func TestDiscount_NilCoupon(t *testing.T) {
	if got := Discount(nil, dec("1000"), now); !got.IsZero() {
		t.Fatalf("nil coupon must give zero, got %s", got)
	}
}

func TestDiscount_NeverNegativeNorAboveSubtotal(t *testing.T) {
	c := Coupon{ID: 3, Code: "ALL", PriceType: PricePercentage, Value: dec("100"), Status: true}
	sub := dec("250")
	got := Discount(&c, sub, now)
	if got.IsNegative() || got.GreaterThan(sub) {
		t.Fatalf("discount %s outside [0, %s]", got, sub)
	}
}

func TestService_ApplyReplaceRemove(t *testing.T) {
	repo := NewInMemoryRepository([]Coupon{
		percentCoupon(),
		{ID: 2, Code: "FLAT50", PriceType: PriceFixed, Value: dec("50"), Status: true},
		{ID: 3, Code: "OLD", PriceType: PriceFixed, Value: dec("5"), Status: false},
	})
	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	applied, err := svc.Apply(7, "save10")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied.Coupon.Code != "SAVE10" || applied.State != StatePending {
		t.Fatalf("unexpected applied coupon %+v", applied)
	}

	// applying another coupon replaces the pending one
	if _, err := svc.Apply(7, "FLAT50"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	pending, err := repo.GetPending(7)
	if err != nil {
		t.Fatalf("expected pending coupon: %v", err)
	}
	if pending.Coupon.Code != "FLAT50" {
		t.Fatalf("expected FLAT50 pending, got %s", pending.Coupon.Code)
	}

	if _, err := svc.Apply(7, "OLD"); err != ErrInactive {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
	if _, err := svc.Apply(7, "NOPE"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Remove(7); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := repo.GetPending(7); err != ErrNoPending {
		t.Fatalf("expected ErrNoPending after removal, got %v", err)
	}
}

func TestService_ApplyExpiredWindow(t *testing.T) {
	past := now.Add(-time.Hour)
	repo := NewInMemoryRepository([]Coupon{{
		ID: 4, Code: "GONE", PriceType: PriceFixed, Value: dec("10"), Status: true, ToDate: &past,
	}})
	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	if _, err := svc.Apply(1, "GONE"); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}
