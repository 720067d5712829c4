package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func baseConfig(mode CombineMode) DeliveryConfig {
	return DeliveryConfig{
		CombineMode:              mode,
		PerAdditionalPaidItemFee: dec("149"),
		FreeShippingThreshold:    dec("25000"),
		MaxCap:                   dec("500"),
		CODFee:                   dec("50"),
		CODFeeOnFreeShipping:     true,
	}
}

// three lines: qty 1 @ 100, qty 2 @ 50, qty 1 @ nil
func threeLines() []PaidLine {
	return []PaidLine{
		{Quantity: 1, DeliveryCharge: decp("100")},
		{Quantity: 2, DeliveryCharge: decp("50")},
		{Quantity: 1, DeliveryCharge: nil},
	}
}

func TestCalculateDeliveryFee_SumMode(t *testing.T) {
	res := CalculateDeliveryFee(threeLines(), dec("1000"), false, baseConfig(CombineSum))
	if res.Fee != 200 {
		t.Fatalf("expected fee 200, got %d (formula %q)", res.Fee, res.Formula)
	}
	if !strings.Contains(res.Formula, "sum(") {
		t.Fatalf("formula should record the sum branch, got %q", res.Formula)
	}
}

func TestCalculateDeliveryFee_MaxPlusAddon(t *testing.T) {
	res := CalculateDeliveryFee(threeLines(), dec("1000"), false, baseConfig(CombineMaxPlusAddon))
	// sorted desc [100, 50, 50] -> 100 + 2*149 = 398
	if res.Fee != 398 {
		t.Fatalf("expected fee 398, got %d (formula %q)", res.Fee, res.Formula)
	}
	if !strings.Contains(res.Formula, "max(100)") {
		t.Fatalf("formula should record the max branch, got %q", res.Formula)
	}
}

func TestCalculateDeliveryFee_EmptyCart(t *testing.T) {
	res := CalculateDeliveryFee(nil, dec("0"), false, baseConfig(CombineSum))
	if res.Fee != 0 {
		t.Fatalf("expected fee 0 for empty cart, got %d", res.Fee)
	}
	if !strings.Contains(res.Formula, "no paid delivery items") {
		t.Fatalf("formula should mention no paid items, got %q", res.Formula)
	}
}

func TestCalculateDeliveryFee_ZeroChargeExcluded(t *testing.T) {
	lines := []PaidLine{
		{Quantity: 3, DeliveryCharge: decp("0")},
		{Quantity: 2, DeliveryCharge: nil},
	}
	res := CalculateDeliveryFee(lines, dec("1000"), false, baseConfig(CombineSum))
	if res.Fee != 0 {
		t.Fatalf("zero-charge lines must not contribute, got fee %d", res.Fee)
	}
	if !strings.Contains(res.Formula, "no paid delivery items") {
		t.Fatalf("unexpected formula %q", res.Formula)
	}
}

func TestCalculateDeliveryFee_FreeShippingThreshold(t *testing.T) {
	res := CalculateDeliveryFee(threeLines(), dec("30000"), false, baseConfig(CombineSum))
	if res.Fee != 0 {
		t.Fatalf("expected free shipping above threshold, got %d", res.Fee)
	}
	if !strings.Contains(res.Formula, "free shipping") {
		t.Fatalf("formula should record the override, got %q", res.Formula)
	}
}

func TestCalculateDeliveryFee_ThresholdDisabledWhenZero(t *testing.T) {
	cfg := baseConfig(CombineSum)
	cfg.FreeShippingThreshold = decimal.Zero
	res := CalculateDeliveryFee(threeLines(), dec("30000"), false, cfg)
	if res.Fee != 200 {
		t.Fatalf("zero threshold must not trigger free shipping, got %d", res.Fee)
	}
}

func TestCalculateDeliveryFee_Cap(t *testing.T) {
	lines := []PaidLine{{Quantity: 10, DeliveryCharge: decp("100")}}
	res := CalculateDeliveryFee(lines, dec("1000"), false, baseConfig(CombineSum))
	if res.Fee != 500 {
		t.Fatalf("expected cap at 500, got %d", res.Fee)
	}
	if !strings.Contains(res.Formula, "capped at 500") {
		t.Fatalf("formula should record the cap, got %q", res.Formula)
	}
}

func TestCalculateDeliveryFee_CODAddedAfterCap(t *testing.T) {
	lines := []PaidLine{{Quantity: 10, DeliveryCharge: decp("100")}}
	res := CalculateDeliveryFee(lines, dec("1000"), true, baseConfig(CombineSum))
	if res.Fee != 550 {
		t.Fatalf("expected cap + COD = 550, got %d", res.Fee)
	}
}

func TestCalculateDeliveryFee_CODOnFreeShipping(t *testing.T) {
	cfg := baseConfig(CombineSum)
	res := CalculateDeliveryFee(threeLines(), dec("30000"), true, cfg)
	if res.Fee != 50 {
		t.Fatalf("COD fee should survive the free-shipping override, got %d", res.Fee)
	}

	cfg.CODFeeOnFreeShipping = false
	res = CalculateDeliveryFee(threeLines(), dec("30000"), true, cfg)
	if res.Fee != 0 {
		t.Fatalf("COD fee should be waived when configured off, got %d", res.Fee)
	}
}

func TestCalculateDeliveryFee_Rounding(t *testing.T) {
	lines := []PaidLine{{Quantity: 1, DeliveryCharge: decp("99.5")}}
	res := CalculateDeliveryFee(lines, dec("1000"), false, baseConfig(CombineSum))
	if res.Fee != 100 {
		t.Fatalf("expected half-up rounding to 100, got %d", res.Fee)
	}
}

func TestCalculateDeliveryFee_NeverExceedsCapPlusCOD(t *testing.T) {
	cfg := baseConfig(CombineMaxPlusAddon)
	lines := []PaidLine{
		{Quantity: 7, DeliveryCharge: decp("320")},
		{Quantity: 4, DeliveryCharge: decp("80")},
	}
	res := CalculateDeliveryFee(lines, dec("100"), true, cfg)
	limit := cfg.MaxCap.Add(cfg.CODFee).IntPart()
	if res.Fee < 0 || res.Fee > limit {
		t.Fatalf("fee %d outside [0, %d]", res.Fee, limit)
	}
}
