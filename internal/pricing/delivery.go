package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CombineMode selects how per-item delivery charges are combined into a
// single shipping fee.
type CombineMode string

const (
	// CombineSum adds up every paid charge.
	CombineSum CombineMode = "SUM"
	// CombineMaxPlusAddon charges the single highest fee once and a flat
	// add-on for every further paid item.
	CombineMaxPlusAddon CombineMode = "MAX_PLUS_ADDON"
)

// DeliveryConfig carries the tunable knobs of the shipping fee formula.
// It is passed explicitly so tests can vary it freely.
type DeliveryConfig struct {
	CombineMode              CombineMode
	PerAdditionalPaidItemFee decimal.Decimal
	FreeShippingThreshold    decimal.Decimal
	MaxCap                   decimal.Decimal
	CODFee                   decimal.Decimal
	// CODFeeOnFreeShipping keeps the COD fee even after the free-shipping
	// threshold zeroed the base fee. Pending product sign-off, default true.
	CODFeeOnFreeShipping bool
}

// PaidLine is the per-cart-line input to the fee calculation. A nil
// DeliveryCharge means the line is excluded from delivery math entirely;
// zero means free but shippable.
type PaidLine struct {
	Quantity       int
	DeliveryCharge *decimal.Decimal
}

// FeeResult is the computed shipping fee plus a trace of which branches
// fired, kept for auditability.
type FeeResult struct {
	Fee     int64  `json:"fee"`
	Formula string `json:"formula"`
}

// CalculateDeliveryFee computes the shipping fee for a cart. subtotal is the
// post-coupon cart total, used for the free-shipping threshold.
func CalculateDeliveryFee(lines []PaidLine, subtotal decimal.Decimal, isCOD bool, cfg DeliveryConfig) FeeResult {
	// expand each line into quantity repeated charges, skipping null and
	// non-positive charges (those lines never contribute to the fee)
	charges := make([]decimal.Decimal, 0, len(lines))
	for _, ln := range lines {
		if ln.DeliveryCharge == nil || !ln.DeliveryCharge.IsPositive() {
			continue
		}
		for i := 0; i < ln.Quantity; i++ {
			charges = append(charges, *ln.DeliveryCharge)
		}
	}

	var fee decimal.Decimal
	var trace []string
	freeShipping := false

	switch {
	case len(charges) == 0:
		trace = append(trace, "no paid delivery items")
	case cfg.CombineMode == CombineSum:
		parts := make([]string, len(charges))
		for i, c := range charges {
			fee = fee.Add(c)
			parts[i] = c.String()
		}
		trace = append(trace, fmt.Sprintf("sum(%s) = %s", strings.Join(parts, ", "), fee))
	default: // MAX_PLUS_ADDON
		sort.Slice(charges, func(i, j int) bool { return charges[i].GreaterThan(charges[j]) })
		extra := decimal.NewFromInt(int64(len(charges) - 1)).Mul(cfg.PerAdditionalPaidItemFee)
		fee = charges[0].Add(extra)
		trace = append(trace, fmt.Sprintf("max(%s) + %d x %s = %s",
			charges[0], len(charges)-1, cfg.PerAdditionalPaidItemFee, fee))
	}

	// the threshold overrides whatever the combine step produced
	if cfg.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		fee = decimal.Zero
		freeShipping = true
		trace = append(trace, fmt.Sprintf("free shipping (%s >= %s)", subtotal, cfg.FreeShippingThreshold))
	}

	if cfg.MaxCap.IsPositive() && fee.GreaterThan(cfg.MaxCap) {
		fee = cfg.MaxCap
		trace = append(trace, fmt.Sprintf("capped at %s", cfg.MaxCap))
	}

	if isCOD && cfg.CODFee.IsPositive() && (!freeShipping || cfg.CODFeeOnFreeShipping) {
		fee = fee.Add(cfg.CODFee)
		trace = append(trace, fmt.Sprintf("COD +%s", cfg.CODFee))
	}

	rounded := fee.Round(0).IntPart()
	if rounded < 0 {
		rounded = 0
	}
	return FeeResult{Fee: rounded, Formula: strings.Join(trace, "; ")}
}
