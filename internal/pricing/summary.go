package pricing

import "github.com/shopspring/decimal"

// Summary is the price breakdown returned with every cart read. It is
// recomputed on each request and never persisted.
type Summary struct {
	TotalMRP           decimal.Decimal `json:"totalMRP"`
	DiscountOnMRP      decimal.Decimal `json:"discountOnMRP"`
	CouponDiscount     decimal.Decimal `json:"couponDiscount"`
	TotalAfterDiscount decimal.Decimal `json:"totalAfterDiscount"`
	PlatformFee        decimal.Decimal `json:"platformFee"`
	ShippingFee        decimal.Decimal `json:"shippingFee"`
	ShippingFormula    string          `json:"shippingFormula"`
	FinalPayable       decimal.Decimal `json:"finalPayable"`
}
