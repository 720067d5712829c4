package product

import "github.com/shopspring/decimal"

// Product is a catalog row. Price/MRP live here as the base values; a
// variant may override any of the display fields.
type Product struct {
	ID             int              `json:"productID"`
	Name           string           `json:"productName"`
	Slug           string           `json:"slug"`
	Brand          *string          `json:"brand,omitempty"`
	CategoryID     *int             `json:"categoryID,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	MRP            decimal.Decimal  `json:"mrp"`
	Image          *string          `json:"image,omitempty"`
	Color          *string          `json:"color,omitempty"`
	Size           *string          `json:"size,omitempty"`
	SLADays        *int             `json:"slaDays,omitempty"`
	DeliveryCharge *decimal.Decimal `json:"deliveryCharge,omitempty"`
}

// Variant carries per-variant overrides. Every field other than the keys is
// optional; absent fields fall back to the product-level value.
type Variant struct {
	ID        int              `json:"variantID"`
	ProductID int              `json:"productID"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	MRP       *decimal.Decimal `json:"mrp,omitempty"`
	Image     *string          `json:"image,omitempty"`
	Color     *string          `json:"color,omitempty"`
	Size      *string          `json:"size,omitempty"`
}

// PickDisplay resolves the "variant field if present, else product field"
// precedence used for every displayed attribute.
func PickDisplay[T any](variant, product *T) *T {
	if variant != nil {
		return variant
	}
	return product
}
