package cart

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/velora-shop/velora-backend/internal/eta"
	"github.com/velora-shop/velora-backend/internal/pricing"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrForbidden       = errors.New("cart line belongs to another user")
	ErrBadQuantity     = errors.New("quantity must be positive")
	ErrVariantMismatch = errors.New("variant does not belong to product")
)

// Line is a stored cart row. Display data is resolved fresh on every read,
// never persisted here.
type Line struct {
	ID        int  `json:"lineID"`
	UserID    int  `json:"-"`
	ProductID int  `json:"productID"`
	VariantID *int `json:"variantID,omitempty"`
	Quantity  int  `json:"quantity"`
}

// Item is the priced view of a line. The per-unit delivery charge is an
// input to the fee calculation and deliberately not exposed here.
type Item struct {
	LineID            int             `json:"lineID"`
	ProductID         int             `json:"productID"`
	VariantID         *int            `json:"variantID,omitempty"`
	Name              string          `json:"name"`
	Image             *string         `json:"image,omitempty"`
	Color             *string         `json:"color,omitempty"`
	Size              *string         `json:"size,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	UnitMRP           decimal.Decimal `json:"unitMRP"`
	LineTotal         decimal.Decimal `json:"lineTotal"`
	EstimatedDelivery *eta.Estimate   `json:"estimatedDelivery,omitempty"`
}

// View is the full priced cart returned by every cart endpoint.
type View struct {
	Items   []Item          `json:"items"`
	Summary pricing.Summary `json:"priceSummary"`
}
