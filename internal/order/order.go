package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Status string
type PaymentStatus string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"

	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"

	MethodCard = "card"
	MethodCOD  = "cod"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrBadPaymentMethod = errors.New("unsupported payment method")
	// ErrBadReference wraps storage foreign-key violations so handlers can
	// answer 400 instead of 500.
	ErrBadReference = errors.New("referenced row does not exist")
)

// Order is the placed-order header. All amounts are frozen copies of the
// price summary computed at placement time.
type Order struct {
	ID             int             `json:"orderID"`
	Number         string          `json:"orderNumber"`
	UserID         int             `json:"userID"`
	TotalMRP       decimal.Decimal `json:"totalMRP"`
	CouponDiscount decimal.Decimal `json:"couponDiscount"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	ShippingFee    decimal.Decimal `json:"shippingFee"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	Status         Status          `json:"status"`
	PaymentMethod  string          `json:"paymentMethod"`
	CreatedAt      string          `json:"createdAt"`
	Items          []Item          `json:"items,omitempty"`
}

// Item is a denormalized snapshot of a cart line at placement time, so
// later catalog edits do not rewrite order history.
type Item struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"orderID"`
	ProductID int             `json:"productID"`
	VariantID *int            `json:"variantID,omitempty"`
	Name      string          `json:"name"`
	Image     *string         `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitMRP   decimal.Decimal `json:"unitMRP"`
	Quantity  int             `json:"quantity"`
}

// Payment is the payment row created alongside the order.
type Payment struct {
	ID      int             `json:"id"`
	OrderID int             `json:"orderID"`
	Method  string          `json:"method"`
	Status  PaymentStatus   `json:"status"`
	Amount  decimal.Decimal `json:"amount"`
}
