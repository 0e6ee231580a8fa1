package models

import (
	"time"

	"github.com/stripe/stripe-go/v79"

	"gofurn.io/storefront/models/enum"
)

// Order 代表訂單
type Order struct {
	ID             string           `json:"id"`
	Status         enum.OrderStatus `json:"status"`
	Currency       stripe.Currency  `json:"currency"`
	Subtotal       float64          `json:"subtotal"`
	DeliveryFee    float64          `json:"delivery_fee"`
	Tax            float64          `json:"tax"`
	Total          float64          `json:"total"`
	MonthlyPayment float64          `json:"monthly_payment,omitempty"`
	Items          []OrderItem      `json:"items"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// OrderItem 代表訂單中的單個商品項目
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  uint64  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderRequest is the checkout submission payload. PaymentType is the
// integer discriminant the server expects; TermMonths is present only for
// credit orders. IdempotencyKey dedupes retries of the same checkout
// session server-side.
type OrderRequest struct {
	IdempotencyKey string              `json:"idempotency_key"`
	Items          []OrderRequestItem  `json:"items"`
	DeliveryOption enum.DeliveryOption `json:"delivery_option"`
	PaymentType    enum.PaymentType    `json:"payment_type"`
	TermMonths     *uint64             `json:"term_months,omitempty"`
	BillingAddress Address             `json:"billing_address"`
	Currency       stripe.Currency     `json:"currency"`
}

type OrderRequestItem struct {
	ProductID string  `json:"product_id"`
	Quantity  uint64  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderEvent is the payload published on order.event.> when an order
// changes status server-side.
type OrderEvent struct {
	ID        string           `json:"id"`
	OrderID   string           `json:"order_id"`
	Status    enum.OrderStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
