package models

import (
	"time"

	"github.com/stripe/stripe-go/v79"
)

// Product 代表商品
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       float64         `json:"price"`
	Currency    stripe.Currency `json:"currency"`
	CategoryID  *uint64         `json:"category_id,omitempty"`
	InStock     bool            `json:"in_stock"`
}

// Category 代表商品分類
type Category struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	ParentID *uint64 `json:"parent_id,omitempty"`
}

// CategoryTree is a category with its resolved children, assembled
// client-side for navigation rendering.
type CategoryTree struct {
	*Category
	Children []*CategoryTree `json:"children,omitempty"`
}

// InventoryItem is the admin console's view of a product's stock level.
type InventoryItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Reserved  int64     `json:"reserved"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalesReport is a server-generated aggregate; the client only renders it.
type SalesReport struct {
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	OrderCount uint64    `json:"order_count"`
	GrossTotal float64   `json:"gross_total"`
	TaxTotal   float64   `json:"tax_total"`
}

// AuditEntry is one back-office audit log row.
type AuditEntry struct {
	ID        uint64    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}
