package models

// CartLine 代表購物車中的單個商品項目
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  uint64  `json:"quantity"`
}

// Subtotal is the line total, always derived from quantity and unit price.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}
