package models

import "github.com/phanto-shop/storefront/pkg/money"

// CartLine is one product/quantity pairing in the cart. Name, UnitPrice,
// Category and Image are snapshots taken when the product was added; later
// catalog changes never reach lines already in the cart.
type CartLine struct {
	ProductID int64       `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Name      string      `json:"name"`
	UnitPrice money.Cents `json:"unit_price"`
	Category  string      `json:"category,omitempty"`
	Image     string      `json:"image,omitempty"`
}

// NewCartLine snapshots a product into a cart line. The unit price is the
// effective (discounted) price converted to minor units.
func NewCartLine(p Product, qty int) CartLine {
	line := CartLine{
		ProductID: p.ID,
		Quantity:  qty,
		Name:      p.Name,
		UnitPrice: money.FromFloat(p.EffectivePrice()),
		Category:  p.Category,
	}
	if len(p.Images) > 0 {
		line.Image = p.Images[0]
	}
	return line
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() money.Cents {
	return l.UnitPrice.Mul(l.Quantity)
}
