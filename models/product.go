package models

// Product mirrors the catalog API payload. The storefront never owns or
// mutates products; cart lines copy the display fields they need instead of
// referencing these records.
type Product struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Price         float64           `json:"price"`
	DiscountPrice *float64          `json:"discount_price,omitempty"`
	Category      string            `json:"category"`
	Stock         int               `json:"stock"`
	Rating        float64           `json:"rating"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Images        []string          `json:"images,omitempty"`
}

// EffectivePrice is the price a buyer actually pays: the discount price when
// one is set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}
