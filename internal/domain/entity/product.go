package entity

import "time"

// ProductStatus marks store availability
type ProductStatus string

// Product statuses
const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product is an affiliate-store item. AffiliateRate is the integer
// percentage of the line total credited to the attributed affiliate;
// zero disables the commission entirely.
type Product struct {
	ID            uint64
	Name          string
	PriceInCents  int64
	AffiliateRate int
	Status        ProductStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Purchasable reports whether checkout may sell this product
func (p *Product) Purchasable() bool {
	return p.Status == ProductActive
}

// FormattedPrice returns the unit price with 2 decimal places
func (p *Product) FormattedPrice() string {
	return FormatCents(p.PriceInCents)
}
