package dto

import "time"

// CartItemRequest represents one checkout line item
type CartItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents an immediate store checkout
type CheckoutRequest struct {
	Items       []CartItemRequest `json:"items" binding:"required"`
	AffiliateID *uint64           `json:"affiliateId,omitempty"`
}

// CheckoutResponse represents a committed checkout
type CheckoutResponse struct {
	Total         string `json:"total"`
	ItemCount     int    `json:"itemCount"`
	ResultBalance string `json:"resultBalance"`
}

// PlaceOrderRequest represents a deferred-payment order
type PlaceOrderRequest struct {
	ProductID   uint64  `json:"productId" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	AffiliateID *uint64 `json:"affiliateId,omitempty"`
}

// OrderResponse represents one pending order
type OrderResponse struct {
	OrderID   uint64    `json:"orderId"`
	ProductID uint64    `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unitPrice"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompleteOrdersResponse represents a bulk order settlement
type CompleteOrdersResponse struct {
	Completed     int    `json:"completed"`
	Total         string `json:"total"`
	ResultBalance string `json:"resultBalance"`
}

// PackagePurchaseResponse represents a committed package purchase
type PackagePurchaseResponse struct {
	PackageName   string `json:"packageName"`
	Price         string `json:"price"`
	ReferralPaid  string `json:"referralPaid"`
	ResultBalance string `json:"resultBalance"`
}
