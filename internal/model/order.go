package model

import "time"

// PrintSpec is the print configuration snapshot captured at order creation.
// Produced by the upload/configuration flow and consumed verbatim.
type PrintSpec struct {
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	Pages       int    `json:"pages"`
	Color       bool   `json:"color"`
	DoubleSided bool   `json:"doubleSided"`
	Copies      int    `json:"copies"`
	Binding     string `json:"binding"`
	TotalCost   int64  `json:"totalCost"`
}

// ShopSelection identifies the shop an order is placed with.
type ShopSelection struct {
	ShopName  string `json:"shopName"`
	ShopEmail string `json:"shopEmail"`
}

// CustomerContact is the denormalized customer snapshot carried on
// partner-side order copies.
type CustomerContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Order is one print job from request to fulfillment. The customer and the
// partner each hold their own copy; the copies share ID but live in
// independent scopes.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`

	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	ShopName    string `json:"shopName"`
	ShopEmail   string `json:"shopEmail"`
	College     string `json:"college"`
	Pages       int    `json:"pages"`
	Color       bool   `json:"color"`
	DoubleSided bool   `json:"doubleSided"`
	Copies      int    `json:"copies"`
	Binding     string `json:"binding"`
	TotalCost   int64  `json:"totalCost"`

	Status     Status `json:"status"`
	StatusText string `json:"statusText"`
	// Rev counts transitions: 1 at creation, +1 per status change. Ledger
	// entries carry it so replay can skip already-applied transitions.
	Rev int64 `json:"rev"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CustomerID string           `json:"customerId,omitempty"`
	Customer   *CustomerContact `json:"customer,omitempty"`
}

// WithStatus returns a copy of o with status, display text, updatedAt and
// revision advanced. The receiver is never mutated.
func (o Order) WithStatus(next Status, at time.Time) Order {
	o.Status = next
	o.StatusText = next.Label()
	o.UpdatedAt = at
	o.Rev++
	return o
}
