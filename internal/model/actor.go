package model

// Role distinguishes the two sides of an order.
type Role string

const (
	RoleCustomer Role = "customer"
	RolePartner  Role = "partner"
)

// Actor is a session identity. Customers are keyed by ID, partners by the
// shop email their orders are addressed to.
type Actor struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	College string `json:"college,omitempty"`
}

// ScopeID is the value that partitions this actor's collections:
// the customer id, or the partner's shop email.
func (a Actor) ScopeID() string {
	if a.Role == RolePartner {
		return a.Email
	}
	return a.ID
}

// OrdersKey is the storage key for this actor's order collection.
func (a Actor) OrdersKey() string {
	if a.Role == RolePartner {
		return "partner_orders_" + a.Email
	}
	return "orders_" + a.ID
}

// NotificationsKey is the storage key for this actor's notification collection.
func (a Actor) NotificationsKey() string {
	if a.Role == RolePartner {
		return "partner_notifications_" + a.Email
	}
	return "notifications_" + a.ID
}

// SeqKey is the storage key for this actor's order-number counter.
func (a Actor) SeqKey() string {
	return "order_seq_" + a.ScopeID()
}
