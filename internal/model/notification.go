package model

import "time"

// NotificationType tags the order transition a notification was derived from.
type NotificationType string

const (
	// NotifyOrderCreated is emitted to the customer when an order is placed.
	NotifyOrderCreated NotificationType = "order_created"
	// NotifyStatusUpdate is emitted when a customer-side status change occurs.
	NotifyStatusUpdate NotificationType = "status_update"
	// NotifyOrderUpdated is emitted when a partner-side status change occurs.
	NotifyOrderUpdated NotificationType = "order_updated"
)

// Notification is an immutable event record derived from an order
// transition. Only the Read flag ever changes, and only via replacement.
// OrderID is a weak reference; the order may be gone while the
// notification remains.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	OrderID   string           `json:"orderId"`
}
