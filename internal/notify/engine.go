// Package notify derives notifications from order transitions and answers
// read/unread queries. Records are copy-on-write: a value handed out
// earlier never changes when its collection is mutated.
package notify

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"printsync/internal/hydrate"
	"printsync/internal/identity"
	"printsync/internal/metrics"
	"printsync/internal/model"
	"printsync/internal/store"
)

// Engine is the notification engine for whichever actor the identity
// provider currently reports. Switching actors discards the in-memory
// projection and re-hydrates from the new scope.
type Engine struct {
	ids identity.Provider
	kv  store.KV
	reg *metrics.Registry

	now   func() time.Time
	newID func() string

	cur           model.Actor
	hydrated      bool
	notifications []model.Notification
}

type Option func(*Engine)

// WithMetrics attaches a prometheus registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(e *Engine) { e.reg = reg }
}

// WithClock overrides the engine clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(ids identity.Provider, kv store.KV, opts ...Option) *Engine {
	e := &Engine{
		ids:   ids,
		kv:    kv,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return "notif_" + uuid.NewString() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// session resolves the current actor and hydrates the projection for it,
// discarding any state held for a previous actor.
func (e *Engine) session(ctx context.Context) (model.Actor, error) {
	actor, err := e.ids.Current(ctx)
	if err != nil {
		return model.Actor{}, err
	}
	if e.hydrated && e.cur == actor {
		return actor, nil
	}
	ns, err := hydrate.LoadNotifications(ctx, e.kv, actor)
	if err != nil {
		return model.Actor{}, err
	}
	e.cur = actor
	e.notifications = ns
	e.hydrated = true
	return actor, nil
}

func (e *Engine) persist(ctx context.Context, actor model.Actor) error {
	return hydrate.SaveNotifications(ctx, e.kv, actor, e.notifications)
}

// OrderCreated records the notification for a freshly placed order.
func (e *Engine) OrderCreated(ctx context.Context, o model.Order) error {
	n := model.Notification{
		ID:        e.newID(),
		Type:      model.NotifyOrderCreated,
		Title:     "Order Placed Successfully",
		Message:   fmt.Sprintf("Your order %s has been placed at %s", o.OrderNumber, o.ShopName),
		Timestamp: e.now(),
		OrderID:   o.ID,
	}
	return e.append(ctx, n)
}

// StatusChanged records the notification for a status transition. The type
// depends on which side made the change: customers see a status_update,
// partners an order_updated acknowledging their own action.
func (e *Engine) StatusChanged(ctx context.Context, o model.Order, by model.Role) error {
	n := model.Notification{
		ID:        e.newID(),
		Timestamp: e.now(),
		OrderID:   o.ID,
	}
	if by == model.RolePartner {
		n.Type = model.NotifyOrderUpdated
		n.Title = fmt.Sprintf("Order %s Status Updated", o.OrderNumber)
		n.Message = fmt.Sprintf("You updated order status to %s", o.Status.Label())
	} else {
		n.Type = model.NotifyStatusUpdate
		n.Title = fmt.Sprintf("Order %s Status Updated", o.OrderNumber)
		n.Message = fmt.Sprintf("Your order status has been updated to %s", o.Status.Label())
	}
	return e.append(ctx, n)
}

func (e *Engine) append(ctx context.Context, n model.Notification) error {
	actor, err := e.session(ctx)
	if err != nil {
		return err
	}
	prev := e.notifications
	e.notifications = append([]model.Notification{n}, prev...)
	if err := e.persist(ctx, actor); err != nil {
		e.notifications = prev
		return err
	}
	if e.reg != nil {
		e.reg.NotificationsEmitted.Inc()
		e.reg.Unread.Set(float64(unread(e.notifications)))
	}
	return nil
}

// MarkRead flips the read flag on one notification. A missing id is a
// no-op, not an error.
func (e *Engine) MarkRead(ctx context.Context, id string) error {
	actor, err := e.session(ctx)
	if err != nil {
		return err
	}
	changed := false
	next := make([]model.Notification, len(e.notifications))
	for i, n := range e.notifications {
		if n.ID == id && !n.Read {
			n.Read = true
			changed = true
		}
		next[i] = n
	}
	if !changed {
		return nil
	}
	prev := e.notifications
	e.notifications = next
	if err := e.persist(ctx, actor); err != nil {
		e.notifications = prev
		return err
	}
	if e.reg != nil {
		e.reg.Unread.Set(float64(unread(e.notifications)))
	}
	return nil
}

// MarkAllRead flips the read flag on every notification. Idempotent.
func (e *Engine) MarkAllRead(ctx context.Context) error {
	actor, err := e.session(ctx)
	if err != nil {
		return err
	}
	next := make([]model.Notification, len(e.notifications))
	for i, n := range e.notifications {
		n.Read = true
		next[i] = n
	}
	prev := e.notifications
	e.notifications = next
	if err := e.persist(ctx, actor); err != nil {
		e.notifications = prev
		return err
	}
	if e.reg != nil {
		e.reg.Unread.Set(0)
	}
	return nil
}

// UnreadCount returns the number of unread notifications.
func (e *Engine) UnreadCount(ctx context.Context) (int, error) {
	if _, err := e.session(ctx); err != nil {
		return 0, err
	}
	return unread(e.notifications), nil
}

// List returns the notifications newest-first as a restartable sequence
// over a consistent snapshot.
func (e *Engine) List(ctx context.Context) (iter.Seq[model.Notification], error) {
	if _, err := e.session(ctx); err != nil {
		return nil, err
	}
	snap := make([]model.Notification, len(e.notifications))
	copy(snap, e.notifications)
	return func(yield func(model.Notification) bool) {
		for _, n := range snap {
			if !yield(n) {
				return
			}
		}
	}, nil
}

func unread(ns []model.Notification) int {
	c := 0
	for _, n := range ns {
		if !n.Read {
			c++
		}
	}
	return c
}
