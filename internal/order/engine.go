// Package order owns the order entity, its state machine, and the
// per-actor order collections. Mutations persist the acting actor's whole
// collection and append to the shared all-orders ledger; the other side
// sees a change only when it reads the ledger back (Refresh).
package order

import (
	"context"
	"fmt"
	"iter"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"printsync/internal/hydrate"
	"printsync/internal/identity"
	"printsync/internal/ledger"
	"printsync/internal/metrics"
	"printsync/internal/model"
	"printsync/internal/store"
)

// orderNumberPrefix labels human-readable order numbers. Numbers are
// per-actor sequential and not globally unique across actors.
const orderNumberPrefix = "QP-2024-"

// Notifier receives order transitions. Delivery is best-effort: failures
// are logged and suppressed so the order mutation still commits.
type Notifier interface {
	OrderCreated(ctx context.Context, o model.Order) error
	StatusChanged(ctx context.Context, o model.Order, by model.Role) error
}

// Engine is the order lifecycle engine for whichever actor the identity
// provider currently reports. It is single-session: one logical thread per
// actor, no internal concurrency.
type Engine struct {
	ids    identity.Provider
	kv     store.KV
	log    ledger.Writer
	notify Notifier
	reg    *metrics.Registry

	seed  bool
	now   func() time.Time
	newID func() string

	cur      model.Actor
	hydrated bool
	orders   []model.Order
}

type Option func(*Engine)

// WithLedger attaches the cross-actor ledger writer.
func WithLedger(w ledger.Writer) Option {
	return func(e *Engine) { e.log = w }
}

// WithNotifier attaches the notification engine.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// WithMetrics attaches a prometheus registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(e *Engine) { e.reg = reg }
}

// WithSeed installs the demo dataset for first-time actors.
func WithSeed() Option {
	return func(e *Engine) { e.seed = true }
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
		newID: func() string { return "order_" + uuid.NewString() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// session resolves the current actor and hydrates the projection for it.
// An actor change (logout/login, role switch) discards the previous
// actor's state entirely.
func (e *Engine) session(ctx context.Context) (model.Actor, error) {
	actor, err := e.ids.Current(ctx)
	if err != nil {
		return model.Actor{}, err
	}
	if e.hydrated && e.cur == actor {
		return actor, nil
	}
	orders, err := hydrate.LoadOrders(ctx, e.kv, actor, e.seed)
	if err != nil {
		return model.Actor{}, err
	}
	e.cur = actor
	e.orders = orders
	e.hydrated = true
	return actor, nil
}

// Create places a new order for the current actor. The order starts
// pending, gets an opaque id and the next persisted per-actor order
// number, and is announced on the ledger and to the notifier.
func (e *Engine) Create(ctx context.Context, spec model.PrintSpec, shop model.ShopSelection) (model.Order, error) {
	actor, err := e.session(ctx)
	if err != nil {
		return model.Order{}, err
	}
	if err := validate(spec, shop); err != nil {
		return model.Order{}, err
	}

	n, err := hydrate.GetCounter(ctx, e.kv, actor)
	if err != nil {
		return model.Order{}, err
	}
	n++
	// Reserve the number before committing the order: an interrupted create
	// leaves a numbering gap, never a duplicate.
	if err := hydrate.SetCounter(ctx, e.kv, actor, n); err != nil {
		return model.Order{}, err
	}

	now := e.now()
	o := model.Order{
		ID:          e.newID(),
		OrderNumber: fmt.Sprintf("%s%03d", orderNumberPrefix, n),
		FileName:    spec.FileName,
		FileURL:     spec.FileURL,
		ShopName:    shop.ShopName,
		ShopEmail:   shop.ShopEmail,
		College:     actor.College,
		Pages:       max(spec.Pages, 1),
		Color:       spec.Color,
		DoubleSided: spec.DoubleSided,
		Copies:      max(spec.Copies, 1),
		Binding:     spec.Binding,
		TotalCost:   spec.TotalCost,
		Status:      model.StatusPending,
		StatusText:  model.StatusPending.Label(),
		Rev:         1,
		CreatedAt:   now,
		UpdatedAt:   now,
		CustomerID:  actor.ID,
	}
	if o.Binding == "" {
		o.Binding = "No Binding"
	}

	prev := e.orders
	e.orders = append([]model.Order{o}, prev...)
	if err := hydrate.SaveOrders(ctx, e.kv, actor, e.orders); err != nil {
		e.orders = prev
		return model.Order{}, err
	}

	e.appendLedger(ledger.Entry{
		OrderID: o.ID, Seq: o.Rev, Status: o.Status, Role: actor.Role, TS: now, Order: o,
	})
	if e.reg != nil {
		e.reg.OrdersCreated.Inc()
	}
	e.emit(func() error { return e.notify.OrderCreated(ctx, o) })
	return o, nil
}

// UpdateStatus transitions an order in the acting actor's own collection.
// Illegal transitions are rejected; the update never propagates to the
// other actor's collection by itself.
func (e *Engine) UpdateStatus(ctx context.Context, orderID string, next model.Status) (model.Order, error) {
	actor, err := e.session(ctx)
	if err != nil {
		return model.Order{}, err
	}
	if !next.Known() {
		return model.Order{}, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", next)}
	}

	idx := -1
	for i, o := range e.orders {
		if o.ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Order{}, fmt.Errorf("order %s: %w", orderID, model.ErrNotFound)
	}

	cur := e.orders[idx]
	if !cur.Status.CanTransition(next) {
		if e.reg != nil {
			e.reg.StatusRejected.Inc()
		}
		return model.Order{}, &model.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("illegal transition %s -> %s", cur.Status, next),
		}
	}

	now := e.now()
	updated := cur.WithStatus(next, now)

	prev := e.orders
	nextOrders := make([]model.Order, len(prev))
	copy(nextOrders, prev)
	nextOrders[idx] = updated
	e.orders = nextOrders
	if err := hydrate.SaveOrders(ctx, e.kv, actor, e.orders); err != nil {
		e.orders = prev
		return model.Order{}, err
	}

	e.appendLedger(ledger.Entry{
		OrderID: updated.ID, Seq: updated.Rev, Status: updated.Status, Role: actor.Role, TS: now, Order: updated,
	})
	if e.reg != nil {
		e.reg.StatusUpdates.Inc()
	}
	e.emit(func() error { return e.notify.StatusChanged(ctx, updated, actor.Role) })
	return updated, nil
}

// Get returns one order from the actor's own collection.
func (e *Engine) Get(ctx context.Context, orderID string) (model.Order, error) {
	if _, err := e.session(ctx); err != nil {
		return model.Order{}, err
	}
	for _, o := range e.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, fmt.Errorf("order %s: %w", orderID, model.ErrNotFound)
}

// List returns the actor's orders newest-first by creation time, as a
// restartable sequence over a consistent snapshot.
func (e *Engine) List(ctx context.Context) (iter.Seq[model.Order], error) {
	if _, err := e.session(ctx); err != nil {
		return nil, err
	}
	snap := make([]model.Order, len(e.orders))
	copy(snap, e.orders)
	sort.SliceStable(snap, func(i, j int) bool {
		return snap[i].CreatedAt.After(snap[j].CreatedAt)
	})
	return func(yield func(model.Order) bool) {
		for _, o := range snap {
			if !yield(o) {
				return
			}
		}
	}, nil
}

// Refresh pulls ledger entries addressed to the current actor and
// materializes transitions it has not seen. This is the only way a change
// made by the other side becomes visible here; until it runs, the two
// copies may disagree.
func (e *Engine) Refresh(ctx context.Context, rd ledger.Reader) (int, error) {
	actor, err := e.session(ctx)
	if err != nil {
		return 0, err
	}
	r := hydrate.NewRestorer(e.kv, actor, nil, "")
	res := r.ReplayLedger(ctx, rd, 0)
	if res.Error != nil {
		return 0, res.Error
	}
	orders, err := hydrate.LoadOrders(ctx, e.kv, actor, false)
	if err != nil {
		return 0, err
	}
	e.orders = orders
	if e.reg != nil {
		e.reg.ReplayApplied.Add(float64(res.Applied))
		e.reg.ReplaySkipped.Add(float64(res.Skipped))
	}
	return res.Applied, nil
}

func (e *Engine) appendLedger(entry ledger.Entry) {
	if e.log == nil {
		return
	}
	if err := e.log.Append(entry); err != nil {
		// The local mutation is already committed; a missed ledger entry
		// widens the cross-actor visibility window but does not lose data.
		log.Printf("order: ledger append failed for %s: %v", entry.OrderID, err)
		return
	}
	if e.reg != nil {
		e.reg.LedgerAppended.Inc()
	}
}

// emit delivers a derived notification, best-effort.
func (e *Engine) emit(f func() error) {
	if e.notify == nil {
		return
	}
	if err := f(); err != nil {
		log.Printf("order: notification suppressed: %v", err)
		if e.reg != nil {
			e.reg.NotificationsSuppressed.Inc()
		}
	}
}

func validate(spec model.PrintSpec, shop model.ShopSelection) error {
	if spec.FileName == "" {
		return &model.ValidationError{Field: "fileName", Reason: "required"}
	}
	if shop.ShopName == "" {
		return &model.ValidationError{Field: "shopName", Reason: "required"}
	}
	if shop.ShopEmail == "" {
		return &model.ValidationError{Field: "shopEmail", Reason: "required"}
	}
	if spec.Pages < 0 || spec.Copies < 0 || spec.TotalCost < 0 {
		return &model.ValidationError{Field: "printSpec", Reason: "negative values"}
	}
	return nil
}
