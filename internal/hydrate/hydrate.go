// Package hydrate loads and persists per-actor projections. The record
// store holds whole serialized collections; this package owns the
// encode/decode boundary and the first-session seed dataset.
package hydrate

import (
	"context"
	"encoding/json"
	"fmt"

	"printsync/internal/model"
	"printsync/internal/store"
)

// LoadOrders returns the actor's order collection. When seed is set, a
// missing collection is installed from the demo dataset and persisted
// together with the matching order-number counter, so a fresh demo session
// starts with something to look at and numbering continues past the seeds.
func LoadOrders(ctx context.Context, kv store.KV, actor model.Actor, seed bool) ([]model.Order, error) {
	var orders []model.Order
	ok, err := loadCollection(ctx, kv, actor.OrdersKey(), &orders)
	if err != nil {
		return nil, err
	}
	if ok || !seed {
		return orders, nil
	}
	orders = SeedOrders(actor)
	if err := SaveOrders(ctx, kv, actor, orders); err != nil {
		return nil, err
	}
	if err := SetCounter(ctx, kv, actor, int64(len(orders))); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetCounter reads the actor's persisted order-number counter.
func GetCounter(ctx context.Context, kv store.KV, actor model.Actor) (int64, error) {
	b, ok, err := kv.Get(ctx, actor.SeqKey())
	if err != nil {
		return 0, &model.PersistenceError{Op: "get", Key: actor.SeqKey(), Err: err}
	}
	if !ok {
		return 0, nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, &model.PersistenceError{Op: "get", Key: actor.SeqKey(), Err: fmt.Errorf("corrupt counter: %w", err)}
	}
	return n, nil
}

// SetCounter persists the actor's order-number counter.
func SetCounter(ctx context.Context, kv store.KV, actor model.Actor, n int64) error {
	b, _ := json.Marshal(n)
	if err := kv.Set(ctx, actor.SeqKey(), b); err != nil {
		return &model.PersistenceError{Op: "set", Key: actor.SeqKey(), Err: err}
	}
	return nil
}

// SaveOrders persists the whole order collection under the actor's scope key.
func SaveOrders(ctx context.Context, kv store.KV, actor model.Actor, orders []model.Order) error {
	return saveCollection(ctx, kv, actor.OrdersKey(), orders)
}

// LoadNotifications returns the actor's notification collection. Missing
// collections start empty; notifications are only ever produced by order
// transitions.
func LoadNotifications(ctx context.Context, kv store.KV, actor model.Actor) ([]model.Notification, error) {
	var ns []model.Notification
	if _, err := loadCollection(ctx, kv, actor.NotificationsKey(), &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// SaveNotifications persists the whole notification collection.
func SaveNotifications(ctx context.Context, kv store.KV, actor model.Actor, ns []model.Notification) error {
	return saveCollection(ctx, kv, actor.NotificationsKey(), ns)
}

func loadCollection(ctx context.Context, kv store.KV, key string, dst any) (bool, error) {
	b, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, &model.PersistenceError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, &model.PersistenceError{Op: "get", Key: key, Err: fmt.Errorf("corrupt collection: %w", err)}
	}
	return true, nil
}

func saveCollection(ctx context.Context, kv store.KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, b); err != nil {
		return &model.PersistenceError{Op: "set", Key: key, Err: err}
	}
	return nil
}
