// Package identity supplies the current actor for a session. It is a local
// stand-in for a real auth backend: the session lives in the record store
// under the "user" and "accessToken" keys, the way the future API client
// would keep a token cache.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"printsync/internal/model"
	"printsync/internal/store"
)

const (
	userKey  = "user"
	tokenKey = "accessToken"
)

// Provider exposes the current actor identity. Current returns
// model.ErrAuthRequired when there is no session.
type Provider interface {
	Current(ctx context.Context) (model.Actor, error)
}

// Static is a fixed-actor provider for tests and the simulator.
type Static struct {
	Actor model.Actor
	None  bool
}

func (s Static) Current(context.Context) (model.Actor, error) {
	if s.None {
		return model.Actor{}, model.ErrAuthRequired
	}
	return s.Actor, nil
}

// StoreProvider persists the session in the record store.
type StoreProvider struct {
	kv store.KV
}

func NewStoreProvider(kv store.KV) *StoreProvider {
	return &StoreProvider{kv: kv}
}

// Login installs actor as the current session and issues a token.
func (p *StoreProvider) Login(ctx context.Context, actor model.Actor) error {
	b, err := json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("marshal actor: %w", err)
	}
	if err := p.kv.Set(ctx, userKey, b); err != nil {
		return &model.PersistenceError{Op: "set", Key: userKey, Err: err}
	}
	tok := fmt.Sprintf("token_%d", time.Now().UnixNano())
	if err := p.kv.Set(ctx, tokenKey, []byte(tok)); err != nil {
		return &model.PersistenceError{Op: "set", Key: tokenKey, Err: err}
	}
	return nil
}

// Logout clears the session.
func (p *StoreProvider) Logout(ctx context.Context) error {
	if err := p.kv.Delete(ctx, userKey); err != nil {
		return &model.PersistenceError{Op: "delete", Key: userKey, Err: err}
	}
	if err := p.kv.Delete(ctx, tokenKey); err != nil {
		return &model.PersistenceError{Op: "delete", Key: tokenKey, Err: err}
	}
	return nil
}

// Current returns the session actor, or model.ErrAuthRequired when either
// the actor record or the token is missing.
func (p *StoreProvider) Current(ctx context.Context) (model.Actor, error) {
	b, ok, err := p.kv.Get(ctx, userKey)
	if err != nil {
		return model.Actor{}, &model.PersistenceError{Op: "get", Key: userKey, Err: err}
	}
	if !ok {
		return model.Actor{}, model.ErrAuthRequired
	}
	if _, ok, err = p.kv.Get(ctx, tokenKey); err != nil {
		return model.Actor{}, &model.PersistenceError{Op: "get", Key: tokenKey, Err: err}
	}
	if !ok {
		return model.Actor{}, model.ErrAuthRequired
	}
	var a model.Actor
	if err := json.Unmarshal(b, &a); err != nil {
		return model.Actor{}, &model.PersistenceError{Op: "get", Key: userKey, Err: fmt.Errorf("corrupt session: %w", err)}
	}
	return a, nil
}
