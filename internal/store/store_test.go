package store

import (
	"context"
	"testing"
)

func TestInMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[1,2]` {
		t.Fatalf("get value: %s", v)
	}

	// Returned slice must be a copy; mutating it must not affect the store.
	v[0] = 'X'
	v2, _, _ := s.Get(ctx, "k")
	if string(v2) != `[1,2]` {
		t.Fatalf("store mutated through returned slice: %s", v2)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("key should be gone after delete")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("etcd", ""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
