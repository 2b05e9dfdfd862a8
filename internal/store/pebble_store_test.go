package store

import (
	"context"
	"testing"
)

func TestPebble_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewPebble(dir)
	if err != nil {
		t.Fatalf("pebble open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if _, ok, err := s.Get(ctx, "orders_u1"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "orders_u1", []byte(`[{"id":"o1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "orders_u1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":"o1"}]` {
		t.Fatalf("get value: %s", v)
	}
	if err := s.Delete(ctx, "orders_u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "orders_u1"); ok {
		t.Fatalf("key should be gone after delete")
	}
}

func TestPebble_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewPebble(dir)
	if err != nil {
		t.Fatalf("pebble open: %v", err)
	}
	if err := s.Set(ctx, "notifications_u1", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := NewPebble(dir)
	if err != nil {
		t.Fatalf("pebble reopen: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close() })
	v, ok, err := s2.Get(ctx, "notifications_u1")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(v) != `[]` {
		t.Fatalf("value after reopen: %s", v)
	}
}
