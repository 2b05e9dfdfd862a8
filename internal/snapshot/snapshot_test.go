package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"printsync/internal/model"
	"printsync/internal/store"
)

func TestWriteSnapshotAndRead(t *testing.T) {
	ctx := context.Background()
	kv := store.NewInMemory()
	dir := t.TempDir()
	actor := model.Actor{ID: "u1", Role: model.RoleCustomer}

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []model.Order{{
		ID: "o1", OrderNumber: "QP-2024-001", FileName: "a.pdf",
		Status: model.StatusPending, StatusText: "Pending", Rev: 1,
		CreatedAt: created, UpdatedAt: created, CustomerID: "u1",
	}}
	ns := []model.Notification{{
		ID: "notif_1", Type: model.NotifyOrderCreated, Timestamp: created, OrderID: "o1",
	}}
	ob, _ := json.Marshal(orders)
	nb, _ := json.Marshal(ns)
	if err := kv.Set(ctx, actor.OrdersKey(), ob); err != nil {
		t.Fatalf("set orders: %v", err)
	}
	if err := kv.Set(ctx, actor.NotificationsKey(), nb); err != nil {
		t.Fatalf("set notifications: %v", err)
	}

	s := NewFilesystemSnapshotter(dir)
	if err := s.WriteSnapshot(ctx, "snap-1", actor, kv); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	d, err := Read(dir, "snap-1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if d.Scope != "u1" || d.Role != model.RoleCustomer {
		t.Fatalf("dump header: %+v", d)
	}
	if len(d.Orders) != 1 || d.Orders[0] != orders[0] {
		t.Fatalf("orders mismatch: %+v", d.Orders)
	}
	if len(d.Notifications) != 1 || d.Notifications[0] != ns[0] {
		t.Fatalf("notifications mismatch: %+v", d.Notifications)
	}
}

func TestWriteSnapshot_EmptyScope(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	actor := model.Actor{ID: "s1", Role: model.RolePartner, Email: "x@y.com"}

	s := NewFilesystemSnapshotter(dir)
	if err := s.WriteSnapshot(ctx, "snap-1", actor, store.NewInMemory()); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	d, err := Read(dir, "snap-1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if d.Scope != "x@y.com" || len(d.Orders) != 0 || len(d.Notifications) != 0 {
		t.Fatalf("empty dump: %+v", d)
	}
}

func TestRead_Missing(t *testing.T) {
	if _, err := Read(t.TempDir(), "nope"); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
}
