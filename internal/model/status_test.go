package model

import (
	"testing"
	"time"
)

func TestStatus_Labels(t *testing.T) {
	cases := map[Status]string{
		StatusPending:   "Pending",
		StatusAccepted:  "Accepted",
		StatusPrinting:  "Printing",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
	}
	for s, want := range cases {
		if got := s.Label(); got != want {
			t.Fatalf("label for %s: got %q want %q", s, got, want)
		}
	}
	// Unknown statuses fall back to their raw value.
	if got := Status("archived").Label(); got != "archived" {
		t.Fatalf("fallback label: %q", got)
	}
}

func TestStatus_Transitions(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusCancelled},
		{StatusAccepted, StatusPrinting},
		{StatusAccepted, StatusCancelled},
		{StatusPrinting, StatusCompleted},
	}
	for _, c := range legal {
		if !c.from.CanTransition(c.to) {
			t.Fatalf("%s -> %s should be legal", c.from, c.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusPrinting},
		{StatusPending, StatusCompleted},
		{StatusAccepted, StatusCompleted},
		{StatusPrinting, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusCompleted},
		{StatusCancelled, StatusAccepted},
	}
	for _, c := range illegal {
		if c.from.CanTransition(c.to) {
			t.Fatalf("%s -> %s should be illegal", c.from, c.to)
		}
	}

	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Fatalf("completed and cancelled must be terminal")
	}
	if StatusPending.Terminal() {
		t.Fatalf("pending is not terminal")
	}
}

func TestOrder_WithStatusIsCopyOnWrite(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	o := Order{ID: "o1", Status: StatusPending, StatusText: "Pending", Rev: 1}

	got := o.WithStatus(StatusAccepted, at)
	if got.Status != StatusAccepted || got.StatusText != "Accepted" || got.Rev != 2 || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected copy: %+v", got)
	}
	if o.Status != StatusPending || o.Rev != 1 {
		t.Fatalf("receiver mutated: %+v", o)
	}
}

func TestActor_ScopeKeys(t *testing.T) {
	c := Actor{ID: "u1", Role: RoleCustomer}
	if c.OrdersKey() != "orders_u1" || c.NotificationsKey() != "notifications_u1" || c.SeqKey() != "order_seq_u1" {
		t.Fatalf("customer keys: %s %s %s", c.OrdersKey(), c.NotificationsKey(), c.SeqKey())
	}
	p := Actor{ID: "s1", Role: RolePartner, Email: "x@y.com"}
	if p.OrdersKey() != "partner_orders_x@y.com" || p.NotificationsKey() != "partner_notifications_x@y.com" {
		t.Fatalf("partner keys: %s %s", p.OrdersKey(), p.NotificationsKey())
	}
	if p.ScopeID() != "x@y.com" {
		t.Fatalf("partner scope: %s", p.ScopeID())
	}
}
