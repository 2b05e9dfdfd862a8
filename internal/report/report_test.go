package report

import (
	"testing"
	"time"

	"printsync/internal/ledger"
	"printsync/internal/model"
)

func TestWindowStart(t *testing.T) {
	if ws := WindowStart(86400+3600, 86400); ws != 86400 {
		t.Fatalf("window start: %d", ws)
	}
	// Non-positive size falls back to daily.
	if ws := WindowStart(200000, 0); ws != 172800 {
		t.Fatalf("default window start: %d", ws)
	}
}

func TestAggregate_CountsOrdersOnceAndCompletions(t *testing.T) {
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	o1 := model.Order{ID: "o1", ShopEmail: "x@y.com", TotalCost: 45}
	o2 := model.Order{ID: "o2", ShopEmail: "x@y.com", TotalCost: 120}

	entries := []ledger.Entry{
		{OrderID: "o1", Seq: 1, Status: model.StatusPending, TS: day, Order: o1},
		{OrderID: "o2", Seq: 1, Status: model.StatusPending, TS: day.Add(time.Hour), Order: o2},
		{OrderID: "o1", Seq: 2, Status: model.StatusAccepted, TS: day.Add(2 * time.Hour), Order: o1},
		{OrderID: "o1", Seq: 3, Status: model.StatusPrinting, TS: day.Add(3 * time.Hour), Order: o1},
		{OrderID: "o1", Seq: 4, Status: model.StatusCompleted, TS: day.Add(4 * time.Hour), Order: o1},
	}

	got := Aggregate(entries, 86400)
	k := Key("x@y.com", WindowStart(day.Unix(), 86400))
	t1, ok := got[k]
	if !ok {
		t.Fatalf("missing window %s: %+v", k, got)
	}
	if t1.Orders != 2 || t1.SumAmount != 165 || t1.Completed != 1 {
		t.Fatalf("unexpected totals: %+v", t1)
	}
}
