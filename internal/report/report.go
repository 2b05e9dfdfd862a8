// Package report aggregates ledger entries into per-shop revenue windows
// for the partner dashboard.
package report

import (
	"fmt"

	"printsync/internal/ledger"
	"printsync/internal/model"
)

// Totals is the aggregated revenue state for one shop/window key.
type Totals struct {
	SumAmount int64 `json:"sumAmount"`
	Orders    int64 `json:"orders"`
	Completed int64 `json:"completed"`
}

// Key returns the composite key shopEmail#windowStart.
func Key(shopEmail string, windowStart int64) string {
	return fmt.Sprintf("%s#%d", shopEmail, windowStart)
}

// WindowStart returns floor(ts / windowSizeSec) * windowSizeSec.
// Defaults to daily windows.
func WindowStart(ts int64, windowSizeSec int) int64 {
	if windowSizeSec <= 0 {
		windowSizeSec = 86400
	}
	w := int64(windowSizeSec)
	return (ts / w) * w
}

// Aggregate folds ledger entries into per-shop windows. Each order counts
// once, at its creation entry; completed transitions increment the
// completed counter of the window the order was created in.
func Aggregate(entries []ledger.Entry, windowSizeSec int) map[string]Totals {
	out := make(map[string]Totals)
	createdWindow := make(map[string]int64)
	for _, e := range entries {
		ws := WindowStart(e.TS.Unix(), windowSizeSec)
		if e.Seq == 1 {
			createdWindow[e.OrderID] = ws
			k := Key(e.Order.ShopEmail, ws)
			t := out[k]
			t.SumAmount += e.Order.TotalCost
			t.Orders++
			out[k] = t
			continue
		}
		if e.Status == model.StatusCompleted {
			cw, ok := createdWindow[e.OrderID]
			if !ok {
				cw = ws
			}
			k := Key(e.Order.ShopEmail, cw)
			t := out[k]
			t.Completed++
			out[k] = t
		}
	}
	return out
}
