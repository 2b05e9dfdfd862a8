package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg                     *prometheus.Registry
	OrdersCreated           prometheus.Counter
	StatusUpdates           prometheus.Counter
	StatusRejected          prometheus.Counter
	NotificationsEmitted    prometheus.Counter
	NotificationsSuppressed prometheus.Counter
	LedgerAppended          prometheus.Counter
	Unread                  prometheus.Gauge

	// Hydration / recovery metrics
	ReplayApplied prometheus.Counter
	ReplaySkipped prometheus.Counter
	HydrateSec    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_orders_created_total"})
	updates := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_status_updates_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_status_rejected_total"})
	emitted := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_notifications_emitted_total"})
	suppressed := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_notifications_suppressed_total"})
	appended := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_ledger_appended_total"})
	unread := prometheus.NewGauge(prometheus.GaugeOpts{Name: "printsync_notifications_unread"})

	applied := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_replay_applied_total"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "printsync_replay_skipped_total"})
	hydrate := prometheus.NewGauge(prometheus.GaugeOpts{Name: "printsync_hydrate_seconds"})

	r.MustRegister(created, updates, rejected, emitted, suppressed, appended, unread, applied, skipped, hydrate)
	return &Registry{
		reg:                     r,
		OrdersCreated:           created,
		StatusUpdates:           updates,
		StatusRejected:          rejected,
		NotificationsEmitted:    emitted,
		NotificationsSuppressed: suppressed,
		LedgerAppended:          appended,
		Unread:                  unread,
		ReplayApplied:           applied,
		ReplaySkipped:           skipped,
		HydrateSec:              hydrate,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
