package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PurgeMetrics records activity of the sold-item purge job.
type PurgeMetrics struct {
	duration     *prometheus.HistogramVec
	usersScanned *prometheus.CounterVec
	itemsRemoved *prometheus.CounterVec
	failures     *prometheus.CounterVec
}

// NewPurgeMetrics registers the purge metrics on the provided registerer.
func NewPurgeMetrics(reg prometheus.Registerer) *PurgeMetrics {
	if reg == nil {
		return &PurgeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "purge_duration_seconds",
		Help:    "Duration of sold-item purge runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	usersScanned := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purge_users_scanned",
		Help: "Users whose carts and wishlists were scanned during purge runs.",
	}, []string{"trigger"})
	itemsRemoved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purge_items_removed",
		Help: "Cart and wishlist rows removed during purge runs.",
	}, []string{"trigger", "collection"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purge_user_failures",
		Help: "Per-user purge transactions that failed and were skipped.",
	}, []string{"trigger"})
	reg.MustRegister(duration, usersScanned, itemsRemoved, failures)
	return &PurgeMetrics{
		duration:     duration,
		usersScanned: usersScanned,
		itemsRemoved: itemsRemoved,
		failures:     failures,
	}
}

// ObserveDuration records the wall time of one purge run.
func (p *PurgeMetrics) ObserveDuration(trigger string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// AddUsersScanned adds to the scanned-user counter for one run.
func (p *PurgeMetrics) AddUsersScanned(trigger string, count int) {
	if p == nil || p.usersScanned == nil {
		return
	}
	p.usersScanned.WithLabelValues(normalizeLabel(trigger)).Add(float64(count))
}

// AddItemsRemoved adds removed rows for the named collection, "carts" or "wishlists".
func (p *PurgeMetrics) AddItemsRemoved(trigger, collection string, count int) {
	if p == nil || p.itemsRemoved == nil {
		return
	}
	p.itemsRemoved.WithLabelValues(normalizeLabel(trigger), normalizeLabel(collection)).Add(float64(count))
}

// IncUserFailure increments the per-user failure counter.
func (p *PurgeMetrics) IncUserFailure(trigger string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeLabel(trigger)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
