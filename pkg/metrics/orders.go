package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order lifecycle activity.
type OrderMetrics struct {
	created     *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created",
		Help: "Orders created through checkout.",
	}, []string{"order_type"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions",
		Help: "Order status transitions applied.",
	}, []string{"from", "to"})
	reg.MustRegister(created, transitions)
	return &OrderMetrics{
		created:     created,
		transitions: transitions,
	}
}

// IncCreated increments the created counter for the given order type.
func (o *OrderMetrics) IncCreated(orderType string) {
	if o == nil || o.created == nil {
		return
	}
	o.created.WithLabelValues(normalizeLabel(orderType)).Inc()
}

// IncTransition increments the transition counter for a status change.
func (o *OrderMetrics) IncTransition(from, to string) {
	if o == nil || o.transitions == nil {
		return
	}
	o.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}
