package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPurgeMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPurgeMetrics(reg)
	trigger := "order-completed"
	metrics.ObserveDuration(trigger, 120*time.Millisecond)
	metrics.AddUsersScanned(trigger, 3)
	metrics.AddItemsRemoved(trigger, "carts", 2)
	metrics.AddItemsRemoved(trigger, "wishlists", 1)
	metrics.IncUserFailure(trigger)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "purge_users_scanned", "trigger", trigger); err != nil {
		t.Fatalf("fetch users scanned: %v", err)
	} else if got != 3 {
		t.Fatalf("expected users scanned=3, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "purge_items_removed", "collection", "carts"); err != nil {
		t.Fatalf("fetch items removed: %v", err)
	} else if got != 2 {
		t.Fatalf("expected cart rows removed=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "purge_user_failures", "trigger", trigger); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "purge_duration_seconds", "trigger", trigger); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestOrderMetricsCountsCreationsAndTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)
	metrics.IncCreated("art")
	metrics.IncCreated("art")
	metrics.IncTransition("pending", "completed")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "orders_created", "order_type", "art"); err != nil {
		t.Fatalf("fetch created: %v", err)
	} else if got != 2 {
		t.Fatalf("expected created=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "order_status_transitions", "to", "completed"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected transitions=1, got %f", got)
	}
}

func TestNilRegistererProducesNoopMetrics(t *testing.T) {
	purge := NewPurgeMetrics(nil)
	purge.ObserveDuration("x", time.Second)
	purge.AddUsersScanned("x", 1)
	purge.IncUserFailure("x")

	orders := NewOrderMetrics(nil)
	orders.IncCreated("menu")
	orders.IncTransition("pending", "cancelled")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
