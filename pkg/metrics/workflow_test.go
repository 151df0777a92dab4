package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWorkflowMetricsRecordsSubmissions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	m.SessionStarted()
	m.SessionClosed(OutcomeCommitted)
	m.SessionClosed(OutcomeReaped)
	m.OrderSubmitted(2, 800)
	m.OrderIDCollision()
	m.SetWorkspaces(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "bcf_config_sessions_closed_total", "outcome", OutcomeReaped); err != nil || got != 1 {
		t.Fatalf("expected reaped=1, got %f err=%v", got, err)
	}

	value := findMetricFamily(mfs, "bcf_order_value_total")
	if value == nil || value.GetMetric()[0].GetCounter().GetValue() != 800 {
		t.Fatalf("expected order value 800")
	}
	collisions := findMetricFamily(mfs, "bcf_order_id_collisions_total")
	if collisions == nil || collisions.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one collision")
	}
	items := findMetricFamily(mfs, "bcf_order_items")
	if items == nil || items.GetMetric()[0].GetHistogram().GetSampleSum() != 2 {
		t.Fatalf("expected item histogram sum 2")
	}
	gauge := findMetricFamily(mfs, "bcf_workspaces")
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 3 {
		t.Fatalf("expected workspaces gauge 3")
	}
}

func TestWorkflowMetricsNilSafe(t *testing.T) {
	var m *WorkflowMetrics
	m.SessionStarted()
	m.OrderSubmitted(1, 1)

	unregistered := NewWorkflowMetrics(nil)
	unregistered.SessionClosed(OutcomeAbandoned)
	unregistered.OrderIDCollision()
}
