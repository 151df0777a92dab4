package metrics

import "github.com/prometheus/client_golang/prometheus"

// Session outcomes used as the "outcome" label.
const (
	OutcomeCommitted = "committed"
	OutcomeAbandoned = "abandoned"
	OutcomeReaped    = "reaped"
)

// WorkflowMetrics tracks the configure, batch and submit flow.
type WorkflowMetrics struct {
	sessionsStarted prometheus.Counter
	sessionsClosed  *prometheus.CounterVec
	ordersSubmitted prometheus.Counter
	orderItems      prometheus.Histogram
	orderValue      prometheus.Counter
	idCollisions    prometheus.Counter
	workspaces      prometheus.Gauge
}

// NewWorkflowMetrics registers the workflow metrics. A nil registerer yields a no-op recorder.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	m := &WorkflowMetrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcf_config_sessions_started_total",
			Help: "Configuration sessions opened.",
		}),
		sessionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bcf_config_sessions_closed_total",
			Help: "Configuration sessions closed, by outcome.",
		}, []string{"outcome"}),
		ordersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcf_orders_submitted_total",
			Help: "Orders appended to history.",
		}),
		orderItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bcf_order_items",
			Help:    "Items per submitted order.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		orderValue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcf_order_value_total",
			Help: "Sum of submitted order totals in whole currency units.",
		}),
		idCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bcf_order_id_collisions_total",
			Help: "Generated order ids rejected because they were taken.",
		}),
		workspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bcf_workspaces",
			Help: "Buyer workspaces held in memory.",
		}),
	}
	reg.MustRegister(m.sessionsStarted, m.sessionsClosed, m.ordersSubmitted, m.orderItems, m.orderValue, m.idCollisions, m.workspaces)
	return m
}

func (m *WorkflowMetrics) SessionStarted() {
	if m == nil || m.sessionsStarted == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *WorkflowMetrics) SessionClosed(outcome string) {
	if m == nil || m.sessionsClosed == nil {
		return
	}
	m.sessionsClosed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *WorkflowMetrics) OrderSubmitted(items int, total int64) {
	if m == nil || m.ordersSubmitted == nil {
		return
	}
	m.ordersSubmitted.Inc()
	m.orderItems.Observe(float64(items))
	m.orderValue.Add(float64(total))
}

func (m *WorkflowMetrics) OrderIDCollision() {
	if m == nil || m.idCollisions == nil {
		return
	}
	m.idCollisions.Inc()
}

func (m *WorkflowMetrics) SetWorkspaces(n int) {
	if m == nil || m.workspaces == nil {
		return
	}
	m.workspaces.Set(float64(n))
}
