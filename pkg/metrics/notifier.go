package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// NotifierMetrics records outcomes of outbound integration notifications.
type NotifierMetrics struct {
	delivered *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewNotifierMetrics registers the notifier metrics on the provided registerer.
func NewNotifierMetrics(reg prometheus.Registerer) *NotifierMetrics {
	if reg == nil {
		return &NotifierMetrics{}
	}
	delivered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "integration_notifications_delivered_total",
		Help: "Integration notifications acknowledged with a 2xx response.",
	}, []string{"target", "action"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "integration_notifications_failed_total",
		Help: "Integration notifications dropped after a network error or non-2xx response.",
	}, []string{"target", "action"})
	reg.MustRegister(delivered, failed)
	return &NotifierMetrics{
		delivered: delivered,
		failed:    failed,
	}
}

// IncDelivered increments the delivered counter for the target/action pair.
func (n *NotifierMetrics) IncDelivered(target, action string) {
	if n == nil || n.delivered == nil {
		return
	}
	n.delivered.WithLabelValues(normalizeLabel(target), normalizeLabel(action)).Inc()
}

// IncFailed increments the failed counter for the target/action pair.
func (n *NotifierMetrics) IncFailed(target, action string) {
	if n == nil || n.failed == nil {
		return
	}
	n.failed.WithLabelValues(normalizeLabel(target), normalizeLabel(action)).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
