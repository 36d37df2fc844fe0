// Package metrics holds the Prometheus collectors of the cart and checkout flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// CheckoutMetrics records checkout outcomes and cart session counts.
type CheckoutMetrics struct {
	attempts   *prometheus.CounterVec
	successes  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	orderValue *prometheus.HistogramVec
	sessions   prometheus.Gauge
}

// NewCheckoutMetrics registers the collectors on reg. A nil registerer
// yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	m := &CheckoutMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Checkout submissions attempted.",
		}, []string{"strategy"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Checkout submissions that produced an order.",
		}, []string{"strategy"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Checkout submissions that failed.",
		}, []string{"strategy", "reason"}),
		orderValue: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkout_order_grand_total_rupees",
			Help:    "Grand total of submitted orders in rupees.",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		}, []string{"strategy"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_sessions_active",
			Help: "Live cart sessions held in memory.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.orderValue, m.sessions)
	return m
}

func (m *CheckoutMetrics) IncAttempt(strategy string) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(strategy).Inc()
}

// ObserveSuccess counts the order and records its grand total.
func (m *CheckoutMetrics) ObserveSuccess(strategy string, grandTotal decimal.Decimal) {
	if m == nil || m.successes == nil {
		return
	}
	m.successes.WithLabelValues(strategy).Inc()
	m.orderValue.WithLabelValues(strategy).Observe(grandTotal.InexactFloat64())
}

func (m *CheckoutMetrics) IncFailure(strategy, reason string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(strategy, reason).Inc()
}

func (m *CheckoutMetrics) SetActiveSessions(n int) {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Set(float64(n))
}
