// Package metrics exposes fee engine counters to Prometheus.
package metrics

import (
	"tutorly/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements pricing.MetricsCollector on top of Prometheus.
type Collector struct {
	resolutions *prometheus.CounterVec
	splits      prometheus.Counter
	grossTotal  prometheus.Counter
	feeTotal    prometheus.Counter
	ruleChanges *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

// NewCollector registers the fee engine metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorly",
			Subsystem: "fees",
			Name:      "resolutions_total",
			Help:      "Fee resolutions by the tier that matched.",
		}, []string{"scope"}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tutorly",
			Subsystem: "fees",
			Name:      "splits_total",
			Help:      "Amounts split between platform and teacher.",
		}),
		grossTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tutorly",
			Subsystem: "fees",
			Name:      "gross_amount_total",
			Help:      "Sum of gross amounts split.",
		}),
		feeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tutorly",
			Subsystem: "fees",
			Name:      "platform_fee_total",
			Help:      "Sum of platform fees computed.",
		}),
		ruleChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorly",
			Subsystem: "fees",
			Name:      "rule_changes_total",
			Help:      "Administrative fee rule changes by audit action.",
		}, []string{"action"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorly",
			Subsystem: "fees",
			Name:      "errors_total",
			Help:      "Fee engine errors by operation and type.",
		}, []string{"operation", "type"}),
	}

	reg.MustRegister(c.resolutions, c.splits, c.grossTotal, c.feeTotal, c.ruleChanges, c.errors)
	return c
}

func (c *Collector) RecordResolution(scope models.FeeScope) {
	c.resolutions.WithLabelValues(string(scope)).Inc()
}

func (c *Collector) RecordSplit(grossAmount, platformFee float64) {
	c.splits.Inc()
	if grossAmount > 0 {
		c.grossTotal.Add(grossAmount)
	}
	if platformFee > 0 {
		c.feeTotal.Add(platformFee)
	}
}

func (c *Collector) RecordRuleChange(action string) {
	c.ruleChanges.WithLabelValues(action).Inc()
}

func (c *Collector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}
