package pricing

import "tutorly/internal/models"

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordResolution(models.FeeScope) {}
func (n *NoopMetricsCollector) RecordSplit(float64, float64)     {}
func (n *NoopMetricsCollector) RecordRuleChange(string)          {}
func (n *NoopMetricsCollector) RecordError(string, string)       {}
