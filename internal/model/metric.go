package model

// Metric is a derived value that may be unavailable when its inputs are missing.
// Callers render an unavailable metric as a placeholder plus Reason.
type Metric struct {
	Value     float64
	Available bool
	Reason    string
}

// Value wraps an available metric.
func Value(v float64) Metric {
	return Metric{Value: v, Available: true}
}

// Unavailable wraps a missing metric with a short human-readable reason.
func Unavailable(reason string) Metric {
	return Metric{Reason: reason}
}
