// Package metrics defines the prometheus collectors exported by the
// relay: counts of transfers and anchors emitted per chain, counts of
// submission failures, and confirmation-subtask latency. A registerer
// is threaded through the constructor rather than using the global
// default registry, so multiple relay instances in one process don't
// collide.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles the relay's prometheus metrics.
type Collector struct {
	TransfersEmitted    *prometheus.CounterVec
	AnchorsEmitted      *prometheus.CounterVec
	SubmissionFailures  *prometheus.CounterVec
	ConfirmationLatency *prometheus.HistogramVec
}

// New registers and returns the relay's metrics against registerer.
func New(registerer prometheus.Registerer) *Collector {
	c := &Collector{
		TransfersEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "transfers_emitted_total",
			Help:      "Number of confirmed Transfer records emitted, by source network.",
		}, []string{"network"}),
		AnchorsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "anchors_emitted_total",
			Help:      "Number of confirmed Anchor records emitted, by source network.",
		}, []string{"network"}),
		SubmissionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "submission_failures_total",
			Help:      "Number of failed contract-call submissions, by network and kind.",
		}, []string{"network", "kind"}),
		ConfirmationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "relay",
			Name:      "confirmation_latency_seconds",
			Help:      "Time spent waiting for confirmation depth to be reached.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"network"}),
	}
	registerer.MustRegister(c.TransfersEmitted, c.AnchorsEmitted, c.SubmissionFailures, c.ConfirmationLatency)
	return c
}
