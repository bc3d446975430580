package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "signal_analyzer"

// Recorder records analyzer metrics using Prometheus.
type Recorder struct {
	analyses          *prometheus.CounterVec
	inferenceRequests *prometheus.CounterVec
	inferenceLatency  prometheus.Histogram
	historySize       prometheus.Gauge
}

// New registers the analyzer collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Completed signal analyses by verdict source and recommendation",
			},
			[]string{"source", "recommendation"},
		),
		inferenceRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inference_requests_total",
				Help:      "Calls to the inference endpoint by outcome",
			},
			[]string{"outcome"},
		),
		inferenceLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "inference_duration_seconds",
				Help:      "Duration of inference calls in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			},
		),
		historySize: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "history_size",
				Help:      "Number of analyses currently retained in memory",
			},
		),
	}
}

// RecordAnalysis counts a finished analysis. A nil recorder is a no-op.
func (r *Recorder) RecordAnalysis(source, recommendation string) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(source, recommendation).Inc()
}

// RecordInference counts an inference call and observes its latency.
func (r *Recorder) RecordInference(outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.inferenceRequests.WithLabelValues(outcome).Inc()
	r.inferenceLatency.Observe(took.Seconds())
}

func (r *Recorder) SetHistorySize(n int) {
	if r == nil {
		return
	}
	r.historySize.Set(float64(n))
}
