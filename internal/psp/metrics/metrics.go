package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync run outcomes used as the "outcome" label.
const (
	OutcomeDone    = "done"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Metrics holds the catalog's Prometheus collectors.
type Metrics struct {
	DispatchTotal       *prometheus.CounterVec
	DispatchErrors      *prometheus.CounterVec
	SyncRunsTotal       *prometheus.CounterVec
	SyncPagesFetched    prometheus.Counter
	SyncRecordsMerged   prometheus.Counter
	SyncRecordsSkipped  prometheus.Counter
	SyncRunDuration     prometheus.Histogram
	SyncLastSuccessUnix prometheus.Gauge
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DispatchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "psp_dispatch_total",
			Help: "Catalog lookups by selected access path",
		}, []string{"path"}),
		DispatchErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "psp_dispatch_errors_total",
			Help: "Catalog lookups that failed, by access path",
		}, []string{"path"}),
		SyncRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "psp_sync_runs_total",
			Help: "Catalog sync runs by outcome",
		}, []string{"outcome"}),
		SyncPagesFetched: f.NewCounter(prometheus.CounterOpts{
			Name: "psp_sync_pages_fetched_total",
			Help: "Upstream feed pages fetched by sync runs",
		}),
		SyncRecordsMerged: f.NewCounter(prometheus.CounterOpts{
			Name: "psp_sync_records_merged_total",
			Help: "PSP records upserted by sync runs",
		}),
		SyncRecordsSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "psp_sync_records_skipped_total",
			Help: "Upstream rows rejected during conversion",
		}),
		SyncRunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "psp_sync_run_duration_seconds",
			Help:    "Wall-clock duration of catalog sync runs",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		SyncLastSuccessUnix: f.NewGauge(prometheus.GaugeOpts{
			Name: "psp_sync_last_success_timestamp_seconds",
			Help: "Unix time of the last sync run that reached the last page",
		}),
	}
}

func (m *Metrics) ObserveDispatch(path string) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(path).Inc()
}

func (m *Metrics) ObserveDispatchError(path string) {
	if m == nil {
		return
	}
	m.DispatchErrors.WithLabelValues(path).Inc()
}

func (m *Metrics) ObservePage(merged, skipped int) {
	if m == nil {
		return
	}
	m.SyncPagesFetched.Inc()
	m.SyncRecordsMerged.Add(float64(merged))
	m.SyncRecordsSkipped.Add(float64(skipped))
}

func (m *Metrics) ObserveRun(outcome string, seconds float64, finishedUnix float64) {
	if m == nil {
		return
	}
	m.SyncRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSkipped {
		return
	}
	m.SyncRunDuration.Observe(seconds)
	if outcome == OutcomeDone {
		m.SyncLastSuccessUnix.Set(finishedUnix)
	}
}
