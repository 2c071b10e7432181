package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns the journal's collectors on a private registry. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	actionsDispatched *prometheus.CounterVec
	snapshotSaves     *prometheus.CounterVec
	saveDuration      prometheus.Histogram
	unread            prometheus.Gauge
	entries           prometheus.Gauge
}

// New registers the collectors on a private registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		actionsDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportjournal_actions_dispatched_total",
				Help: "Total number of actions dispatched to the state container",
			},
			[]string{"kind"},
		),
		snapshotSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportjournal_snapshot_saves_total",
				Help: "Total number of snapshot saves by result",
			},
			[]string{"result"},
		),
		saveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sportjournal_snapshot_save_duration_seconds",
				Help:    "Duration of snapshot saves",
				Buckets: prometheus.DefBuckets,
			},
		),
		unread: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sportjournal_unread_notifications",
			Help: "Number of unread notifications",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sportjournal_journal_entries",
			Help: "Number of journal entries",
		}),
	}

	r.registry.MustRegister(r.actionsDispatched, r.snapshotSaves, r.saveDuration, r.unread, r.entries)
	return r
}

// ObserveDispatch counts one dispatched action of the given kind.
func (r *Recorder) ObserveDispatch(kind string) {
	if r == nil {
		return
	}
	r.actionsDispatched.WithLabelValues(kind).Inc()
}

// ObserveSave records one snapshot save that took d and ended with err.
func (r *Recorder) ObserveSave(d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.snapshotSaves.WithLabelValues(result).Inc()
	r.saveDuration.Observe(d.Seconds())
}

// ObserveState updates the gauges that mirror the current state.
func (r *Recorder) ObserveState(unread, entries int) {
	if r == nil {
		return
	}
	r.unread.Set(float64(unread))
	r.entries.Set(float64(entries))
}

// Gatherer exposes the private registry, an empty one for a nil Recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// WriteTextfile dumps every collector in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
