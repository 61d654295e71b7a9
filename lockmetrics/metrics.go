//go:build !solution

package lockmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Rogov-KS/rwlock/rwlock"
)

// Metrics exports rwlock events to prometheus. It implements rwlock.Observer.
type Metrics struct {
	Acquisitions    *prometheus.CounterVec
	Releases        *prometheus.CounterVec
	WaitSeconds     *prometheus.HistogramVec
	Cancellations   *prometheus.CounterVec
	Timeouts        *prometheus.CounterVec
	IllegalReleases *prometheus.CounterVec
	QueuedWriters   prometheus.Gauge
}

var _ rwlock.Observer = (*Metrics)(nil)

// New registers the metrics of the lock called name in reg.
func New(reg prometheus.Registerer, name string) *Metrics {
	labels := prometheus.Labels{"lock": name}
	f := promauto.With(reg)
	return &Metrics{
		Acquisitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "rwlock_acquisitions_total",
				Help:        "Number of granted lock holds, reentrant ones included",
				ConstLabels: labels,
			},
			[]string{"mode"}, // read/write
		),
		Releases: f.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "rwlock_releases_total",
				Help:        "Number of released lock holds",
				ConstLabels: labels,
			},
			[]string{"mode"},
		),
		WaitSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "rwlock_wait_seconds",
				Help:        "Time spent waiting for a lock hold",
				ConstLabels: labels,
				Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"mode"},
		),
		Cancellations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "rwlock_cancellations_total",
				Help:        "Number of acquisitions aborted by context cancellation",
				ConstLabels: labels,
			},
			[]string{"mode"},
		),
		Timeouts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "rwlock_timeouts_total",
				Help:        "Number of timed acquisitions that expired",
				ConstLabels: labels,
			},
			[]string{"mode"},
		),
		IllegalReleases: f.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "rwlock_illegal_releases_total",
				Help:        "Number of releases of a role the caller did not hold",
				ConstLabels: labels,
			},
			[]string{"mode"},
		),
		QueuedWriters: f.NewGauge(
			prometheus.GaugeOpts{
				Name:        "rwlock_writer_queue_length",
				Help:        "Number of writers waiting for ownership",
				ConstLabels: labels,
			},
		),
	}
}

func (m *Metrics) Acquired(mode rwlock.Mode, waited time.Duration) {
	m.Acquisitions.WithLabelValues(mode.String()).Inc()
	m.WaitSeconds.WithLabelValues(mode.String()).Observe(waited.Seconds())
}

func (m *Metrics) Released(mode rwlock.Mode) {
	m.Releases.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) Canceled(mode rwlock.Mode) {
	m.Cancellations.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) TimedOut(mode rwlock.Mode) {
	m.Timeouts.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) IllegalRelease(mode rwlock.Mode) {
	m.IllegalReleases.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) QueueLength(n int) {
	m.QueuedWriters.Set(float64(n))
}
