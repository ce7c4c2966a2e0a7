package terrain

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics are always live; they are only exported when a registerer is given.
type metrics struct {
	resident  prometheus.Gauge
	pending   prometheus.Gauge
	generated prometheus.Counter
	evicted   prometheus.Counter
	discarded prometheus.Counter
	uploadErr prometheus.Counter
	drain     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "resident_sectors",
			Help:      "Sectors currently held in the terrain map.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "pending_sectors",
			Help:      "Sectors requested but not yet consumed.",
		}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "generated_sectors_total",
			Help:      "Sectors generated and meshed by workers.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "evicted_sectors_total",
			Help:      "Sectors dropped for leaving the retention radius.",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "discarded_results_total",
			Help:      "Worker results dropped because the camera moved away.",
		}),
		uploadErr: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "mesh_upload_errors_total",
			Help:      "Mesh uploads rejected by the device.",
		}),
		drain: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxview",
			Subsystem: "terrain",
			Name:      "drain_duration_seconds",
			Help:      "Time spent draining worker results per frame.",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.025},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.resident, m.pending, m.generated, m.evicted, m.discarded, m.uploadErr, m.drain)
	}
	return m
}
