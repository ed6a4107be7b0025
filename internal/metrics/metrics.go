package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Skip reasons used as the "reason" label of RowsSkipped.
const (
	ReasonShortRow   = "short_row"
	ReasonParse      = "parse"
	ReasonNonFinite  = "non_finite"
	ReasonMalformed  = "malformed_csv"
	SourceLabelLocal = "local"
	SourceLabelPG    = "postgres"
)

type Metrics struct {
	RecordsLoaded *prometheus.CounterVec
	RowsSkipped   *prometheus.CounterVec
	LoadSeconds   *prometheus.HistogramVec
	RenderSeconds prometheus.Histogram
	CellsOccupied prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RecordsLoaded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geosketch_records_loaded_total",
			Help: "Total number of coordinate records loaded from a data source.",
		}, []string{"source"}),
		RowsSkipped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geosketch_rows_skipped_total",
			Help: "Total number of input rows skipped because they could not be parsed.",
		}, []string{"reason"}),
		LoadSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geosketch_load_duration_seconds",
			Help:    "Duration of loading coordinates from a data source.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		RenderSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geosketch_render_duration_seconds",
			Help:    "Duration of rasterizing coordinates onto the grid.",
			Buckets: prometheus.DefBuckets,
		}),
		CellsOccupied: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "geosketch_grid_cells_occupied",
			Help: "Number of grid cells marked by the last render.",
		}),
	}
}
