package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onepager_renders_total",
			Help: "Total number of one-pager renders by kind and template",
		},
		[]string{"kind", "template"},
	)

	RenderWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onepager_render_warnings_total",
			Help: "Normalization and schema warnings raised while rendering",
		},
		[]string{"kind"},
	)

	ExportsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onepager_exports_failed_total",
			Help: "Total number of failed PDF exports",
		},
		[]string{"template", "stage"},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onepager_export_duration_seconds",
			Help:    "Duration of PDF exports in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"template"},
	)

	PDFCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onepager_pdf_cache_lookups_total",
			Help: "PDF cache lookups by result",
		},
		[]string{"result"},
	)

	ExportPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "onepager_export_pages",
			Help:    "Page count of exported PDFs",
			Buckets: []float64{1, 2, 3, 4},
		},
	)

	Suggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onepager_suggestions_total",
			Help: "AI field suggestion requests by field kind and result",
		},
		[]string{"field", "result"},
	)
)
