package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NameplateMetrics records counters for the record lifecycle plus upload
// and print batch instrumentation.
type NameplateMetrics struct {
	created       *prometheus.CounterVec
	verified      prometheus.Counter
	printedRows   prometheus.Counter
	printDuration prometheus.Histogram
	uploadBytes   prometheus.Histogram
	uploadFailure prometheus.Counter
}

// NewNameplateMetrics registers the lifecycle metrics on the provided registerer.
func NewNameplateMetrics(reg prometheus.Registerer) *NameplateMetrics {
	if reg == nil {
		return &NameplateMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nameplates_created_total",
		Help: "Nameplate records submitted for verification.",
	}, []string{"rmo"})
	verified := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nameplates_verified_total",
		Help: "Nameplate records moved to the verified state.",
	})
	printedRows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nameplates_printed_rows_total",
		Help: "Rows written by print batches.",
	})
	printDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nameplates_print_duration_seconds",
		Help:    "Duration of print batch transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	uploadBytes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nameplates_upload_bytes",
		Help:    "Size of uploaded nameplate images in bytes.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})
	uploadFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nameplates_upload_failures_total",
		Help: "Uploads rejected or failed at the object store.",
	})
	reg.MustRegister(created, verified, printedRows, printDuration, uploadBytes, uploadFailure)
	return &NameplateMetrics{
		created:       created,
		verified:      verified,
		printedRows:   printedRows,
		printDuration: printDuration,
		uploadBytes:   uploadBytes,
		uploadFailure: uploadFailure,
	}
}

// IncCreated increments the submission counter for the given regional office.
func (m *NameplateMetrics) IncCreated(rmo string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(rmo)).Inc()
}

// IncVerified increments the verification counter.
func (m *NameplateMetrics) IncVerified() {
	if m == nil || m.verified == nil {
		return
	}
	m.verified.Inc()
}

// ObservePrint records one print batch with its row count and duration.
func (m *NameplateMetrics) ObservePrint(rows int, duration time.Duration) {
	if m == nil || m.printedRows == nil {
		return
	}
	m.printedRows.Add(float64(rows))
	m.printDuration.Observe(duration.Seconds())
}

// ObserveUpload records the size of a stored image.
func (m *NameplateMetrics) ObserveUpload(sizeBytes int64) {
	if m == nil || m.uploadBytes == nil {
		return
	}
	m.uploadBytes.Observe(float64(sizeBytes))
}

// IncUploadFailure increments the failed upload counter.
func (m *NameplateMetrics) IncUploadFailure() {
	if m == nil || m.uploadFailure == nil {
		return
	}
	m.uploadFailure.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
