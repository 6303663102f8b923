// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"quotedesk/internal/domain"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeUpstream = "upstream"
	OutcomeError    = "error"
)

// Metrics holds the collectors used by the quotation services.
type Metrics struct {
	operations     *prometheus.CounterVec
	operationTime  *prometheus.HistogramVec
	documentTotals *prometheus.HistogramVec
	lineItems      prometheus.Histogram
	exports        *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// New creates and registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotedesk_quotation_operations_total",
			Help: "Quotation operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		operationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quotedesk_quotation_operation_duration_seconds",
			Help:    "Quotation operation latency including master data lookups.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		documentTotals: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quotedesk_document_grand_total",
			Help:    "Grand totals of saved documents in rupees.",
			Buckets: prometheus.ExponentialBuckets(100, 4, 10),
		}, []string{"document_type"}),
		lineItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quotedesk_document_line_items",
			Help:    "Number of line items per saved document.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 250},
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotedesk_exports_total",
			Help: "Exports, archives and emails by kind and outcome.",
		}, []string{"kind", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotedesk_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quotedesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(m.operations, m.operationTime, m.documentTotals, m.lineItems,
		m.exports, m.httpRequests, m.httpLatency)
	return m
}

// Outcome classifies an error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrInvalidDocumentType),
		errors.Is(err, domain.ErrInvalidAdjustmentType):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrQuotationNotFound),
		errors.Is(err, domain.ErrBranchNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrCatalogItemNotFound),
		errors.Is(err, domain.ErrRowNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrMasterDataUnavailable):
		return OutcomeUpstream
	default:
		return OutcomeError
	}
}

// ObserveOperation records one quotation operation. Safe on a nil receiver.
func (m *Metrics) ObserveOperation(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
	m.operationTime.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// ObserveSaved records the size and value of a saved document.
func (m *Metrics) ObserveSaved(docType domain.DocumentType, lines int, grandTotal float64) {
	if m == nil {
		return
	}
	m.lineItems.Observe(float64(lines))
	m.documentTotals.WithLabelValues(string(docType)).Observe(grandTotal)
}

// ObserveExport records an export, archive or email.
func (m *Metrics) ObserveExport(kind string, err error) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(kind, Outcome(err)).Inc()
}

// ObserveHTTP records one HTTP request.
func (m *Metrics) ObserveHTTP(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
