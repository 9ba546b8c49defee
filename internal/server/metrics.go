package server

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exported by the server
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	calculations    *prometheus.CounterVec
}

// NewMetrics creates the server collectors and registers them with registerer
// when it is non-nil
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calcd_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calcd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calcd_calculations_total",
			Help: "Total calculations by operation and outcome",
		}, []string{"operation", "status"}),
	}

	if registerer == nil {
		return m, nil
	}

	var err error
	if m.requestsTotal, err = register(registerer, m.requestsTotal); err != nil {
		return nil, err
	}
	if m.requestDuration, err = register(registerer, m.requestDuration); err != nil {
		return nil, err
	}
	if m.calculations, err = register(registerer, m.calculations); err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c, reusing an identical collector that is already registered
func register[T prometheus.Collector](registerer prometheus.Registerer, c T) (T, error) {
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveCalculation records the outcome of a /calculate request
func (m *Metrics) ObserveCalculation(operation, status string) {
	m.calculations.WithLabelValues(operation, status).Inc()
}

// ObserveRequest records a served HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, seconds float64) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(seconds)
}
