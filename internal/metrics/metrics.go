package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eshaz/rtl433/internal/device"
)

// Metrics counts decode attempts per device and outcome.
type Metrics struct {
	Attempts *prometheus.CounterVec
	Events   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtl433_decode_attempts_total",
			Help: "Decode attempts by device and status",
		}, []string{"device", "status"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtl433_events_total",
			Help: "Records emitted by device",
		}, []string{"device"}),
		gatherer: reg,
	}
	reg.MustRegister(m.Attempts, m.Events)
	return m
}

// Observe records one decode attempt.
func (m *Metrics) Observe(deviceName string, status int) {
	m.Attempts.WithLabelValues(deviceName, device.StatusName(status)).Inc()
	if status > 0 {
		m.Events.WithLabelValues(deviceName).Add(float64(status))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
