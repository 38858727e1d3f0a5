package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	rotations       *prometheus.CounterVec
	rotatedElements prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "rotator_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"route", "status"},
		),
		rotations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rotator_rotations_total",
				Help: "Total number of rotations performed",
			},
			[]string{"direction"},
		),
		rotatedElements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "rotator_rotated_elements_total",
				Help: "Total number of elements moved by rotations",
			},
		),
	}

	m.registry.MustRegister(m.requestDuration, m.rotations, m.rotatedElements)
	return m
}
