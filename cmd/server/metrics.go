package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timetableweaver_generations_total",
		Help: "Schedule generations by backend and outcome.",
	}, []string{"backend", "outcome"})

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetableweaver_generation_duration_seconds",
		Help:    "Wall-clock duration of schedule generations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})
)

func observeGeneration(backend, outcome string, duration time.Duration) {
	generationsTotal.WithLabelValues(backend, outcome).Inc()
	generationDuration.WithLabelValues(backend).Observe(duration.Seconds())
}
