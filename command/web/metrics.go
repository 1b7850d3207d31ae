package web

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mv2_conversions_total",
			Help: "Total count of MV1 uploads processed by endpoint and status.",
		}, []string{"endpoint", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mv2_conversion_duration_seconds",
			Help:    "Histogram of MV1 upload processing durations by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.conversions, m.duration)
	return m
}

// instrument records status and latency for the wrapped endpoint.
func (m *metrics) instrument(endpoint string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}
		if m != nil {
			m.conversions.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}
		return err
	}
}
