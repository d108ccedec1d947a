// Package metrics exposes the Prometheus instruments the API serves on
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anubhav_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "anubhav_bookings_created_total",
		Help: "Bookings successfully persisted.",
	})

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anubhav_recommendations_served_total",
			Help: "Recommendations served, split by model vs fallback answers.",
		},
		[]string{"source"},
	)

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "anubhav_reminders_sent_total",
		Help: "Reminder deliveries confirmed by the notification gateway.",
	})
)

// Recommendation sources for RecommendationsServed
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Middleware records request latency for every route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
