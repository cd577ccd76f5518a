// Package observability exposes Prometheus metrics for entries, HTTP traffic and email delivery.
package observability

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/carbon-tracker/backend/internal/application/usecase/entry"
)

var (
	entryChangeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbon_tracker",
		Subsystem: "entries",
		Name:      "changes_total",
		Help:      "Number of successful entry store changes grouped by kind and identity.",
	}, []string{"kind", "identity"})

	emissionsLoggedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbon_tracker",
		Subsystem: "entries",
		Name:      "co2e_logged_kg_total",
		Help:      "Kilograms of CO2e logged through new entries.",
	}, []string{"identity"})

	httpRequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbon_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests grouped by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carbon_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests per route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	emailCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbon_tracker",
		Subsystem: "email",
		Name:      "jobs_total",
		Help:      "Email jobs processed by the worker grouped by template and outcome.",
	}, []string{"template", "outcome"})
)

func init() {
	prometheus.MustRegister(entryChangeCounter, emissionsLoggedCounter, httpRequestCounter, httpDuration, emailCounter)
}

// RegisterDBStats exposes connection pool statistics of db. Registering a
// second pool under the same name is a no-op.
func RegisterDBStats(db *sql.DB, name string) error {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, name))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// EntryObserver returns a store subscriber that counts entry changes.
func EntryObserver() func(entry.Change) {
	return func(c entry.Change) {
		identity := string(c.Identity.Kind)
		entryChangeCounter.WithLabelValues(string(c.Kind), identity).Inc()
		if c.Kind == entry.ChangeAdded && c.Entry != nil {
			emissionsLoggedCounter.WithLabelValues(identity).Add(c.Entry.CO2e)
		}
	}
}

// RecordEmail counts one processed email job. Outcome is sent, retry or failed.
func RecordEmail(template, outcome string) {
	emailCounter.WithLabelValues(template, outcome).Inc()
}

// Middleware records request counts and latencies by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestCounter.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
