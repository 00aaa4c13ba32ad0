// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutorhub"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AttendanceQueueDepth is sampled by the attendance worker on idle polls.
	AttendanceQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "attendance_queue_depth",
		Help:      "Pending bulk attendance entries in Redis.",
	})

	AttendanceFlushed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_records_flushed_total",
		Help:      "Attendance records written by the worker, by result.",
	}, []string{"result"})

	ScheduleCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_cache_requests_total",
		Help:      "Weekly schedule cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	AnnouncementSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "announcement_subscribers",
		Help:      "Open announcement WebSocket connections.",
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by a rate limiter, by limiter name.",
	}, []string{"limiter"})

	CronRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cron_runs_total",
		Help:      "Scheduled job runs by job and result.",
	}, []string{"job", "result"})
)
