package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathtatag_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mathtatag_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// TaskTransitions 家庭任务状态流转次数
	TaskTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathtatag_task_transitions_total",
			Help: "Home task status transitions",
		},
		[]string{"from", "to"},
	)

	// ScoresRecorded 录入的前测/后测成绩数
	ScoresRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathtatag_scores_recorded_total",
			Help: "Pre/post test scores recorded",
		},
		[]string{"kind", "category"},
	)

	DashboardCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathtatag_dashboard_cache_total",
			Help: "Dashboard cache lookups",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(TaskTransitions)
		prometheus.MustRegister(ScoresRecorded)
		prometheus.MustRegister(DashboardCache)
	})
}

func ObserveTaskTransition(from, to string) {
	TaskTransitions.WithLabelValues(from, to).Inc()
}

func ObserveScore(kind, category string) {
	ScoresRecorded.WithLabelValues(kind, category).Inc()
}

func ObserveCache(hit bool) {
	if hit {
		DashboardCache.WithLabelValues("hit").Inc()
		return
	}
	DashboardCache.WithLabelValues("miss").Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
