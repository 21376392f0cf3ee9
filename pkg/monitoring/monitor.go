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
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method", "endpoint"},
	)

	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Upstream model calls by provider and outcome",
		},
		[]string{"provider", "status"},
	)

	LLMDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of upstream model calls",
			Buckets: []float64{1, 5, 10, 20, 40, 60, 90, 120},
		},
		[]string{"provider"},
	)

	// ParseDegradations counts generated arrays or records discarded because
	// the model's reply was not usable.
	ParseDegradations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_parse_degradations_total",
			Help: "Question arrays or records discarded after parsing",
		},
		[]string{"question_type", "reason"},
	)

	QuizzesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quizzes_generated_total",
			Help: "Quizzes generated, persisted or practice",
		},
	)

	AttemptsGraded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_graded_total",
			Help: "Submissions graded",
		},
	)
)

var initOnce sync.Once

// Init registers collectors with the default registry. Safe to call twice.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			LLMRequests,
			LLMDuration,
			ParseDegradations,
			QuizzesGenerated,
			AttemptsGraded,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
