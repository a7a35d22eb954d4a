package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (o Outcome) String() string {
	return string(o)
}

var (
	once                    sync.Once
	metricsRouter           *chi.Mux
	cycleDurationHistogram  *prometheus.HistogramVec
	eventsFetchedCounter    prometheus.Counter
	linesPostedCounter      prometheus.Counter
	webhookLatencyHistogram *prometheus.HistogramVec
	rateLimitRetryCounter   prometheus.Counter
	cursorRoundGauge        prometheus.Gauge
	queueSendErrorCounter   prometheus.Counter
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and registers the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	cycleDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigwin_cycle_duration_seconds",
			Help:    "Duration of one poll cycle in seconds",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"outcome"},
	)

	eventsFetchedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bigwin_events_fetched_total",
			Help: "Total number of win events fetched from the upstream API",
		},
	)

	linesPostedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bigwin_lines_posted_total",
			Help: "Total number of notification lines delivered to the webhook",
		},
	)

	webhookLatencyHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigwin_webhook_request_duration_seconds",
			Help:    "Latency of webhook requests in seconds",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"outcome"},
	)

	rateLimitRetryCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bigwin_webhook_rate_limit_retries_total",
			Help: "Total number of webhook chunk retries caused by 429 responses",
		},
	)

	cursorRoundGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bigwin_cursor_round",
			Help: "Round component of the persisted cursor after the last successful cycle",
		},
	)

	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bigwin_queue_send_error_total",
			Help: "Total number of failed win announcements to the queue",
		},
	)

	prometheus.MustRegister(
		cycleDurationHistogram,
		eventsFetchedCounter,
		linesPostedCounter,
		webhookLatencyHistogram,
		rateLimitRetryCounter,
		cursorRoundGauge,
		queueSendErrorCounter,
	)
}

func RecordEventsFetched(count int) {
	if eventsFetchedCounter != nil {
		eventsFetchedCounter.Add(float64(count))
	}
}

func RecordLinesPosted(count int) {
	if linesPostedCounter != nil {
		linesPostedCounter.Add(float64(count))
	}
}

func RecordWebhookLatency(duration time.Duration, outcome Outcome) {
	if webhookLatencyHistogram != nil {
		webhookLatencyHistogram.WithLabelValues(outcome.String()).Observe(duration.Seconds())
	}
}

func RecordRateLimitRetry() {
	if rateLimitRetryCounter != nil {
		rateLimitRetryCounter.Inc()
	}
}

func RecordCursorRound(round uint64) {
	if cursorRoundGauge != nil {
		cursorRoundGauge.Set(float64(round))
	}
}

func RecordQueueSendError() {
	if queueSendErrorCounter != nil {
		queueSendErrorCounter.Inc()
	}
}
