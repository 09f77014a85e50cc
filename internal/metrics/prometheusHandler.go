package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cache_lookups_total",
	Help: "Response cache lookups labelled by result",
}, []string{"result"})

var indexChunks = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "index_chunks",
	Help: "Number of documentation chunks in the index",
})

var indexBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "index_builds_total",
	Help: "Index build attempts labelled by outcome",
}, []string{"result"})

var backgroundTasks = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "background_tasks_active",
	Help: "Number of running background tasks",
})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent answering a question.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"endpoint", "status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewStatusRecorder(w http.ResponseWriter) *HttpStatusRecorder {
	return &HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses (MCP over SSE) working through the recorder.
func (r *HttpStatusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureRequestMetrics(endpoint string, status string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(endpoint, status).Observe(timeElapsed.Seconds())
}

func CountCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

func SetIndexChunks(n int) {
	indexChunks.Set(float64(n))
}

func CountIndexBuild(result string) {
	indexBuilds.WithLabelValues(result).Inc()
}

func IncrementBackgroundTasks() {
	backgroundTasks.Inc()
}

func DecrementBackgroundTasks() {
	backgroundTasks.Dec()
}
