package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisStarted   = newCounterVec()
	analysisCompleted = newCounterVec()
	analysisFailed    = newCounterVec()
	aiFallbacks       = newCounterVec()
	resumesStored     atomic.Uint64
	resumeStoreFailed atomic.Uint64
	panics            atomic.Uint64

	analysisDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnalysisStarted increments the started counter for an analysis type.
func IncAnalysisStarted(analysisType string) {
	analysisStarted.inc(analysisType)
}

// IncAnalysisCompleted increments the completed counter for an analysis type.
func IncAnalysisCompleted(analysisType string) {
	analysisCompleted.inc(analysisType)
}

// IncAnalysisFailed increments the failed counter for an analysis type.
func IncAnalysisFailed(analysisType string) {
	analysisFailed.inc(analysisType)
}

// IncAIFallback counts a pluggable capability that fell back to its static default.
func IncAIFallback(capability string) {
	aiFallbacks.inc(capability)
}

// IncResumeStored counts a persisted upload.
func IncResumeStored() {
	resumesStored.Add(1)
}

// IncResumeStoreFailed counts an upload whose persistence failed.
func IncResumeStoreFailed() {
	resumeStoreFailed.Add(1)
}

// IncPanic counts a recovered handler panic.
func IncPanic() {
	panics.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "analysis_started_total", "Total analyses started", "type", analysisStarted)
	writeCounterVec(&buf, "analysis_completed_total", "Total analyses completed", "type", analysisCompleted)
	writeCounterVec(&buf, "analysis_failed_total", "Total analyses failed", "type", analysisFailed)
	writeCounterVec(&buf, "ai_fallback_total", "AI capability calls that fell back to static defaults", "capability", aiFallbacks)
	writeCounter(&buf, "resume_stored_total", "Uploaded resumes persisted", resumesStored.Load())
	writeCounter(&buf, "resume_store_failed_total", "Uploaded resumes that failed to persist", resumeStoreFailed.Load())
	writeCounter(&buf, "http_panics_total", "Handler panics recovered", panics.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

type counterVec struct {
	values sync.Map // label -> *atomic.Uint64
}

func newCounterVec() *counterVec {
	return &counterVec{}
}

func (v *counterVec) inc(label string) {
	if label == "" {
		label = "unknown"
	}
	c, _ := v.values.LoadOrStore(label, new(atomic.Uint64))
	c.(*atomic.Uint64).Add(1)
}

func (v *counterVec) snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	v.values.Range(func(k, c any) bool {
		out[k.(string)] = c.(*atomic.Uint64).Load()
		return true
	})
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket that holds it; Render accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help, label string, v *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	snap := v.snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, snap[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
