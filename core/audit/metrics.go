package audit

import (
	"sync/atomic"
	"time"
)

// latencyBounds are the upper bounds of the latency histogram buckets in
// milliseconds. The last bucket is unbounded.
var latencyBounds = []int64{10, 50, 100, 250, 500, 1000, 2500, 5000}

// Metrics holds the monotonic counters shared by all in-flight queries.
// All updates are atomic; no locking is required.
type Metrics struct {
	requests atomic.Int64
	blocks   atomic.Int64
	degraded atomic.Int64
	latency  [9]atomic.Int64
}

// NewMetrics creates a zeroed metrics set
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRequest increments the request counter
func (m *Metrics) RecordRequest() {
	m.requests.Add(1)
}

// RecordBlock increments the block counter
func (m *Metrics) RecordBlock() {
	m.blocks.Add(1)
}

// RecordDegraded increments the degraded-response counter
func (m *Metrics) RecordDegraded() {
	m.degraded.Add(1)
}

// ObserveLatency records one end-to-end query latency
func (m *Metrics) ObserveLatency(d time.Duration) {
	ms := d.Milliseconds()
	for i, bound := range latencyBounds {
		if ms <= bound {
			m.latency[i].Add(1)
			return
		}
	}
	m.latency[len(latencyBounds)].Add(1)
}

// Requests returns the total number of processed queries
func (m *Metrics) Requests() int64 {
	return m.requests.Load()
}

// Blocks returns the number of queries blocked by a gate
func (m *Metrics) Blocks() int64 {
	return m.blocks.Load()
}

// Degraded returns the number of degraded responses
func (m *Metrics) Degraded() int64 {
	return m.degraded.Load()
}

// LatencyBuckets returns a snapshot of the latency histogram counts
func (m *Metrics) LatencyBuckets() []int64 {
	buckets := make([]int64, len(m.latency))
	for i := range m.latency {
		buckets[i] = m.latency[i].Load()
	}
	return buckets
}
