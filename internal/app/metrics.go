package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop timing and clipboard outcomes for the session.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Event processing
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	// Clipboard
	copyCount    atomic.Uint64
	copyFailures atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
	now       func() time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now(), now: time.Now}
}

// RecordFrame records how long one draw took.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordCopy records a settled clipboard write.
func (m *Metrics) RecordCopy(ok bool) {
	if ok {
		m.copyCount.Add(1)
		return
	}
	m.copyFailures.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	eventCount := m.eventCount.Load()

	var avgFrame, avgEvent time.Duration
	if frameCount > 0 {
		avgFrame = time.Duration(m.frameTotalNs.Load() / int64(frameCount))
	}
	if eventCount > 0 {
		avgEvent = time.Duration(m.eventTotalNs.Load() / int64(eventCount))
	}

	return MetricsSnapshot{
		Uptime:       m.now().Sub(m.startTime),
		FrameCount:   frameCount,
		AvgFrameTime: avgFrame,
		MaxFrameTime: time.Duration(m.frameMaxNs.Load()),
		LastFrame:    time.Duration(m.lastFrameNs.Load()),
		EventCount:   eventCount,
		AvgEventTime: avgEvent,
		CopyCount:    m.copyCount.Load(),
		CopyFailures: m.copyFailures.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	FrameCount   uint64
	AvgFrameTime time.Duration
	MaxFrameTime time.Duration
	LastFrame    time.Duration
	EventCount   uint64
	AvgEventTime time.Duration
	CopyCount    uint64
	CopyFailures uint64
}

// AvgFPS returns the frame rate the draw time alone would allow.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTime == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrameTime)
}

// CopyFailureRate returns the percentage of failed copies.
func (s MetricsSnapshot) CopyFailureRate() float64 {
	total := s.CopyCount + s.CopyFailures
	if total == 0 {
		return 0
	}
	return float64(s.CopyFailures) / float64(total) * 100
}
