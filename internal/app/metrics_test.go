package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	snap := NewMetrics().Snapshot()

	if snap.FrameCount != 0 || snap.EventCount != 0 || snap.CopyCount != 0 {
		t.Errorf("expected zero counts, got %+v", snap)
	}
	if snap.AvgFrameTime != 0 {
		t.Errorf("expected zero average, got %v", snap.AvgFrameTime)
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(2 * time.Millisecond)
	m.RecordFrame(6 * time.Millisecond)
	m.RecordFrame(4 * time.Millisecond)

	snap := m.Snapshot()
	if snap.FrameCount != 3 {
		t.Errorf("FrameCount = %d, want 3", snap.FrameCount)
	}
	if snap.AvgFrameTime != 4*time.Millisecond {
		t.Errorf("AvgFrameTime = %v, want 4ms", snap.AvgFrameTime)
	}
	if snap.MaxFrameTime != 6*time.Millisecond {
		t.Errorf("MaxFrameTime = %v, want 6ms", snap.MaxFrameTime)
	}
	if snap.LastFrame != 4*time.Millisecond {
		t.Errorf("LastFrame = %v, want 4ms", snap.LastFrame)
	}
}

func TestMetrics_RecordFrameConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.RecordFrame(d)
		}(time.Duration(i) * time.Microsecond)
	}
	wg.Wait()

	snap := m.Snapshot()
	if snap.FrameCount != 50 {
		t.Errorf("FrameCount = %d, want 50", snap.FrameCount)
	}
	if snap.MaxFrameTime != 50*time.Microsecond {
		t.Errorf("MaxFrameTime = %v, want 50us", snap.MaxFrameTime)
	}
}

func TestMetrics_RecordEvent(t *testing.T) {
	m := NewMetrics()
	m.RecordEvent(time.Millisecond)
	m.RecordEvent(3 * time.Millisecond)

	snap := m.Snapshot()
	if snap.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", snap.EventCount)
	}
	if snap.AvgEventTime != 2*time.Millisecond {
		t.Errorf("AvgEventTime = %v, want 2ms", snap.AvgEventTime)
	}
}

func TestMetrics_RecordCopy(t *testing.T) {
	m := NewMetrics()
	m.RecordCopy(true)
	m.RecordCopy(true)
	m.RecordCopy(true)
	m.RecordCopy(false)

	snap := m.Snapshot()
	if snap.CopyCount != 3 || snap.CopyFailures != 1 {
		t.Errorf("copies = %d/%d, want 3/1", snap.CopyCount, snap.CopyFailures)
	}
	if rate := snap.CopyFailureRate(); rate != 25 {
		t.Errorf("CopyFailureRate() = %v, want 25", rate)
	}
}

func TestMetrics_Snapshot_Uptime(t *testing.T) {
	m := NewMetrics()
	m.now = func() time.Time { return m.startTime.Add(90 * time.Second) }

	if up := m.Snapshot().Uptime; up != 90*time.Second {
		t.Errorf("Uptime = %v, want 90s", up)
	}
}

func TestMetricsSnapshot_AvgFPS(t *testing.T) {
	tests := []struct {
		name     string
		avgFrame time.Duration
		expected float64
	}{
		{"no frames", 0, 0},
		{"16ms", 16 * time.Millisecond, 62.5},
		{"10ms", 10 * time.Millisecond, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := MetricsSnapshot{AvgFrameTime: tt.avgFrame}
			if fps := snap.AvgFPS(); fps != tt.expected {
				t.Errorf("AvgFPS() = %v, expected %v", fps, tt.expected)
			}
		})
	}
}

func TestMetricsSnapshot_CopyFailureRate_NoCopies(t *testing.T) {
	if rate := (MetricsSnapshot{}).CopyFailureRate(); rate != 0 {
		t.Errorf("CopyFailureRate() = %v, want 0", rate)
	}
}
