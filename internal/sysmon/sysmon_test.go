package sysmon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample(context.Background())
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.Taken.IsZero() {
		t.Error("expected a sample timestamp")
	}
}

func TestSnapshotStressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"idle", Snapshot{CPUPercent: 10, MemPercent: 40}, false},
		{"cpu", Snapshot{CPUPercent: 95, MemPercent: 40}, true},
		{"memory", Snapshot{CPUPercent: 10, MemPercent: 91}, true},
		{"hot", Snapshot{Temperature: 75, HasTemperature: true}, true},
		{"temperature without sensor", Snapshot{Temperature: 75}, false},
		{"cpu at threshold", Snapshot{CPUPercent: CPUStressPercent}, true},
		{"memory at threshold", Snapshot{MemPercent: MemStressPercent}, true},
		{"temperature at threshold", Snapshot{Temperature: ThermalStressCelsius, HasTemperature: true}, true},
		{"just below", Snapshot{CPUPercent: 79.9, MemPercent: 79.9, Temperature: 69.9, HasTemperature: true}, false},
	}
	for _, tt := range tests {
		if got := tt.snap.Stressed(); got != tt.want {
			t.Errorf("%s: Stressed() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFixedSource(t *testing.T) {
	t.Parallel()

	var src Source = Fixed{CPUPercent: 99}
	s, ok := src.Snapshot()
	if !ok || s.CPUPercent != 99 {
		t.Errorf("Fixed.Snapshot() = %+v, %v", s, ok)
	}
}

func TestMonitorRefreshes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	m := NewMonitor(5 * time.Millisecond)
	m.sample = func(context.Context) Snapshot {
		return Snapshot{CPUPercent: float64(calls.Add(1))}
	}

	if _, ok := m.Snapshot(); ok {
		t.Fatal("expected no snapshot before Start")
	}

	m.Start(context.Background())
	m.Start(context.Background())
	if s, ok := m.Snapshot(); !ok || s.CPUPercent < 1 {
		t.Fatalf("expected a synchronous first sample, got %+v, %v", s, ok)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	m.Stop()
	m.Stop()

	if calls.Load() < 3 {
		t.Errorf("expected background refreshes, got %d samples", calls.Load())
	}
	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != stopped {
		t.Error("monitor kept sampling after Stop")
	}
	if _, ok := m.Snapshot(); !ok {
		t.Error("last snapshot should survive Stop")
	}
}

func TestNewMonitorDefaultInterval(t *testing.T) {
	t.Parallel()

	if m := NewMonitor(0); m.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultInterval)
	}
}

// TestMonitorStopRightAfterStart restarts a monitor whose goroutine may not
// have been scheduled yet; run with -race.
func TestMonitorStopRightAfterStart(t *testing.T) {
	t.Parallel()

	m := NewMonitor(time.Millisecond)
	m.sample = func(context.Context) Snapshot { return Snapshot{CPUPercent: 1} }
	for range 50 {
		m.Start(context.Background())
		m.Stop()
	}
	if _, ok := m.Snapshot(); !ok {
		t.Error("expected the last snapshot to stay readable")
	}
}
