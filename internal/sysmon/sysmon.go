//go:generate mockgen -source=sysmon.go -destination=mocks/mock_source.go -package=mocks

// Package sysmon provides the advisory resource snapshot consulted by the
// classifier as a tie-breaker. A snapshot is a hint only: a missing or stale
// snapshot changes routing, never results.
package sysmon

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
)

// Stress thresholds above which a snapshot counts as resource pressure.
const (
	CPUStressPercent     = 80.0
	MemStressPercent     = 80.0
	ThermalStressCelsius = 70.0
)

// DefaultInterval is the refresh period used when none is configured.
const DefaultInterval = time.Second

// Snapshot holds a single sample of system-wide resource usage.
type Snapshot struct {
	CPUPercent     float64 // 0.0 .. 100.0
	MemPercent     float64 // 0.0 .. 100.0
	Temperature    float64 // Celsius, valid when HasTemperature
	HasTemperature bool
	Taken          time.Time
}

// Stressed reports whether any reading is at or above its stress threshold.
func (s Snapshot) Stressed() bool {
	return s.CPUPercent >= CPUStressPercent ||
		s.MemPercent >= MemStressPercent ||
		(s.HasTemperature && s.Temperature >= ThermalStressCelsius)
}

// Source supplies the latest snapshot. ok is false when no sample exists.
type Source interface {
	Snapshot() (snap Snapshot, ok bool)
}

// Fixed is a Source that always returns the same snapshot, for
// reproducible classification.
type Fixed Snapshot

// Snapshot returns the fixed snapshot.
func (f Fixed) Snapshot() (Snapshot, bool) { return Snapshot(f), true }

// Sample collects a single system-wide snapshot. CPU uses interval=0 (delta
// since the last call). Readings that fail are left at zero; the
// temperature is the hottest sensor reported, when any are.
func Sample(ctx context.Context) Snapshot {
	s := Snapshot{Taken: time.Now()}
	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	temps, _ := sensors.TemperaturesWithContext(ctx)
	for _, t := range temps {
		if t.Temperature > 0 && (!s.HasTemperature || t.Temperature > s.Temperature) {
			s.Temperature = t.Temperature
			s.HasTemperature = true
		}
	}
	return s
}

// Monitor refreshes a snapshot in the background.
type Monitor struct {
	interval time.Duration
	sample   func(context.Context) Snapshot

	mu   sync.RWMutex
	snap Snapshot
	have bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor returns a stopped monitor refreshing every interval.
// A non-positive interval selects DefaultInterval.
func NewMonitor(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{interval: interval, sample: Sample}
}

// Start takes a first sample synchronously and then refreshes until ctx is
// done or Stop is called. Starting a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.done != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	m.done = done
	m.mu.Unlock()

	m.store(m.sample(ctx))
	go m.run(ctx, done)
}

func (m *Monitor) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.store(m.sample(ctx))
		}
	}
}

func (m *Monitor) store(s Snapshot) {
	m.mu.Lock()
	m.snap, m.have = s, true
	m.mu.Unlock()
}

// Snapshot returns the most recent sample.
func (m *Monitor) Snapshot() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap, m.have
}

// Stop halts the refresh goroutine and waits for it to exit. The last
// snapshot stays readable.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
