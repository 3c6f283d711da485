package orchestration

import (
	"time"

	"github.com/agbru/vedicmath/internal/format"
)

// ProgressAggregator folds per-workload updates into an overall progress
// and ETA.
type ProgressAggregator struct {
	state        *format.ProgressWithETA
	numWorkloads int
}

// NewProgressAggregator tracks numWorkloads workloads. It returns nil if
// numWorkloads <= 0.
func NewProgressAggregator(numWorkloads int) *ProgressAggregator {
	if numWorkloads <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:        format.NewProgressWithETA(numWorkloads),
		numWorkloads: numWorkloads,
	}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	Index           int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies one update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.Index, update.Value)
	return AggregatedProgress{
		Index:           update.Index,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumWorkloads returns the number of workloads tracked.
func (a *ProgressAggregator) NumWorkloads() int {
	return a.numWorkloads
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
