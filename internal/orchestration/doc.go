// Package orchestration runs the benchmark workloads concurrently, one
// dispatcher per workload, and aggregates their results for comparison. It
// decouples the run from presentation via the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
