// Package dispatch evaluates arithmetic through the sutra kernels.
//
// A Dispatcher classifies each call, runs the chosen kernel, optionally
// re-checks the answer against straight arithmetic, and appends one
// telemetry record. Numeric answers are always produced: precondition
// misses, validation mismatches and division by zero all resolve to the
// straight answer and are visible only in telemetry.
//
// A Dispatcher owns its configuration and telemetry log and performs no
// internal locking. Concurrent callers use one dispatcher each or
// serialise access themselves.
package dispatch
