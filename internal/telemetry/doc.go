// Package telemetry holds the per-call records emitted by a dispatcher.
//
// A Log is an append-only sequence with a capacity fixed at creation. Once
// full it drops new records and counts them, so an exported log is always a
// faithful initial segment of the calls that produced it. Records export as
// CSV with a fixed header and can be persisted to SQLite for offline
// analysis.
package telemetry
