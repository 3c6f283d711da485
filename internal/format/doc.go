// Package format holds the display helpers shared by the CLI presenters:
// durations, large numbers, rates and benchmark progress with an ETA.
package format
