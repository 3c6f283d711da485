// Package logging provides the structured logging interface used by the
// dispatcher and the application layer. It abstracts the backend so that the
// kernel code depends only on Logger, with zerolog as the default backend and
// the standard library logger as a fallback.
package logging
