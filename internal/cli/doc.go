// Package cli renders results, statistics and benchmark progress for the
// terminal, and provides the interactive REPL over the dispatcher.
//
// Display* functions write to an io.Writer, Format* functions return a
// string without I/O, and Write* functions write files.
package cli
