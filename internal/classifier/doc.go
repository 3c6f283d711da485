// Package classifier chooses the kernel for an operand pair.
//
// Classify is a pure, total function of its arguments: it performs no I/O,
// keeps no state and allocates nothing, so a given input always yields the
// same Result. The optional resource snapshot is passed in by the caller
// and only ever demotes a general-purpose kernel to Standard.
package classifier
