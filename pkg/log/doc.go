// Package log provides traffic logging for agent connections.
//
// The Logger interface receives an Event for every connect, publish,
// subscribe and inbound delivery. Applications plug in whatever sink they
// want: NoopLogger to disable logging, SlogAdapter to forward into a standard
// structured logger, or FileLogger to capture a binary CBOR event stream for
// offline analysis with ReadEvents.
package log
