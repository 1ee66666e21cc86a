// Package sink defines where trace lines go.
//
// A Sink is anything with the six leveled operations Debug, Info, Warn,
// Error, Fatal and Unknown, each taking one preformatted message. The
// package ships a console sink (the default), a JSON lines sink, a zap
// adapter, an in-memory Recorder for tests, and a Registry of named
// factories used by configuration loaders.
//
// Sinks never terminate the process: Fatal is a severity, not an exit.
package sink
