// Package observe turns trace lines into OpenTelemetry telemetry.
//
// An Observer owns the tracer and meter providers built from Config. Sink
// wraps any sink.Sink: each line it receives becomes one span and one
// counter increment before it is forwarded unchanged.
package observe
