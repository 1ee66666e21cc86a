package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/peekaboo/sink"
)

// Sink records every line as a span and a counter increment, then forwards
// it to the next sink.
//
// Contract:
// - Concurrency: safe for concurrent use when next is.
// - Errors: telemetry failures are dropped; lines always reach next.
type Sink struct {
	tracer  trace.Tracer
	metrics *lineMetrics
	next    sink.Sink
}

// NewSink wraps next with telemetry from obs. A nil next drops lines after
// they are recorded.
func NewSink(obs Observer, next sink.Sink) (*Sink, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	m, err := newLineMetrics(obs.Meter())
	if err != nil {
		return nil, fmt.Errorf("observe: create metrics: %w", err)
	}
	if next == nil {
		next = sink.Discard
	}
	return &Sink{tracer: obs.Tracer(), metrics: m, next: next}, nil
}

func (s *Sink) Debug(msg string)   { s.emit(sink.LevelDebug, msg) }
func (s *Sink) Info(msg string)    { s.emit(sink.LevelInfo, msg) }
func (s *Sink) Warn(msg string)    { s.emit(sink.LevelWarn, msg) }
func (s *Sink) Error(msg string)   { s.emit(sink.LevelError, msg) }
func (s *Sink) Fatal(msg string)   { s.emit(sink.LevelFatal, msg) }
func (s *Sink) Unknown(msg string) { s.emit(sink.LevelUnknown, msg) }

func (s *Sink) emit(level sink.Level, msg string) {
	ctx := context.Background()
	l := ParseLine(msg)
	recordSpan(ctx, s.tracer, level, l)
	s.metrics.record(ctx, level, l)
	sink.Emit(s.next, level, msg)
}
