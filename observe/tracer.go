package observe

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/peekaboo/sink"
)

const (
	instrumentationName = "github.com/jonwraymond/peekaboo"

	// SpanName is the name of the span recorded for every trace line.
	SpanName = "peekaboo.trace"
)

const (
	invokingMarker = "( Invoking: "
	raisingMarker  = "!!! Raising: "
)

// Line is a trace line split into its parts. Lines that do not come from
// the interceptor keep an empty Method.
type Line struct {
	Site   string // "file:line:in `func'"
	Call   string // "( Invoking: ... )"
	Method string // "Class#name"
	Raised bool
	Reason string // quoted message of a raised error or panic
}

// ParseLine splits msg at its first newline-tab into call site and call.
func ParseLine(msg string) Line {
	site, call, ok := strings.Cut(msg, "\n\t")
	if !ok {
		return Line{Call: msg}
	}
	l := Line{Site: site, Call: call}
	if rest, ok := strings.CutPrefix(call, invokingMarker); ok {
		if method, _, ok := strings.Cut(rest, " with "); ok {
			l.Method = method
		}
		l.Reason, l.Raised = raisedReason(call)
	}
	return l
}

// raisedReason returns the quoted reason of a call ending in
// `] !!! Raising: "<reason>" )`. Rendered values escape their quotes, so a
// marker inside a returned value never leaves a valid quoted tail.
func raisedReason(call string) (string, bool) {
	rest, ok := strings.CutSuffix(call, " )")
	if !ok {
		return "", false
	}
	i := strings.LastIndex(rest, "] "+raisingMarker+`"`)
	if i < 0 {
		return "", false
	}
	reason := rest[i+len("] "+raisingMarker):]
	if _, err := strconv.Unquote(reason); err != nil {
		return "", false
	}
	return reason, true
}

func (l Line) attributes(level sink.Level) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("peekaboo.level", level.String()),
		attribute.Bool("peekaboo.raised", l.Raised),
	}
	if l.Method != "" {
		attrs = append(attrs, attribute.String("peekaboo.method", l.Method))
	}
	return attrs
}

// recordSpan records one already finished span for a trace line.
func recordSpan(ctx context.Context, tracer trace.Tracer, level sink.Level, l Line) {
	attrs := l.attributes(level)
	attrs = append(attrs, attribute.String("peekaboo.call", l.Call))
	if l.Site != "" {
		attrs = append(attrs, attribute.String("peekaboo.call_site", l.Site))
	}

	_, span := tracer.Start(ctx, SpanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	if l.Raised {
		span.SetStatus(codes.Error, l.Reason)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
