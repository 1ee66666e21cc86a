package observe

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/peekaboo/sink"
)

// LinesMetric is the counter incremented for every trace line.
const LinesMetric = "peekaboo.trace.lines"

// RaisedMetric is the counter incremented for every line reporting an error or panic.
const RaisedMetric = "peekaboo.trace.raised"

type lineMetrics struct {
	lines  metric.Int64Counter
	raised metric.Int64Counter
}

func newLineMetrics(meter metric.Meter) (*lineMetrics, error) {
	lines, err := meter.Int64Counter(
		LinesMetric,
		metric.WithDescription("Number of trace lines emitted"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, err
	}

	raised, err := meter.Int64Counter(
		RaisedMetric,
		metric.WithDescription("Number of traced calls that raised"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &lineMetrics{lines: lines, raised: raised}, nil
}

func (m *lineMetrics) record(ctx context.Context, level sink.Level, l Line) {
	opt := metric.WithAttributes(l.attributes(level)...)
	m.lines.Add(ctx, 1, opt)
	if l.Raised {
		m.raised.Add(ctx, 1, opt)
	}
}
