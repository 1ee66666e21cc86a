package config

import (
	"context"
	"fmt"

	"github.com/jonwraymond/peekaboo/observe"
	"github.com/jonwraymond/peekaboo/sink"
	"github.com/jonwraymond/peekaboo/tracing"
)

// ShutdownFunc flushes whatever Apply started.
type ShutdownFunc func(ctx context.Context) error

// Apply builds the sink described by s and installs it, together with the
// renderer and duplicate policy, on tracing.Config(). When observe is
// enabled the sink is wrapped so every line is also exported; the returned
// func shuts the exporters down. Nothing is changed when an error is
// returned.
func Apply(ctx context.Context, s *Settings) (ShutdownFunc, error) {
	if s == nil {
		s = Default()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	renderer, err := tracing.ParseRenderer(s.Render)
	if err != nil {
		return nil, err
	}
	policy, err := tracing.ParseDuplicatePolicy(s.Duplicates)
	if err != nil {
		return nil, err
	}

	out, err := sink.DefaultRegistry.Create(s.Sink.Kind, s.sinkOptions())
	if err != nil {
		return nil, fmt.Errorf("config: create sink: %w", err)
	}

	shutdown := ShutdownFunc(func(context.Context) error { return nil })
	if s.Observe.Enabled {
		obs, err := observe.NewObserver(ctx, s.observeConfig())
		if err != nil {
			return nil, fmt.Errorf("config: start observer: %w", err)
		}
		wrapped, err := observe.NewSink(obs, out)
		if err != nil {
			_ = obs.Shutdown(ctx)
			return nil, fmt.Errorf("config: wrap sink: %w", err)
		}
		out = wrapped
		shutdown = obs.Shutdown
	}

	cfg := tracing.Config()
	if err := cfg.SetSink(out); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	cfg.SetRenderer(renderer)
	cfg.SetDuplicatePolicy(policy)
	return shutdown, nil
}
