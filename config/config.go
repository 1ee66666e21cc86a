// Package config loads tracing settings from YAML and the environment and
// applies them to the process-wide tracing configuration.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jonwraymond/peekaboo/observe"
	"github.com/jonwraymond/peekaboo/sink"
	"github.com/jonwraymond/peekaboo/tracing"
)

// Settings is the file and environment representation of the tracing setup.
type Settings struct {
	Sink       SinkSettings    `koanf:"sink"`
	Render     string          `koanf:"render"`     // go|spew
	Duplicates string          `koanf:"duplicates"` // ignore|error
	Observe    ObserveSettings `koanf:"observe"`
}

// SinkSettings selects and configures the trace sink.
type SinkSettings struct {
	Kind   string `koanf:"kind"`  // console|json|zap|discard
	Level  string `koanf:"level"` // minimum severity
	Color  bool   `koanf:"color"`
	Target string `koanf:"target"` // stdout|stderr, or an output path for zap
	Prog   string `koanf:"prog"`
	Mode   string `koanf:"mode"` // zap only: production|development
}

// ObserveSettings configures OpenTelemetry export of trace lines.
type ObserveSettings struct {
	Enabled         bool   `koanf:"enabled"`
	ServiceName     string `koanf:"service_name"`
	Version         string `koanf:"version"`
	TraceExporter   string `koanf:"trace_exporter"`
	MetricsExporter string `koanf:"metrics_exporter"`
}

// Default returns the settings used when nothing is configured: a console
// sink on stdout with Go-syntax rendering.
func Default() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

func applyDefaults(s *Settings) {
	if s.Sink.Kind == "" {
		s.Sink.Kind = "console"
	}
	if s.Sink.Target == "" && s.Sink.Kind != "zap" {
		s.Sink.Target = "stdout"
	}
	if s.Render == "" {
		s.Render = "go"
	}
	if s.Duplicates == "" {
		s.Duplicates = tracing.DuplicateIgnore.String()
	}
	if s.Observe.Enabled {
		if s.Observe.ServiceName == "" {
			s.Observe.ServiceName = "peekaboo"
		}
		if s.Observe.TraceExporter == "" {
			s.Observe.TraceExporter = "stdout"
		}
		if s.Observe.MetricsExporter == "" {
			s.Observe.MetricsExporter = "none"
		}
	}
}

// Validate reports every invalid setting.
func (s *Settings) Validate() error {
	var errs []error

	if !slices.Contains(sink.DefaultRegistry.List(), s.Sink.Kind) {
		errs = append(errs, fmt.Errorf("sink.kind: %w: %q", sink.ErrUnknownSink, s.Sink.Kind))
	}
	if _, err := sink.ParseLevel(s.Sink.Level); err != nil {
		errs = append(errs, fmt.Errorf("sink.level: %w", err))
	}
	if s.Sink.Kind == "console" || s.Sink.Kind == "json" {
		if _, err := sink.ConsoleTarget(s.Sink.Target); err != nil {
			errs = append(errs, fmt.Errorf("sink.target: %w", err))
		}
	}
	if _, err := tracing.ParseRenderer(s.Render); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if _, err := tracing.ParseDuplicatePolicy(s.Duplicates); err != nil {
		errs = append(errs, fmt.Errorf("duplicates: %w", err))
	}
	if s.Observe.Enabled {
		cfg := s.observeConfig()
		if err := cfg.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("observe: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *Settings) sinkOptions() map[string]any {
	return map[string]any{
		"level":  s.Sink.Level,
		"color":  s.Sink.Color,
		"target": s.Sink.Target,
		"prog":   s.Sink.Prog,
		"mode":   s.Sink.Mode,
	}
}

func (s *Settings) observeConfig() observe.Config {
	return observe.Config{
		ServiceName: s.Observe.ServiceName,
		Version:     s.Observe.Version,
		Tracing: observe.TracingConfig{
			Enabled:  true,
			Exporter: s.Observe.TraceExporter,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  s.Observe.MetricsExporter != "none",
			Exporter: s.Observe.MetricsExporter,
		},
	}
}
