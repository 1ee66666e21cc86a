package sink

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Factory creates a Sink from configuration.
type Factory func(cfg map[string]any) (Sink, error)

// Registry manages sink factories by kind.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a sink factory.
func (r *Registry) Register(kind string, factory Factory) error {
	if strings.TrimSpace(kind) == "" || factory == nil {
		return errors.New("sink: invalid factory registration")
	}
	kind = strings.TrimSpace(kind)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("sink: kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// Create instantiates a sink by kind.
func (r *Registry) Create(kind string, cfg map[string]any) (Sink, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, errors.New("sink: kind is required")
	}

	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, kind)
	}

	return factory(cfg)
}

// List returns registered kinds.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// DefaultRegistry holds the built-in kinds: console, json, zap and discard.
var DefaultRegistry = newBuiltinRegistry()

func newBuiltinRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("console", newConsoleFromConfig)
	_ = r.Register("json", newJSONFromConfig)
	_ = r.Register("zap", newZapFromConfig)
	_ = r.Register("discard", func(map[string]any) (Sink, error) { return Discard, nil })
	return r
}

func newConsoleFromConfig(cfg map[string]any) (Sink, error) {
	w, err := ConsoleTarget(stringOpt(cfg, "target"))
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(stringOpt(cfg, "level"))
	if err != nil {
		return nil, err
	}
	return NewConsole(w,
		WithLevel(level),
		WithProgName(stringOpt(cfg, "prog")),
		WithColor(boolOpt(cfg, "color")),
	), nil
}

func newJSONFromConfig(cfg map[string]any) (Sink, error) {
	w, err := ConsoleTarget(stringOpt(cfg, "target"))
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(stringOpt(cfg, "level"))
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if prog := stringOpt(cfg, "prog"); prog != "" {
		fields = map[string]any{"prog": prog}
	}
	return NewJSON(w, level, fields), nil
}

func newZapFromConfig(cfg map[string]any) (Sink, error) {
	level, err := ParseLevel(stringOpt(cfg, "level"))
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch mode := stringOpt(cfg, "mode"); mode {
	case "", "production":
		zc = zap.NewProductionConfig()
	case "development":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("sink: unknown zap mode %q (use production or development)", mode)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel(level))
	if target := stringOpt(cfg, "target"); target != "" {
		zc.OutputPaths = []string{target}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("sink: build zap logger: %w", err)
	}
	if prog := stringOpt(cfg, "prog"); prog != "" {
		logger = logger.Named(prog)
	}
	return NewZap(logger), nil
}

func stringOpt(cfg map[string]any, key string) string {
	s, _ := cfg[key].(string)
	return s
}

func boolOpt(cfg map[string]any, key string) bool {
	b, _ := cfg[key].(bool)
	return b
}
