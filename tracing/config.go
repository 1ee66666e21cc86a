package tracing

import (
	"fmt"
	"os"
	"sync"

	"github.com/jonwraymond/peekaboo/class"
	"github.com/jonwraymond/peekaboo/sink"
)

// DuplicatePolicy decides what registering an already traced name does.
type DuplicatePolicy int

const (
	// DuplicateIgnore makes re-registration a silent no-op.
	DuplicateIgnore DuplicatePolicy = iota
	// DuplicateError makes re-registration fail with ErrAlreadyTraced.
	DuplicateError
)

// String returns the string representation of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateIgnore:
		return "ignore"
	case DuplicateError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy parses "ignore" or "error". The empty string means ignore.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "ignore", "":
		return DuplicateIgnore, nil
	case "error":
		return DuplicateError, nil
	default:
		return DuplicateIgnore, fmt.Errorf("tracing: unknown duplicate policy %q (use ignore or error)", s)
	}
}

// Configuration is the process-wide tracing setup.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Ownership: the sink and renderer are shared by every traced call.
type Configuration struct {
	mu         sync.RWMutex
	sink       sink.Sink
	renderer   Renderer
	duplicates DuplicatePolicy
	autoGrant  map[*class.Class]struct{}
}

var (
	configOnce    sync.Once
	configuration *Configuration
)

// Config returns the process-wide configuration, creating it on first use.
func Config() *Configuration {
	configOnce.Do(func() {
		configuration = &Configuration{
			renderer:  GoSyntax,
			autoGrant: make(map[*class.Class]struct{}),
		}
	})
	return configuration
}

// Configure passes the process-wide configuration to fn.
//
//	tracing.Configure(func(c *tracing.Configuration) {
//		_ = c.SetSink(mySink)
//		_ = c.AutoGrant(baseClass, soloClass)
//	})
func Configure(fn func(*Configuration)) {
	fn(Config())
}

// Sink returns the active sink. Until SetSink succeeds it is a console sink
// on stdout.
func (c *Configuration) Sink() sink.Sink {
	c.mu.RLock()
	s := c.sink
	c.mu.RUnlock()
	if s != nil {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sink == nil {
		c.sink = sink.NewConsole(os.Stdout)
	}
	return c.sink
}

// SetSink replaces the active sink. The candidate must be a non-nil value
// implementing all six severities; otherwise ErrIncompatibleSink is
// returned and the previous sink stays active.
func (c *Configuration) SetSink(candidate any) error {
	s, ok := sink.Compatible(candidate)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrIncompatibleSink, candidate)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = s
	return nil
}

// Renderer returns the renderer used for arguments and results.
func (c *Configuration) Renderer() Renderer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renderer
}

// SetRenderer replaces the renderer. nil restores GoSyntax.
func (c *Configuration) SetRenderer(r Renderer) {
	if r == nil {
		r = GoSyntax
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
}

// DuplicatePolicy returns the active duplicate registration policy.
func (c *Configuration) DuplicatePolicy() DuplicatePolicy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.duplicates
}

// SetDuplicatePolicy sets the duplicate registration policy.
func (c *Configuration) SetDuplicatePolicy(p DuplicatePolicy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duplicates = p
}

// AutoGrant marks classes, and through them their subclasses, as eligible
// for lazy capability. Every target must be a non-nil *class.Class or
// nothing is registered. Already registered classes are ignored.
func (c *Configuration) AutoGrant(targets ...any) error {
	classes := make([]*class.Class, 0, len(targets))
	for i, target := range targets {
		k, ok := target.(*class.Class)
		if !ok || k == nil {
			return fmt.Errorf("%w: argument %d is %T", ErrInvalidTarget, i, target)
		}
		classes = append(classes, k)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range classes {
		c.autoGrant[k] = struct{}{}
	}
	return nil
}

// AutoGranted reports whether k itself was passed to AutoGrant.
func (c *Configuration) AutoGranted(k *class.Class) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.autoGrant[k]
	return ok
}

// eligible reports whether k or one of its ancestors was auto-granted.
func (c *Configuration) eligible(k *class.Class) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for ; k != nil; k = k.Parent() {
		if _, ok := c.autoGrant[k]; ok {
			return true
		}
	}
	return false
}
