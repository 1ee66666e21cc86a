package tracing

import (
	"fmt"
	"sync"

	"github.com/jonwraymond/peekaboo/class"
)

// capabilities maps every traceable class to its private registry.
// Capability is never revoked.
var capabilities = struct {
	sync.RWMutex
	types map[*class.Class]*tracedType
}{types: make(map[*class.Class]*tracedType)}

// Include makes c traceable: it gets an empty registry and a definition
// hook. Including an already traceable class is a no-op.
func Include(c *class.Class) error {
	if c == nil {
		return fmt.Errorf("%w: got nil", ErrInvalidTarget)
	}
	grant(c)
	return nil
}

// Capable reports whether c has gained tracing capability.
func Capable(c *class.Class) bool {
	capabilities.RLock()
	defer capabilities.RUnlock()
	_, ok := capabilities.types[c]
	return ok
}

func grant(c *class.Class) *tracedType {
	capabilities.Lock()
	defer capabilities.Unlock()

	if tt, ok := capabilities.types[c]; ok {
		return tt
	}
	tt := newTracedType(c)
	capabilities.types[c] = tt
	// The hook goes in before the class is visible as capable, so no
	// definition can slip between registration and observation.
	c.Observe(tt.onDefine)
	return tt
}

// capability returns c's registry, granting it on first use when c or an
// ancestor was auto-granted.
func capability(c *class.Class) (*tracedType, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: got nil", ErrInvalidTarget)
	}

	capabilities.RLock()
	tt, ok := capabilities.types[c]
	capabilities.RUnlock()
	if ok {
		return tt, nil
	}

	if Config().eligible(c) {
		return grant(c), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCapabilityMissing, c.Name())
}
