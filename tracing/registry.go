package tracing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonwraymond/peekaboo/class"
)

// Methods names methods to trace, per scope.
type Methods struct {
	Instance []string
	Type     []string
}

// signature identifies one wrappable method of a traced class.
type signature struct {
	scope class.Scope
	name  string
}

func (s signature) String() string {
	return s.scope.String() + " " + s.name
}

// wrapState remembers the body a wrapper replaced and the wrapper's revision.
type wrapState struct {
	original class.Method
	rev      uint64
}

// tracedType is the registry of one traceable class.
//
// mu covers the registry and every method swap it makes. Definition events
// for those swaps are delivered after mu is released, so observers may call
// back into this package.
type tracedType struct {
	class *class.Class

	mu      sync.Mutex
	names   map[class.Scope]map[string]struct{}
	wrapped map[signature]wrapState
}

func newTracedType(c *class.Class) *tracedType {
	return &tracedType{
		class: c,
		names: map[class.Scope]map[string]struct{}{
			class.Instance: make(map[string]struct{}),
			class.Type:     make(map[string]struct{}),
		},
		wrapped: make(map[signature]wrapState),
	}
}

// Enable registers names for tracing on c and wraps those already defined
// on c itself. Names that are not defined yet are wrapped when they are.
//
// Registering a traced name again is a no-op under DuplicateIgnore and
// fails with ErrAlreadyTraced under DuplicateError. Other names in the same
// call are still registered; the errors are joined.
func Enable(c *class.Class, m Methods) error {
	tt, err := capability(c)
	if err != nil {
		return err
	}
	policy := Config().DuplicatePolicy()

	var (
		errs    []error
		pending events
	)
	tt.mu.Lock()
	for _, sig := range m.signatures() {
		notify, err := tt.registerLocked(sig, policy)
		pending.add(notify)
		if err != nil {
			errs = append(errs, err)
		}
	}
	tt.mu.Unlock()

	pending.deliver()
	return errors.Join(errs...)
}

// EnableInstance is shorthand for Enable(c, Methods{Instance: names}).
func EnableInstance(c *class.Class, names ...string) error {
	return Enable(c, Methods{Instance: names})
}

// EnableType is shorthand for Enable(c, Methods{Type: names}).
func EnableType(c *class.Class, names ...string) error {
	return Enable(c, Methods{Type: names})
}

// Disable removes names from c's registry and restores the original body of
// any that are wrapped. Names that are not registered are ignored.
func Disable(c *class.Class, m Methods) error {
	tt, err := capability(c)
	if err != nil {
		return err
	}

	var (
		errs    []error
		pending events
	)
	tt.mu.Lock()
	for _, sig := range m.signatures() {
		notify, err := tt.deregisterLocked(sig)
		pending.add(notify)
		if err != nil {
			errs = append(errs, err)
		}
	}
	tt.mu.Unlock()

	pending.deliver()
	return errors.Join(errs...)
}

func (m Methods) signatures() []signature {
	sigs := make([]signature, 0, len(m.Instance)+len(m.Type))
	for _, name := range m.Instance {
		sigs = append(sigs, signature{class.Instance, name})
	}
	for _, name := range m.Type {
		sigs = append(sigs, signature{class.Type, name})
	}
	return sigs
}

func (tt *tracedType) registerLocked(sig signature, policy DuplicatePolicy) (func(), error) {
	if strings.TrimSpace(sig.name) == "" {
		return nil, fmt.Errorf("tracing %s: %w", tt.class.Name(), class.ErrInvalidName)
	}

	set := tt.names[sig.scope]
	if _, ok := set[sig.name]; ok {
		if policy == DuplicateError {
			return nil, fmt.Errorf("%w `%s' on %s", ErrAlreadyTraced, sig.name, tt.class.Name())
		}
		return nil, nil
	}
	set[sig.name] = struct{}{}
	return tt.wrapLocked(sig)
}

func (tt *tracedType) deregisterLocked(sig signature) (func(), error) {
	set := tt.names[sig.scope]
	if _, ok := set[sig.name]; !ok {
		return nil, nil
	}
	delete(set, sig.name)

	if _, wrapped := tt.wrapped[sig]; !wrapped {
		return nil, nil
	}
	notify, err := tt.unwrapLocked(sig)
	if errors.Is(err, ErrNotWrapped) {
		return nil, nil
	}
	return notify, err
}

// events collects definition events to deliver once mu is released.
type events []func()

func (e *events) add(notify func()) {
	if notify != nil {
		*e = append(*e, notify)
	}
}

func (e events) deliver() {
	for _, notify := range e {
		notify()
	}
}

func (tt *tracedType) registeredLocked(sig signature) bool {
	_, ok := tt.names[sig.scope][sig.name]
	return ok
}

// TracedMethods is a read-only snapshot of a class's registry.
type TracedMethods struct {
	instance []string
	typ      []string
}

// Traced returns the names registered for tracing on c.
func Traced(c *class.Class) (TracedMethods, error) {
	tt, err := capability(c)
	if err != nil {
		return TracedMethods{}, err
	}

	tt.mu.Lock()
	defer tt.mu.Unlock()
	return TracedMethods{
		instance: sortedNames(tt.names[class.Instance]),
		typ:      sortedNames(tt.names[class.Type]),
	}, nil
}

// Instance returns the traced instance method names, sorted.
func (t TracedMethods) Instance() []string {
	return append([]string(nil), t.instance...)
}

// Type returns the traced type method names, sorted.
func (t TracedMethods) Type() []string {
	return append([]string(nil), t.typ...)
}

// Has reports whether name is traced in scope.
func (t TracedMethods) Has(scope class.Scope, name string) bool {
	var names []string
	switch scope {
	case class.Instance:
		names = t.instance
	case class.Type:
		names = t.typ
	}
	i := sort.SearchStrings(names, name)
	return i < len(names) && names[i] == name
}

// Len returns the number of traced names across both scopes.
func (t TracedMethods) Len() int {
	return len(t.instance) + len(t.typ)
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
