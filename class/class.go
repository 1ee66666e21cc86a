package class

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// revisions is shared by every class so a revision identifies one definition.
var revisions atomic.Uint64

// Method is one entry of a method table, as of a particular definition.
type Method struct {
	Owner *Class
	Scope Scope
	Name  string
	Func  reflect.Value
	Rev   uint64
}

// Observer is notified of every definition on the class it observes.
//
// Observers run synchronously on the defining goroutine, after the class
// lock has been released, so they may call back into the class.
type Observer func(m Method)

// Option configures a Class.
type Option func(*Class)

// Extends makes the new class a subclass of parent.
func Extends(parent *Class) Option {
	return func(c *Class) {
		c.parent = parent
	}
}

// Class is a named method table with optional single inheritance.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Ownership: the func values passed to Define are retained, never copied.
type Class struct {
	name   string
	parent *Class

	mu        sync.RWMutex
	tables    map[Scope]map[string]Method
	observers []Observer
}

// New creates an empty class.
func New(name string, opts ...Option) *Class {
	c := &Class{
		name: name,
		tables: map[Scope]map[string]Method{
			Instance: make(map[string]Method),
			Type:     make(map[string]Method),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return c.name
}

// Parent returns the direct superclass, or nil.
func (c *Class) Parent() *Class {
	return c.parent
}

// Ancestors returns the superclass chain, nearest first.
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for p := c.parent; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	return chain
}

// IsA reports whether c is other or one of its descendants.
func (c *Class) IsA(other *Class) bool {
	for k := c; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}

// Define adds or replaces a method and notifies observers.
func (c *Class) Define(scope Scope, name string, fn any) (Method, error) {
	v, err := methodValue(scope, name, fn)
	if err != nil {
		return Method{}, fmt.Errorf("define %s %s.%s: %w", scope, c.name, name, err)
	}
	m, notify, err := c.store(scope, name, v, nil)
	if err != nil {
		return Method{}, err
	}
	notify()
	return m, nil
}

// DefineInstance is shorthand for Define(Instance, name, fn).
func (c *Class) DefineInstance(name string, fn any) (Method, error) {
	return c.Define(Instance, name, fn)
}

// DefineType is shorthand for Define(Type, name, fn).
func (c *Class) DefineType(name string, fn any) (Method, error) {
	return c.Define(Type, name, fn)
}

// Replace redefines an existing own method only if its current revision is
// expect. It returns ErrStale otherwise. Observers are notified as for Define.
func (c *Class) Replace(scope Scope, name string, expect uint64, fn any) (Method, error) {
	m, notify, err := c.Swap(scope, name, expect, fn)
	if err != nil {
		return Method{}, err
	}
	notify()
	return m, nil
}

// Swap is Replace without the notification: the new method is live when
// Swap returns, and the returned func delivers the definition event to the
// observers registered at the time of the swap. Callers holding a lock that
// an observer may need should release it before calling notify.
func (c *Class) Swap(scope Scope, name string, expect uint64, fn any) (Method, func(), error) {
	v, err := methodValue(scope, name, fn)
	if err != nil {
		return Method{}, nil, fmt.Errorf("replace %s %s.%s: %w", scope, c.name, name, err)
	}
	return c.store(scope, name, v, &expect)
}

func (c *Class) store(scope Scope, name string, v reflect.Value, expect *uint64) (Method, func(), error) {
	c.mu.Lock()
	table := c.tables[scope]
	if expect != nil {
		if cur, ok := table[name]; !ok || cur.Rev != *expect {
			c.mu.Unlock()
			return Method{}, nil, fmt.Errorf("replace %s %s.%s: %w", scope, c.name, name, ErrStale)
		}
	}
	m := Method{
		Owner: c,
		Scope: scope,
		Name:  name,
		Func:  v,
		Rev:   revisions.Add(1),
	}
	table[name] = m
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	notify := func() {
		for _, observe := range observers {
			observe(m)
		}
	}
	return m, notify, nil
}

// Observe registers fn for every subsequent definition on c. Definitions on
// subclasses are not reported.
func (c *Class) Observe(fn Observer) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Own returns the method defined directly on c.
func (c *Class) Own(scope Scope, name string) (Method, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.tables[scope][name]
	return m, ok
}

// Lookup resolves name on c, then on its ancestors.
func (c *Class) Lookup(scope Scope, name string) (Method, bool) {
	for k := c; k != nil; k = k.parent {
		if m, ok := k.Own(scope, name); ok {
			return m, true
		}
	}
	return Method{}, false
}

// Names returns the sorted names of c's own methods in scope.
func (c *Class) Names(scope Scope) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tables[scope]))
	for name := range c.tables[scope] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func methodValue(scope Scope, name string, fn any) (reflect.Value, error) {
	if !scope.Valid() {
		return reflect.Value{}, ErrInvalidScope
	}
	if strings.TrimSpace(name) == "" {
		return reflect.Value{}, ErrInvalidName
	}

	v, ok := fn.(reflect.Value)
	if !ok {
		v = reflect.ValueOf(fn)
	}
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, ErrNotFunc
	}
	if scope == Instance && v.Type().NumIn() == 0 {
		return reflect.Value{}, ErrNoReceiver
	}
	return v, nil
}
