package class

import (
	"fmt"
	"reflect"
)

// Object binds a receiver to a class for instance-scoped dispatch.
type Object struct {
	class *Class
	recv  any
}

// Bind returns an object of class c with the given receiver.
func (c *Class) Bind(recv any) *Object {
	return &Object{class: c, recv: recv}
}

// Class returns the object's class.
func (o *Object) Class() *Class {
	return o.class
}

// Receiver returns the bound receiver.
func (o *Object) Receiver() any {
	return o.recv
}

// RespondsTo reports whether the object's class resolves an instance method name.
func (o *Object) RespondsTo(name string) bool {
	_, ok := o.class.Lookup(Instance, name)
	return ok
}

// Call invokes the instance method name with the receiver prepended.
//
// The returned error only reports dispatch failures; whatever the method
// itself returns, error values included, is in the result slice. Panics
// raised by the method propagate to the caller.
func (o *Object) Call(name string, args ...any) ([]any, error) {
	m, ok := o.class.Lookup(Instance, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s#%s", ErrNoMethod, o.class.name, name)
	}
	in, err := arguments(m.Func.Type(), append([]any{o.recv}, args...))
	if err != nil {
		return nil, fmt.Errorf("call %s#%s: %w", o.class.name, name, err)
	}
	return results(m.Func.Call(in)), nil
}

// Call invokes the type method name.
func (c *Class) Call(name string, args ...any) ([]any, error) {
	m, ok := c.Lookup(Type, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoMethod, c.name, name)
	}
	in, err := arguments(m.Func.Type(), args)
	if err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", c.name, name, err)
	}
	return results(m.Func.Call(in)), nil
}

// Func returns the live implementation of name as a typed func. For
// Instance scope F takes the receiver first.
//
// The func is resolved once; a later redefinition is not observed by the
// returned value.
func Func[F any](c *Class, scope Scope, name string) (F, error) {
	var zero F
	m, ok := c.Lookup(scope, name)
	if !ok {
		return zero, fmt.Errorf("%w: %s %s.%s", ErrNoMethod, scope, c.name, name)
	}
	fn, ok := m.Func.Interface().(F)
	if !ok {
		return zero, fmt.Errorf("%w: %s.%s has type %s, not %T", ErrArgument, c.name, name, m.Func.Type(), zero)
	}
	return fn, nil
}

func arguments(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: want at least %d arguments, got %d", ErrArgument, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrArgument, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			pt = ft.In(n - 1).Elem()
		} else {
			pt = ft.In(i)
		}
		v, err := argument(pt, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

func argument(pt reflect.Type, arg any) (reflect.Value, error) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
			reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a %s", ErrArgument, pt)
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrArgument, v.Type(), pt)
	}
	return v, nil
}

func results(out []reflect.Value) []any {
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return vals
}
