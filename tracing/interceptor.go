package tracing

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/jonwraymond/peekaboo/class"
)

var errorType = reflect.TypeFor[error]()

// Wrap installs the tracing wrapper around c's own method name in scope.
// A method that is not defined yet is left alone; a method that is already
// wrapped is not wrapped again.
func Wrap(c *class.Class, scope class.Scope, name string) error {
	if !scope.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidScope, scope)
	}
	tt, err := capability(c)
	if err != nil {
		return err
	}

	tt.mu.Lock()
	notify, err := tt.wrapLocked(signature{scope, name})
	tt.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

// Unwrap restores the body that the wrapper of name replaced. It returns
// ErrNotWrapped when no wrapper is live for that signature, and
// ErrStillTraced when the name is registered: use Disable for those.
func Unwrap(c *class.Class, scope class.Scope, name string) error {
	if !scope.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidScope, scope)
	}
	tt, err := capability(c)
	if err != nil {
		return err
	}
	sig := signature{scope, name}

	tt.mu.Lock()
	if tt.registeredLocked(sig) {
		tt.mu.Unlock()
		return fmt.Errorf("%w: %s on %s", ErrStillTraced, sig, c.Name())
	}
	notify, err := tt.unwrapLocked(sig)
	tt.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

func (tt *tracedType) wrappedLocked(sig signature, live class.Method) bool {
	st, ok := tt.wrapped[sig]
	return ok && st.rev == live.Rev
}

// wrapLocked swaps the wrapper in and returns the swap's definition event,
// which the caller delivers after releasing mu. When the hook receives that
// event the live revision is the wrapper's, so it does nothing. A host
// definition that races the swap makes it stale, and the loop wraps the
// newer body instead.
func (tt *tracedType) wrapLocked(sig signature) (func(), error) {
	if !sig.scope.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScope, sig.scope)
	}

	for {
		live, ok := tt.class.Own(sig.scope, sig.name)
		if !ok || tt.wrappedLocked(sig, live) {
			return nil, nil
		}

		installed, notify, err := tt.class.Swap(sig.scope, sig.name, live.Rev, tt.wrapper(live))
		if errors.Is(err, class.ErrStale) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("tracing: wrap %s on %s: %w", sig, tt.class.Name(), err)
		}
		tt.wrapped[sig] = wrapState{original: live, rev: installed.Rev}
		return notify, nil
	}
}

func (tt *tracedType) unwrapLocked(sig signature) (func(), error) {
	if !sig.scope.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScope, sig.scope)
	}

	st, ok := tt.wrapped[sig]
	live, defined := tt.class.Own(sig.scope, sig.name)
	if !ok || !defined || live.Rev != st.rev {
		delete(tt.wrapped, sig)
		return nil, fmt.Errorf("%w: %s on %s", ErrNotWrapped, sig, tt.class.Name())
	}

	_, notify, err := tt.class.Swap(sig.scope, sig.name, st.rev, st.original.Func)
	delete(tt.wrapped, sig)

	if errors.Is(err, class.ErrStale) {
		return nil, fmt.Errorf("%w: %s on %s was redefined", ErrNotWrapped, sig, tt.class.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("tracing: unwrap %s on %s: %w", sig, tt.class.Name(), err)
	}
	return notify, nil
}

// wrapper builds a func of the original's exact type that traces each call.
func (tt *tracedType) wrapper(original class.Method) reflect.Value {
	fn := original.Func
	ft := fn.Type()
	variadic := ft.IsVariadic()
	label := tt.class.Name() + "#" + original.Name
	skipReceiver := original.Scope == class.Instance

	return reflect.MakeFunc(ft, func(args []reflect.Value) (results []reflect.Value) {
		site := callSite()

		cfg := Config()
		renderer := cfg.Renderer()
		shown := args
		if skipReceiver {
			shown = args[1:]
		}

		var line strings.Builder
		fmt.Fprintf(&line, "%s\n\t( Invoking: %s with %s ", site, label, renderArgs(renderer, shown, variadic))

		returned := false
		defer func() {
			if returned {
				cfg.Sink().Info(line.String())
				return
			}
			r := recover()
			line.WriteString("!!! Raising: " + strconv.Quote(panicMessage(r)) + " )")
			cfg.Sink().Info(line.String())
			if r != nil {
				panic(r)
			}
		}()

		if variadic {
			results = fn.CallSlice(args)
		} else {
			results = fn.Call(args)
		}
		line.WriteString(outcome(renderer, ft, results))
		returned = true
		return results
	})
}

// outcome formats a normal return. A non-nil trailing error is reported as
// raised; a nil trailing error is left out of the returned value.
func outcome(r Renderer, ft reflect.Type, results []reflect.Value) string {
	if n := len(results); n > 0 && ft.Out(n-1) == errorType {
		if err, _ := value(results[n-1]).(error); err != nil {
			return "!!! Raising: " + strconv.Quote(err.Error()) + " )"
		}
		results = results[:n-1]
	}
	return "==> Returning: " + renderResults(r, results) + " )"
}

// panicMessage extracts the message of a recovered value. nil means the
// goroutine is exiting through runtime.Goexit.
func panicMessage(r any) string {
	switch v := r.(type) {
	case nil:
		return "runtime.Goexit"
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
