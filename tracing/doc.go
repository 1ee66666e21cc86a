// Package tracing logs calls to selected methods of a class without touching
// the method bodies.
//
// A class opts in explicitly with Include, or lazily: classes handed to
// Configuration.AutoGrant, and all of their subclasses, gain the capability
// the first time a tracing call is made on them. Each class keeps its own
// registry of traced names per scope; subclasses never share a parent's.
//
//	calc := class.New("Calc")
//	_ = tracing.Include(calc)
//	_ = tracing.Enable(calc, tracing.Methods{Type: []string{"add"}})
//	_, _ = calc.DefineType("add", func(a, b int) int { return a + b })
//	_, _ = calc.Call("add", 1, 2)
//
// Names may be registered before the method exists. The class's definition
// events install the wrapper as soon as a matching method is (re)defined.
//
// Every traced call emits exactly one line at info level on the configured
// sink, whether the method returns, returns a non-nil error, or panics:
//
//	/src/app/main.go:42:in `main'
//		( Invoking: Calc#add with [1, 2] ==> Returning: 3 )
//
// Errors and panics reach the caller unchanged.
package tracing
