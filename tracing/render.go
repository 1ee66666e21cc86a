package tracing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Renderer turns an argument or result into its diagnostic text.
type Renderer interface {
	Render(v any) string
}

// RendererFunc adapts a function into a Renderer.
type RendererFunc func(v any) string

// Render implements Renderer.
func (f RendererFunc) Render(v any) string {
	return f(v)
}

// GoSyntax renders values with %#v, so strings are quoted and composite
// values show their literal form. nil renders as "nil".
var GoSyntax Renderer = RendererFunc(func(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%#v", v)
})

var spewConfig = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Spew renders values with go-spew, annotating every value with its type and
// following pointers.
var Spew Renderer = RendererFunc(func(v any) string {
	if v == nil {
		return "nil"
	}
	return spewConfig.Sprintf("%#v", v)
})

// renderArgs renders the positional arguments as "[a, b]". A variadic tail
// is flattened, so f("x", "y") shows ["x", "y"] rather than a nested slice.
func renderArgs(r Renderer, args []reflect.Value, variadic bool) string {
	vals := make([]any, 0, len(args))
	for i, arg := range args {
		if variadic && i == len(args)-1 && arg.Kind() == reflect.Slice {
			for j := 0; j < arg.Len(); j++ {
				vals = append(vals, value(arg.Index(j)))
			}
			continue
		}
		vals = append(vals, value(arg))
	}
	return renderList(r, vals)
}

// renderResults shows nil for no results, the value for one, a list otherwise.
func renderResults(r Renderer, results []reflect.Value) string {
	switch len(results) {
	case 0:
		return "nil"
	case 1:
		return r.Render(value(results[0]))
	}
	vals := make([]any, len(results))
	for i, res := range results {
		vals[i] = value(res)
	}
	return renderList(r, vals)
}

func renderList(r Renderer, vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = r.Render(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func value(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return nil
	}
	return v.Interface()
}

// ParseRenderer returns the renderer named "go" or "spew". The empty string
// means "go".
func ParseRenderer(name string) (Renderer, error) {
	switch name {
	case "go", "":
		return GoSyntax, nil
	case "spew":
		return Spew, nil
	default:
		return nil, fmt.Errorf("tracing: unknown renderer %q (use go or spew)", name)
	}
}
