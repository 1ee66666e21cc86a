package tracing

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/jonwraymond/peekaboo/class"
	"github.com/jonwraymond/peekaboo/sink"
)

//go:generate mockgen -destination mock_sink_test.go -package $GOPACKAGE -write_package_comment=false github.com/jonwraymond/peekaboo/sink Sink

type widget struct {
	calls int
}

// newTestClass returns a fresh class with the usual fixture methods.
func newTestClass(t *testing.T, name string) *class.Class {
	t.Helper()
	c := class.New(name)
	defineAll(t, c, class.Instance, map[string]any{
		"method_no_tracing":    func(w *widget) { w.calls++ },
		"method_no_args":       func(w *widget) { w.calls++ },
		"method_one_arg":       func(w *widget, a string) { w.calls++ },
		"method_two_args":      func(w *widget, a, b string) { w.calls++ },
		"method_variable_args": func(w *widget, args ...string) { w.calls++ },
		"method_raises":        func(w *widget) error { return errors.New("something went wrong") },
		"method_panics":        func(w *widget) { panic("something went wrong") },
	})
	defineAll(t, c, class.Type, map[string]any{
		"add":    func(a, b int) int { return a + b },
		"kaboom": func() error { return errors.New("fire, fire") },
	})
	return c
}

func defineAll(t *testing.T, c *class.Class, scope class.Scope, methods map[string]any) {
	t.Helper()
	for name, fn := range methods {
		if _, err := c.Define(scope, name, fn); err != nil {
			t.Fatalf("define %s: %v", name, err)
		}
	}
}

// useRecorder routes trace lines to a fresh recorder for the duration of t.
func useRecorder(t *testing.T) *sink.Recorder {
	t.Helper()
	rec := sink.NewRecorder()
	useSink(t, rec)
	return rec
}

// useSink installs s and restores the previous configuration when t ends.
func useSink(t *testing.T, s sink.Sink) {
	t.Helper()
	cfg := Config()
	prevSink := cfg.Sink()
	prevRenderer := cfg.Renderer()
	prevPolicy := cfg.DuplicatePolicy()

	if err := cfg.SetSink(s); err != nil {
		t.Fatalf("set sink: %v", err)
	}
	t.Cleanup(func() {
		_ = cfg.SetSink(prevSink)
		cfg.SetRenderer(prevRenderer)
		cfg.SetDuplicatePolicy(prevPolicy)
	})
}

// body strips the call-site line from a trace line.
func body(line string) string {
	_, rest, ok := strings.Cut(line, "\n\t")
	if !ok {
		return line
	}
	return rest
}

// onlyLine asserts exactly one info line was recorded and returns its body.
func onlyLine(t *testing.T, rec *sink.Recorder) string {
	t.Helper()
	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 trace line, got %d: %v", len(entries), entries)
	}
	if entries[0].Level != sink.LevelInfo {
		t.Errorf("expected info level, got %v", entries[0].Level)
	}
	return body(entries[0].Message)
}

// traceMessage builds the full expected line for a call made offset lines
// below the caller.
func traceMessage(contents string, offset int) string {
	pc, file, line, _ := runtime.Caller(1)
	fn := shortFuncName(runtime.FuncForPC(pc).Name())
	return fmt.Sprintf("%s:%d:in `%s'\n\t( %s )", file, line+offset, fn, contents)
}

func mustCall(t *testing.T, obj *class.Object, name string, args ...any) []any {
	t.Helper()
	out, err := obj.Call(name, args...)
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return out
}
