package sink

import (
	"fmt"
	"reflect"
	"strings"
)

// Sink receives trace lines at one of six severities.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging is best-effort; methods must not panic or exit.
type Sink interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Unknown(msg string)
}

// Level is a sink severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelUnknown
)

// Levels lists every severity in ascending order.
var Levels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelUnknown}

// ParseLevel parses a level name. The empty string means debug.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "unknown", "any":
		return LevelUnknown, nil
	default:
		return LevelDebug, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Emit sends msg to s at the given level.
func Emit(s Sink, level Level, msg string) {
	switch level {
	case LevelDebug:
		s.Debug(msg)
	case LevelInfo:
		s.Info(msg)
	case LevelWarn:
		s.Warn(msg)
	case LevelError:
		s.Error(msg)
	case LevelFatal:
		s.Fatal(msg)
	default:
		s.Unknown(msg)
	}
}

// Compatible reports whether candidate implements all six severities and
// returns it as a Sink. nil and nil pointers are rejected.
func Compatible(candidate any) (Sink, bool) {
	if candidate == nil {
		return nil, false
	}
	if v := reflect.ValueOf(candidate); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	s, ok := candidate.(Sink)
	return s, ok
}

// Func adapts a single function into a Sink.
type Func func(level Level, msg string)

func (f Func) Debug(msg string)   { f(LevelDebug, msg) }
func (f Func) Info(msg string)    { f(LevelInfo, msg) }
func (f Func) Warn(msg string)    { f(LevelWarn, msg) }
func (f Func) Error(msg string)   { f(LevelError, msg) }
func (f Func) Fatal(msg string)   { f(LevelFatal, msg) }
func (f Func) Unknown(msg string) { f(LevelUnknown, msg) }

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Debug(string)   {}
func (discard) Info(string)    {}
func (discard) Warn(string)    {}
func (discard) Error(string)   {}
func (discard) Fatal(string)   {}
func (discard) Unknown(string) {}

type tee []Sink

// Tee returns a Sink that forwards every message to each of sinks in order.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t tee) emit(level Level, msg string) {
	for _, s := range t {
		Emit(s, level, msg)
	}
}

func (t tee) Debug(msg string)   { t.emit(LevelDebug, msg) }
func (t tee) Info(msg string)    { t.emit(LevelInfo, msg) }
func (t tee) Warn(msg string)    { t.emit(LevelWarn, msg) }
func (t tee) Error(msg string)   { t.emit(LevelError, msg) }
func (t tee) Fatal(msg string)   { t.emit(LevelFatal, msg) }
func (t tee) Unknown(msg string) { t.emit(LevelUnknown, msg) }
