package tracing

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/peekaboo/class"
)

// Configuration errors.
var (
	// ErrIncompatibleSink indicates a sink candidate lacking one of the six severities.
	ErrIncompatibleSink = errors.New("tracing: sink must implement Debug, Info, Warn, Error, Fatal and Unknown")

	// ErrInvalidTarget indicates an auto-grant target that is not a class.
	ErrInvalidTarget = errors.New("tracing: target must be a non-nil *class.Class")
)

// Registration errors.
var (
	// ErrCapabilityMissing indicates a tracing call on a class that was neither
	// included nor auto-granted. It also matches class.ErrNoMethod.
	ErrCapabilityMissing = fmt.Errorf("tracing: class is not traceable: %w", class.ErrNoMethod)

	// ErrAlreadyTraced indicates a duplicate registration under DuplicateError.
	ErrAlreadyTraced = errors.New("tracing: already tracing")
)

// Interceptor errors.
var (
	// ErrInvalidScope indicates a scope other than class.Instance or class.Type.
	ErrInvalidScope = fmt.Errorf("tracing: only instance and type methods can be traced: %w", class.ErrInvalidScope)

	// ErrNotWrapped indicates Unwrap on a signature with no live wrapper.
	ErrNotWrapped = errors.New("tracing: method is not wrapped")

	// ErrStillTraced indicates Unwrap on a registered name. Disable removes
	// the registration and the wrapper together.
	ErrStillTraced = errors.New("tracing: method is registered for tracing")
)
