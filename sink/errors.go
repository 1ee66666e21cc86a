package sink

import "errors"

var (
	// ErrInvalidLevel indicates an unknown level name.
	ErrInvalidLevel = errors.New("sink: invalid level")

	// ErrInvalidTarget indicates a console target other than stdout or stderr.
	ErrInvalidTarget = errors.New("sink: invalid console target")

	// ErrUnknownSink indicates a sink kind with no registered factory.
	ErrUnknownSink = errors.New("sink: unknown sink kind")
)
