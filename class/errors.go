package class

import "errors"

// Definition errors.
var (
	// ErrInvalidName indicates an empty method or class name.
	ErrInvalidName = errors.New("class: name is required")

	// ErrInvalidScope indicates a scope other than Instance or Type.
	ErrInvalidScope = errors.New("class: invalid scope")

	// ErrNotFunc indicates a method body that is not a non-nil func.
	ErrNotFunc = errors.New("class: method body must be a non-nil func")

	// ErrNoReceiver indicates an instance method without a receiver parameter.
	ErrNoReceiver = errors.New("class: instance method must take the receiver as its first parameter")

	// ErrStale indicates a Replace whose expected revision no longer matches.
	ErrStale = errors.New("class: method was redefined concurrently")
)

// Dispatch errors.
var (
	// ErrNoMethod indicates the method is not defined on the class or its ancestors.
	ErrNoMethod = errors.New("class: no such method")

	// ErrArgument indicates arguments that do not fit the method signature.
	ErrArgument = errors.New("class: argument mismatch")
)
