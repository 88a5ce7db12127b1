// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the typed error taxonomy raised by the core
// (shapefunc, eddy, wrap, tile, field) and by the store collaborator.
// Every kind here maps to a row in the error handling design: a
// validation or resource failure is always returned as one of these,
// never panicked across a package boundary.
package errs

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind identifies which row of the taxonomy an error belongs to.
type Kind int

const (
	InvalidProfile Kind = iota
	InvalidConfig
	EddyTooLarge
	InvalidQuery
	UnknownShape
	OutOfMemory
	Cancelled
	IoFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidProfile:
		return "InvalidProfile"
	case InvalidConfig:
		return "InvalidConfig"
	case EddyTooLarge:
		return "EddyTooLarge"
	case InvalidQuery:
		return "InvalidQuery"
	case UnknownShape:
		return "UnknownShape"
	case OutOfMemory:
		return "OutOfMemory"
	case Cancelled:
		return "Cancelled"
	case IoFailure:
		return "IoFailure"
	}
	return "Unknown"
}

// Error is the single exported error type for the taxonomy. Cause
// carries the human-readable sentence; Hint is optional and, when
// present, is the actionable remediation the CLI prints as a second
// line.
type Error struct {
	Kind  Kind
	Cause string
	Hint  string
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Kind, e.Cause, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

// Is allows errors.Is(err, errs.New(SomeKind, "")) to match purely on
// Kind, so callers can check "is this an OutOfMemory" without caring
// about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a taxonomy error, formatting Cause with chk.Err's
// printf-style convention (the same one gofem's ele packages use for
// returned errors).
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Cause: chk.Err(format, args...).Error()}
}

// WithHint attaches a remediation hint, returning the receiver for
// chaining at the call site: `return nil, errs.New(...).WithHint(...)`.
func (e *Error) WithHint(format string, args ...interface{}) *Error {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

// Sentinel values usable with errors.Is for kind-only matching.
var (
	ErrInvalidProfile = &Error{Kind: InvalidProfile}
	ErrInvalidConfig  = &Error{Kind: InvalidConfig}
	ErrEddyTooLarge   = &Error{Kind: EddyTooLarge}
	ErrInvalidQuery   = &Error{Kind: InvalidQuery}
	ErrUnknownShape   = &Error{Kind: UnknownShape}
	ErrOutOfMemory    = &Error{Kind: OutOfMemory}
	ErrCancelled      = &Error{Kind: Cancelled}
	ErrIoFailure      = &Error{Kind: IoFailure}
)
