// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package errors provides the error types used throughout djup.
// Errors carry a Kind so callers can branch on the class of failure
// without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the error type used by all djup packages.
type Error struct {
	// Kind is the kind of error.
	Kind Kind

	// Description of the error.
	Description string

	// Err is the underlying error, if any.
	Err error
}

// Kind defines the kind of an error.
type Kind string

// Separator joins the components of the error string representation.
const Separator = ": "

// ErrInternal indicates that an unrecoverable internal error happened.
// Used for invariants that must never be violated.
const ErrInternal Kind = "terminating due to internal error"

// E builds an error value from its arguments.
// There must be at least one argument or E panics.
// The type of each argument determines its meaning.
//
// The types are:
//
//	errors.Kind
//		The kind of error (eg.: ErrInit, ErrNotFound, etc).
//	error
//		The underlying error that triggered this one.
//	string
//		Treated as a format string; all remaining arguments are its
//		format values.
//
// If Kind is not specified, it is promoted from the underlying error
// (when the underlying error is an *Error).
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("errors.E called with no args")
	}

	e := &Error{}
	for i, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case *Error:
			errcopy := *arg
			e.Err = &errcopy
		case error:
			e.Err = arg
		case string:
			e.Description = fmt.Sprintf(arg, args[i+1:]...)
		default:
			panic(fmt.Errorf("errors.E called with unknown type %T", arg))
		}
		if e.Description != "" {
			break
		}
	}

	if e.Kind == "" && e.Description == "" && e.Err == nil {
		panic(errors.New("errors.E called with empty error"))
	}

	if prev, ok := e.Err.(*Error); ok {
		if e.Kind == "" {
			e.Kind = prev.Kind
			prev.Kind = ""
		}
		if prev.isEmpty() {
			e.Err = prev.Err
		}
	}
	return e
}

func (e *Error) isEmpty() bool {
	return e.Kind == "" && e.Description == "" && e.Err == nil
}

// Is tells if target matches this error.
// Any non-zero field of target must match the corresponding field of e.
// It is implicitly used by errors.Is when the target is an *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && e.Kind != t.Kind {
		return false
	}
	if t.Description != "" && e.Description != t.Description {
		return false
	}
	return true
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error returns the string representation of the error.
// Empty fields are elided.
func (e *Error) Error() string {
	var parts []string
	if e.Kind != "" {
		parts = append(parts, string(e.Kind))
	}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, Separator)
}

// IsKind tells if err (or any error wrapped by it) is of kind k.
func IsKind(err error, k Kind) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == k {
			return true
		}
		return IsKind(e.Err, k)
	}
	return false
}

// Is is just a convenience alias to Go's stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is just a convenience alias to Go's stdlib errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
