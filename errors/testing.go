// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package errors

import "testing"

// AssertIsKind asserts err is of kind k.
func AssertIsKind(t *testing.T, err error, k Kind) {
	t.Helper()
	if !IsKind(err, k) {
		t.Fatalf("error[%v] is not of kind %q", err, k)
	}
}

// Assert asserts err is (contains, wraps, etc) target.
func Assert(t *testing.T, err, target error, args ...interface{}) {
	t.Helper()
	if !Is(err, target) {
		t.Fatalf("error[%v] is not target[%v]", err, target)
	}
}

// AssertIsErrs asserts that all target errors are contained by err.
func AssertIsErrs(t *testing.T, err error, targets []error) {
	t.Helper()
	for _, target := range targets {
		Assert(t, err, target)
	}
}
