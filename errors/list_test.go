// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/djup-io/djup/errors"
)

func TestEmptyErrorListReturnsNilOnAsError(t *testing.T) {
	t.Parallel()

	errs := errors.L()
	if err := errs.AsError(); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if errs.Error() != "" {
		t.Fatal("empty list must have empty string representation")
	}
}

func TestErrorListIgnoresNilErrors(t *testing.T) {
	t.Parallel()

	errs := errors.L(nil, nil)
	errs.Append(nil)

	if err := errs.AsError(); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}

func TestErrorListElidesAllButFirst(t *testing.T) {
	t.Parallel()

	first := stderrors.New("destroying dev failed")
	second := stderrors.New("destroying staging failed")

	errs := errors.L(first, second)

	want := fmt.Sprintf("%s (and 1 elided errors)", first)
	if got := errs.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestErrorListIs(t *testing.T) {
	t.Parallel()

	kind := errors.Kind("destroy error")
	errs := errors.L(
		stderrors.New("unrelated"),
		errors.E(kind, "destroying production"),
	)

	errors.Assert(t, errs.AsError(), errors.E(kind))
	errors.AssertIsKind(t, errs.AsError(), kind)
}

func TestErrorListErrorsReturnsTypedErrors(t *testing.T) {
	t.Parallel()

	kind := errors.Kind("some error")
	errs := errors.L(
		errors.E(kind, "one"),
		stderrors.New("untyped"),
		errors.E(kind, "two"),
	)

	typed := errs.Errors()
	if len(typed) != 2 {
		t.Fatalf("got %d typed errors, want 2", len(typed))
	}
}
