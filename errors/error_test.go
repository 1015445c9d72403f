// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/djup-io/djup/errors"
)

const (
	syntaxError errors.Kind = "syntax error"
	tfError     errors.Kind = "terraform error"
)

func TestEmptyErrorPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("errors.E() did not panic with no args")
		}
	}()
	_ = errors.E()
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	type testcase struct {
		name string
		err  error
		want string
	}

	for _, tc := range []testcase{
		{
			name: "only kind",
			err:  errors.E(syntaxError),
			want: string(syntaxError),
		},
		{
			name: "kind and description",
			err:  errors.E(syntaxError, "unexpected '%s'", "}"),
			want: fmt.Sprintf("%s: unexpected '}'", syntaxError),
		},
		{
			name: "kind, description and underlying",
			err:  errors.E(tfError, stderrors.New("exit status 1"), "apply failed"),
			want: fmt.Sprintf("%s: apply failed: exit status 1", tfError),
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindPromotion(t *testing.T) {
	t.Parallel()

	inner := errors.E(tfError, "plan failed")
	outer := errors.E(inner, "deploying environment %s", "dev")

	errors.AssertIsKind(t, outer, tfError)
}

func TestIsKindChecksWrappedErrors(t *testing.T) {
	t.Parallel()

	err := errors.E(syntaxError, errors.E(tfError, "inner"))

	errors.AssertIsKind(t, err, syntaxError)
	errors.AssertIsKind(t, err, tfError)

	if errors.IsKind(err, errors.Kind("other")) {
		t.Fatal("unexpected kind match")
	}
	if errors.IsKind(nil, syntaxError) {
		t.Fatal("nil error must match no kind")
	}
}

func TestIsMatchesByKind(t *testing.T) {
	t.Parallel()

	err := errors.E(tfError, "destroy failed")
	errors.Assert(t, err, errors.E(tfError))

	if errors.Is(err, errors.E(syntaxError)) {
		t.Fatal("errors with different kinds must not match")
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	underlying := stderrors.New("file not found")
	err := errors.E(tfError, underlying)

	if !stderrors.Is(err, underlying) {
		t.Fatal("wrapped error not reachable via errors.Is")
	}
}
