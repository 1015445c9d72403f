// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package version provides the version command.
package version

import (
	"context"

	"github.com/djup-io/djup/printer"
)

// Spec represents the version command specification.
type Spec struct {
	Version  string
	Printers printer.Printers
}

// Name returns the name of the version command.
func (s *Spec) Name() string { return "version" }

// Exec executes the version command.
func (s *Spec) Exec(ctx context.Context) error {
	s.Printers.Stdout.Println(s.Version)
	return nil
}
