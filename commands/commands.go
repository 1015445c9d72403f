// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package commands defines the interface implemented by all djup commands.
package commands

import "context"

// Executor is the interface for command execution.
type Executor interface {
	// Name of the command.
	Name() string
	// Exec executes the command.
	Exec(ctx context.Context) error
}
