// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package exit provides standard exit codes for djup.
package exit

// Status represents the exit status of a command.
type Status int

// Standard exit codes of djup.
const (
	OK Status = iota
	Failed
)
