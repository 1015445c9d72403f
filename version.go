// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package djup

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version of djup.
func Version() string {
	return strings.TrimSpace(version)
}
