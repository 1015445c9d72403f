// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package engine

import "encoding/json"

// countStateResources parses a Terraform state file and returns the number
// of entries in its resources list, or -1 when the document does not parse
// or carries no such list. The state format is versioned and owned by
// Terraform, so only this one field is read.
func countStateResources(data []byte) int {
	var state struct {
		Resources []json.RawMessage `json:"resources"`
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return -1
	}
	if state.Resources == nil {
		return -1
	}
	return len(state.Resources)
}
