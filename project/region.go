// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package project

import "sort"

// Region is a Civo region paired with the Upstash region used for the
// environment's Redis database.
type Region struct {
	Code          string
	Name          string
	UpstashRegion string
}

var regions = map[string]Region{
	"NYC1": {Code: "NYC1", Name: "New York", UpstashRegion: "us-east-1"},
	"LON1": {Code: "LON1", Name: "London", UpstashRegion: "eu-west-1"},
	"FRA1": {Code: "FRA1", Name: "Frankfurt", UpstashRegion: "eu-central-1"},
	"PHX1": {Code: "PHX1", Name: "Phoenix", UpstashRegion: "us-west-1"},
}

// RegionByCode returns the region with the given code.
func RegionByCode(code string) (Region, bool) {
	r, ok := regions[code]
	return r, ok
}

// RegionCodes returns all region codes, sorted.
func RegionCodes() []string {
	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
