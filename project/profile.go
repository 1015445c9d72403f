// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package project

import "sort"

// SizeProfile is a fixed sizing tier determining node, storage, Redis and
// replica sizing of an environment. Profiles are immutable reference data.
type SizeProfile struct {
	// Name of the profile (small, medium or large).
	Name string
	// NodeSize is the Civo Kubernetes node size slug.
	NodeSize string
	// NodeCount is the number of cluster nodes.
	NodeCount int
	// MediaBucketGB and StaticBucketGB are object storage sizes.
	MediaBucketGB  int
	StaticBucketGB int
	// RedisMaxMemoryMB is the Upstash Redis memory ceiling.
	RedisMaxMemoryMB int
	// MinReplicas and MaxReplicas bound the application autoscaler.
	MinReplicas int
	MaxReplicas int
}

var profiles = map[string]SizeProfile{
	"small": {
		Name:             "small",
		NodeSize:         "g4s.kube.small",
		NodeCount:        2,
		MediaBucketGB:    50,
		StaticBucketGB:   20,
		RedisMaxMemoryMB: 256,
		MinReplicas:      1,
		MaxReplicas:      3,
	},
	"medium": {
		Name:             "medium",
		NodeSize:         "g4s.kube.medium",
		NodeCount:        3,
		MediaBucketGB:    100,
		StaticBucketGB:   30,
		RedisMaxMemoryMB: 512,
		MinReplicas:      2,
		MaxReplicas:      5,
	},
	"large": {
		Name:             "large",
		NodeSize:         "g4s.kube.large",
		NodeCount:        5,
		MediaBucketGB:    500,
		StaticBucketGB:   100,
		RedisMaxMemoryMB: 1024,
		MinReplicas:      3,
		MaxReplicas:      15,
	},
}

// ProfileByName returns the profile with the given name.
func ProfileByName(name string) (SizeProfile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames returns the names of all size profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
