// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package djup provides functionality for scaffolding and deploying Django
// applications on a fixed cloud stack: Civo Kubernetes for compute, Upstash
// Redis for caching and queues, and GitHub Actions for continuous
// deployment.
//
// The actual functionality lives in the subpackages: config (the on-disk
// project store), project (the data model), generate (configuration file
// rendering), run (external tool execution) and engine (lifecycle
// orchestration). The djup binary lives in cmd/djup.
package djup
