// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package project defines the data model of djup projects and their
// environments. A project is a named Django application deployed to one or
// more environments, each mapped to a git branch and a size profile.
package project

import (
	"regexp"
	"sort"
)

// Project is the persisted record of a managed project.
//
// The on-disk directory tree is the source of truth for which environments
// exist; this record holds supplementary metadata. Readers must tolerate
// environments present on disk but absent here and vice versa.
type Project struct {
	Name          string                 `yaml:"name"`
	GithubRepo    string                 `yaml:"github_repo,omitempty"`
	Region        string                 `yaml:"region,omitempty"`
	UpstashRegion string                 `yaml:"upstash_region,omitempty"`
	Domains       map[string]string      `yaml:"domains,omitempty"`
	Environments  map[string]Environment `yaml:"environments,omitempty"`

	// Credentials is a legacy field from earlier schema versions where
	// cloud credentials were stored locally. Newer flows keep all
	// credentials in externally managed secrets and never write it.
	// Deprecated: kept only so old records round-trip.
	Credentials map[string]string `yaml:"credentials,omitempty"`
}

// Environment is the per-environment entry of a project record.
type Environment struct {
	Branch  string `yaml:"branch"`
	Profile string `yaml:"profile"`
}

// DefaultBranches maps the core environments to the branches that
// auto-deploy to them.
var DefaultBranches = map[string]string{
	"production": "main",
	"dev":        "develop",
}

// protected environments cannot be removed through the generic remove path.
var protected = map[string]bool{
	"dev":        true,
	"production": true,
}

var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidName tells if name is a valid project name: non-empty, lowercase
// alphanumeric with hyphens.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// IsProtected tells if the environment name is a core environment that must
// not be removed.
func IsProtected(env string) bool {
	return protected[env]
}

// EnvironmentNames returns the environment names of the record, sorted.
func (p Project) EnvironmentNames() []string {
	names := make([]string, 0, len(p.Environments))
	for name := range p.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Domain returns the configured domain of the given environment or the
// empty string when not configured.
func (p Project) Domain(env string) string {
	return p.Domains[env]
}

// SetEnvironment adds or overwrites the environment and domain entries of
// the record.
func (p *Project) SetEnvironment(name string, env Environment, domain string) {
	if p.Environments == nil {
		p.Environments = map[string]Environment{}
	}
	p.Environments[name] = env
	if domain != "" {
		if p.Domains == nil {
			p.Domains = map[string]string{}
		}
		p.Domains[name] = domain
	}
}

// DeleteEnvironment removes the environment and domain entries of the
// record. Missing entries are ignored.
func (p *Project) DeleteEnvironment(name string) {
	delete(p.Environments, name)
	delete(p.Domains, name)
}
