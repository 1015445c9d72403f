// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package config implements the on-disk store of project and environment
// records. The store is rooted at an explicit directory resolved once at
// process start; there is no implicit discovery by walking parents.
//
// Layout:
//
//	<root>/projects/<project>/config.yaml
//	<root>/projects/<project>/<environment>/{main.tf,variables.tf,...}
//
// The directory tree is the source of truth for which environments exist.
// An environment directory is recognized only when it contains main.tf;
// the YAML record holds supplementary metadata.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/project"
)

const (
	// ErrNotFound indicates a project or environment unknown to the store.
	ErrNotFound errors.Kind = "not found"

	// ErrIO indicates a failure reading or writing the store.
	ErrIO errors.Kind = "config store I/O error"
)

// MarkerFile is the file whose presence marks a directory as a configured
// environment.
const MarkerFile = "main.tf"

// StateFile is the external provisioning tool's state file. Its presence is
// the sole signal that an environment is deployed.
const StateFile = "terraform.tfstate"

const (
	projectsDir    = "projects"
	recordFilename = "config.yaml"
)

// Store gives access to the persisted projects and environments below its
// root directory.
type Store struct {
	root string
}

// NewStore creates a store rooted at root. The root is used as-is; callers
// resolve it (flags, env) before constructing the store.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the root directory of the store.
func (s *Store) Root() string { return s.root }

// Ensure idempotently creates the root configuration directories.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(filepath.Join(s.root, projectsDir), 0755); err != nil {
		return errors.E(ErrIO, err, "creating config root %s", s.root)
	}
	return nil
}

// ProjectDir returns the directory of the given project.
func (s *Store) ProjectDir(name string) string {
	return filepath.Join(s.root, projectsDir, name)
}

// EnvironmentDir returns the directory of the given environment.
func (s *Store) EnvironmentDir(proj, env string) string {
	return filepath.Join(s.ProjectDir(proj), env)
}

// Projects enumerates the known project names, sorted.
func (s *Store) Projects() []string {
	entries, err := os.ReadDir(filepath.Join(s.root, projectsDir))
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name()[0] != '.' {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// HasProject tells if the project exists in the store.
func (s *Store) HasProject(name string) bool {
	st, err := os.Stat(s.ProjectDir(name))
	return err == nil && st.IsDir()
}

// Environments enumerates the configured environment names of a project,
// sorted. A directory is an environment only if it contains the marker
// file; stray directories are not reported.
func (s *Store) Environments(proj string) []string {
	entries, err := os.ReadDir(s.ProjectDir(proj))
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		marker := filepath.Join(s.ProjectDir(proj), entry.Name(), MarkerFile)
		if _, err := os.Stat(marker); err == nil {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// HasEnvironment tells if the environment is configured for the project.
func (s *Store) HasEnvironment(proj, env string) bool {
	_, err := os.Stat(filepath.Join(s.EnvironmentDir(proj, env), MarkerFile))
	return err == nil
}

// IsDeployed tells if the environment has a state file. Deployment status
// is always derived from state file presence, never cached.
func (s *Store) IsDeployed(proj, env string) bool {
	_, err := os.Stat(filepath.Join(s.EnvironmentDir(proj, env), StateFile))
	return err == nil
}

// LoadProject reads the project record. A missing record is not an error:
// the zero record (with the name set) is returned, so callers can treat
// directories without YAML entries as valid, degraded projects.
func (s *Store) LoadProject(name string) (project.Project, error) {
	rec := project.Project{Name: name}

	data, err := os.ReadFile(filepath.Join(s.ProjectDir(name), recordFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return rec, nil
		}
		return rec, errors.E(ErrIO, err, "reading record of project %s", name)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, errors.E(ErrIO, err, "decoding record of project %s", name)
	}
	if rec.Name == "" {
		rec.Name = name
	}
	return rec, nil
}

// SaveProject serializes and writes the project record, creating parent
// directories as needed. The write is a full overwrite, not a merge;
// callers must load-modify-save.
func (s *Store) SaveProject(name string, rec project.Project) error {
	logger := log.With().
		Str("action", "config.SaveProject()").
		Str("project", name).
		Logger()

	if err := os.MkdirAll(s.ProjectDir(name), 0755); err != nil {
		return errors.E(ErrIO, err, "creating directory of project %s", name)
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return errors.E(ErrIO, err, "encoding record of project %s", name)
	}
	path := filepath.Join(s.ProjectDir(name), recordFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.E(ErrIO, err, "writing %s", path)
	}
	logger.Debug().Str("path", path).Msg("project record saved")
	return nil
}
