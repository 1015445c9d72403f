// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package env provides the environment management commands.
package env

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/printer"
)

// ListSpec is the command specification for the env list command.
type ListSpec struct {
	Project string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *ListSpec) Name() string { return "env list" }

// Exec executes the env list command.
func (s *ListSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/env").
		Str("project", s.Project).
		Msgf("executing %s", s.Name())

	store := s.Engine.Store()
	if !store.HasProject(s.Project) {
		return errors.E(config.ErrNotFound, "project %s", s.Project)
	}
	rec, err := store.LoadProject(s.Project)
	if err != nil {
		return err
	}

	envs := store.Environments(s.Project)
	if len(envs) == 0 {
		s.Printers.Stdout.Println(fmt.Sprintf("project %s has no environments", s.Project))
		return nil
	}

	s.Printers.Stdout.Println(fmt.Sprintf("%-15s %-10s %-15s %-30s %s",
		"NAME", "PROFILE", "BRANCH", "DOMAIN", "STATUS"))
	for _, name := range envs {
		entry := rec.Environments[name]
		profile := entry.Profile
		if profile == "" {
			profile = "n/a"
		}
		branch := entry.Branch
		if branch == "" {
			branch = "n/a"
		}
		domain := rec.Domain(name)
		if domain == "" {
			domain = "n/a"
		}
		status := "not deployed"
		if s.Engine.Status(s.Project, name).Deployed {
			status = "deployed"
		}
		s.Printers.Stdout.Println(fmt.Sprintf("%-15s %-10s %-15s %-30s %s",
			name, profile, branch, domain, status))
	}
	return nil
}
