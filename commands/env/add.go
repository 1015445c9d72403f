// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package env

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/printer"
)

// AddSpec is the command specification for the env add command.
type AddSpec struct {
	Project     string
	Environment string
	Profile     string
	Branch      string
	Domain      string
	Deploy      bool

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *AddSpec) Name() string { return "env add" }

// Exec executes the env add command.
func (s *AddSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/env").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Msgf("executing %s", s.Name())

	err := s.Engine.AddEnvironment(ctx, engine.AddEnvironmentSpec{
		Project: s.Project,
		Name:    s.Environment,
		Profile: s.Profile,
		Branch:  s.Branch,
		Domain:  s.Domain,
		Deploy:  s.Deploy,
	})
	if err != nil {
		return err
	}

	if !s.Deploy {
		s.Printers.Stdout.Successf("environment %s added to project %s", s.Environment, s.Project)
		s.Printers.Stdout.Printf("Deploy it with: djup deploy infra --project %s --env %s\n",
			s.Project, s.Environment)
	}
	return nil
}
