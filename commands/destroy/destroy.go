// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package destroy provides the infrastructure teardown commands.
package destroy

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/commands"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/printer"
)

// ProductionToken must be typed to confirm destroying a production
// environment.
const ProductionToken = "destroy production"

// EnvSpec is the command specification for the destroy env command.
type EnvSpec struct {
	Project     string
	Environment string
	KeepConfig  bool
	AutoApprove bool

	Engine   *engine.Engine
	Printers printer.Printers
	Stdin    io.Reader
}

// Name returns the name of the command.
func (s *EnvSpec) Name() string { return "destroy env" }

// Exec executes the destroy env command. Protected environments require
// typing an exact confirmation token; --auto-approve bypasses all
// confirmation for non-interactive use.
func (s *EnvSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/destroy").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Bool("keepConfig", s.KeepConfig).
		Msgf("executing %s", s.Name())

	if !s.AutoApprove {
		ok, err := s.confirm()
		if err != nil {
			return err
		}
		if !ok {
			s.Printers.Stdout.Println("aborted")
			return nil
		}
	}

	_, err := s.Engine.DestroyEnvironment(ctx, s.Project, s.Environment, s.KeepConfig)
	return err
}

func (s *EnvSpec) confirm() (bool, error) {
	// destroying production demands the exact token, not a mere y/N
	if s.Engine.IsProtectedName(s.Environment) && s.Environment != "dev" {
		return commands.ConfirmToken(s.Stdin, s.Printers.Stdout,
			fmt.Sprintf("This tears down ALL production infrastructure of project %s.", s.Project),
			ProductionToken)
	}
	return commands.Confirm(s.Stdin, s.Printers.Stdout,
		fmt.Sprintf("Destroy the infrastructure of environment %s of project %s?",
			s.Environment, s.Project))
}

// ProjectSpec is the command specification for the destroy project
// command.
type ProjectSpec struct {
	Project     string
	KeepConfig  bool
	AutoApprove bool

	Engine   *engine.Engine
	Printers printer.Printers
	Stdin    io.Reader
}

// Name returns the name of the command.
func (s *ProjectSpec) Name() string { return "destroy project" }

// Exec executes the destroy project command. Confirmation requires typing
// the project name; --auto-approve bypasses it. Environments are destroyed
// independently and the per-environment outcome is reported at the end.
func (s *ProjectSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/destroy").
		Str("project", s.Project).
		Bool("keepConfig", s.KeepConfig).
		Msgf("executing %s", s.Name())

	if !s.AutoApprove {
		ok, err := commands.ConfirmToken(s.Stdin, s.Printers.Stdout,
			fmt.Sprintf("This tears down ALL infrastructure of project %s, every environment included.",
				s.Project),
			s.Project)
		if err != nil {
			return err
		}
		if !ok {
			s.Printers.Stdout.Println("aborted")
			return nil
		}
	}

	report, err := s.Engine.DestroyProject(ctx, s.Project, s.KeepConfig)
	for _, entry := range report.Entries {
		s.Printers.Stdout.Println(fmt.Sprintf("%-15s %s", entry.Environment, entry.Outcome))
	}
	if err != nil {
		return errors.E(err, "destroying project %s", s.Project)
	}
	s.Printers.Stdout.Successf("project %s destroyed", s.Project)
	s.Printers.Stdout.Printf("Project configuration still exists at: %s\n",
		s.Engine.Store().ProjectDir(s.Project))
	return nil
}
