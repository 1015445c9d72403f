// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package env

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/commands"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/printer"
)

// RemoveSpec is the command specification for the env remove command.
type RemoveSpec struct {
	Project     string
	Environment string
	Force       bool

	Engine   *engine.Engine
	Printers printer.Printers
	Stdin    io.Reader
}

// Name returns the name of the command.
func (s *RemoveSpec) Name() string { return "env remove" }

// Exec executes the env remove command. Removing only deletes the local
// configuration; deployed infrastructure is left running and must be torn
// down with destroy first.
func (s *RemoveSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/env").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Bool("force", s.Force).
		Msgf("executing %s", s.Name())

	if !s.Force {
		ok, err := commands.Confirm(s.Stdin, s.Printers.Stdout,
			fmt.Sprintf("Remove the configuration of environment %s of project %s?",
				s.Environment, s.Project))
		if err != nil {
			return err
		}
		if !ok {
			s.Printers.Stdout.Println("aborted")
			return nil
		}
	}

	if err := s.Engine.RemoveEnvironment(s.Project, s.Environment); err != nil {
		return err
	}
	s.Printers.Stdout.Successf("environment %s removed from project %s", s.Environment, s.Project)
	return nil
}
