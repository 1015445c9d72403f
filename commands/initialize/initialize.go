// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package initialize provides the init project command.
package initialize

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/printer"
	"github.com/djup-io/djup/run/github"
)

// Spec is the command specification for the init project command.
type Spec struct {
	ProjectName string
	Repo        string
	Region      string
	Domain      string
	DevDomain   string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *Spec) Name() string { return "init project" }

// Exec executes the init project command.
func (s *Spec) Exec(ctx context.Context) error {
	logger := log.With().
		Str("action", "commands/initialize").
		Str("project", s.ProjectName).
		Logger()

	logger.Debug().Msgf("executing %s", s.Name())

	repo := s.Repo
	if repo == "" {
		if wd, err := os.Getwd(); err == nil {
			if detected, ok := github.CurrentRepo(wd); ok {
				repo = detected
				s.Printers.Stdout.Printf("Detected GitHub repository: %s\n", repo)
			}
		}
	}

	err := s.Engine.InitProject(ctx, engine.InitProjectSpec{
		Name:             s.ProjectName,
		GithubRepo:       repo,
		Region:           s.Region,
		ProductionDomain: s.Domain,
		DevDomain:        s.DevDomain,
	})
	if err != nil {
		return err
	}

	store := s.Engine.Store()
	s.Printers.Stdout.Successf("project %s created", s.ProjectName)
	s.Printers.Stdout.Println(fmt.Sprintf("Configuration: %s", store.ProjectDir(s.ProjectName)))
	s.Printers.Stdout.Println("")
	s.Printers.Stdout.Println("Next steps:")
	s.Printers.Stdout.Println(fmt.Sprintf("  djup deploy infra --project %s --env dev", s.ProjectName))
	s.Printers.Stdout.Println(fmt.Sprintf("  djup deploy infra --project %s --env production", s.ProjectName))
	return nil
}
