// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package env

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/printer"
	"github.com/djup-io/djup/project"
)

// InfoSpec is the command specification for the env info command.
type InfoSpec struct {
	Project     string
	Environment string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *InfoSpec) Name() string { return "env info" }

// Exec executes the env info command.
func (s *InfoSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/env").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Msgf("executing %s", s.Name())

	store := s.Engine.Store()
	if !store.HasEnvironment(s.Project, s.Environment) {
		return errors.E(config.ErrNotFound, "environment %s of project %s", s.Environment, s.Project)
	}
	rec, err := store.LoadProject(s.Project)
	if err != nil {
		return err
	}
	entry := rec.Environments[s.Environment]

	out := s.Printers.Stdout
	out.Println(fmt.Sprintf("Environment: %s", s.Environment))
	out.Println(fmt.Sprintf("Project:     %s", s.Project))
	out.Println(fmt.Sprintf("Directory:   %s", store.EnvironmentDir(s.Project, s.Environment)))
	out.Println(fmt.Sprintf("Branch:      %s", orNA(entry.Branch)))
	out.Println(fmt.Sprintf("Profile:     %s", orNA(entry.Profile)))
	out.Println(fmt.Sprintf("Domain:      %s", orNA(rec.Domain(s.Environment))))
	out.Println(fmt.Sprintf("Protected:   %v", s.Engine.IsProtectedName(s.Environment)))

	if profile, ok := project.ProfileByName(entry.Profile); ok {
		out.Println("")
		out.Println(fmt.Sprintf("Nodes:       %d x %s", profile.NodeCount, profile.NodeSize))
		out.Println(fmt.Sprintf("Storage:     media %dGB, static %dGB",
			profile.MediaBucketGB, profile.StaticBucketGB))
		out.Println(fmt.Sprintf("Redis:       %dMB", profile.RedisMaxMemoryMB))
		out.Println(fmt.Sprintf("Replicas:    %d-%d", profile.MinReplicas, profile.MaxReplicas))
	}

	status := s.Engine.Status(s.Project, s.Environment)
	out.Println("")
	if status.Deployed {
		out.Println("Status:      deployed")
		if count := s.Engine.ResourceCount(s.Project, s.Environment); count >= 0 {
			out.Println(fmt.Sprintf("Resources:   %d", count))
		}
	} else {
		out.Println("Status:      not deployed")
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
