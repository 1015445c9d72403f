// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package status provides the status reporting commands.
package status

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/printer"
	"github.com/djup-io/djup/run/github"
	"github.com/djup-io/djup/run/terraform"
)

// ListSpec is the command specification for the status list command.
type ListSpec struct {
	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *ListSpec) Name() string { return "status list" }

// Exec executes the status list command.
func (s *ListSpec) Exec(ctx context.Context) error {
	log.Debug().Str("action", "commands/status").Msgf("executing %s", s.Name())

	store := s.Engine.Store()
	projects := store.Projects()
	if len(projects) == 0 {
		s.Printers.Stdout.Println("no projects configured")
		s.Printers.Stdout.Println("Create one with: djup init project --name <name> --region <region>")
		return nil
	}

	s.Printers.Stdout.Println(fmt.Sprintf("%-20s %-12s %s", "PROJECT", "ENVIRONMENTS", "DEPLOYED"))
	for _, proj := range projects {
		envs := store.Environments(proj)
		deployed := 0
		for _, env := range envs {
			if store.IsDeployed(proj, env) {
				deployed++
			}
		}
		s.Printers.Stdout.Println(fmt.Sprintf("%-20s %-12d %d", proj, len(envs), deployed))
	}
	return nil
}

// ProjectSpec is the command specification for the status project command.
type ProjectSpec struct {
	Project string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *ProjectSpec) Name() string { return "status project" }

// Exec executes the status project command.
func (s *ProjectSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/status").
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

	out := s.Printers.Stdout
	out.Println(fmt.Sprintf("Project: %s", s.Project))
	out.Println(fmt.Sprintf("Repo:    %s", orNA(rec.GithubRepo)))
	out.Println(fmt.Sprintf("Region:  %s (redis: %s)", orNA(rec.Region), orNA(rec.UpstashRegion)))
	out.Println("")

	envs := store.Environments(s.Project)
	if len(envs) == 0 {
		out.Println("no environments configured")
		return nil
	}
	out.Println(fmt.Sprintf("%-15s %-10s %-15s %-12s %s",
		"ENVIRONMENT", "PROFILE", "BRANCH", "STATUS", "RESOURCES"))
	for _, env := range envs {
		entry := rec.Environments[env]
		status := "not deployed"
		resources := "-"
		if s.Engine.Status(s.Project, env).Deployed {
			status = "deployed"
			if count := s.Engine.ResourceCount(s.Project, env); count >= 0 {
				resources = fmt.Sprintf("%d", count)
			} else {
				resources = "unknown"
			}
		}
		out.Println(fmt.Sprintf("%-15s %-10s %-15s %-12s %s",
			env, orNA(entry.Profile), orNA(entry.Branch), status, resources))
	}
	return nil
}

// InfraSpec is the command specification for the status infra command.
type InfraSpec struct {
	Project     string
	Environment string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *InfraSpec) Name() string { return "status infra" }

// Exec executes the status infra command, printing the provisioned
// outputs of a deployed environment. Sensitive outputs are printed as-is;
// the config tree is local to the operator.
func (s *InfraSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/status").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Msgf("executing %s", s.Name())

	store := s.Engine.Store()
	if !store.HasEnvironment(s.Project, s.Environment) {
		return errors.E(config.ErrNotFound, "environment %s of project %s", s.Environment, s.Project)
	}

	out := s.Printers.Stdout
	if !s.Engine.Status(s.Project, s.Environment).Deployed {
		out.Println(fmt.Sprintf("environment %s is not deployed", s.Environment))
		return nil
	}

	if count := s.Engine.ResourceCount(s.Project, s.Environment); count >= 0 {
		out.Println(fmt.Sprintf("Resources: %d", count))
	}

	runner := terraform.NewRunner(store.EnvironmentDir(s.Project, s.Environment))
	outputs := runner.Outputs(ctx)
	if len(outputs) == 0 {
		out.Println("no outputs available")
		return nil
	}

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	out.Println("Outputs:")
	for _, name := range names {
		if name == "kubeconfig" {
			out.Println("  kubeconfig: <hidden, use the saved kubeconfig file>")
			continue
		}
		out.Println(fmt.Sprintf("  %s: %v", name, outputs[name]))
	}
	return nil
}

// GithubSpec is the command specification for the status github command.
type GithubSpec struct {
	Project string
	Limit   int

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *GithubSpec) Name() string { return "status github" }

// Exec executes the status github command, listing the recent workflow
// runs of the project's repository through the gh CLI.
func (s *GithubSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/status").
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
	if rec.GithubRepo == "" {
		s.Printers.Stderr.Warnln("project has no GitHub repository configured")
		return nil
	}
	if !github.IsInstalled() {
		s.Printers.Stderr.Warnln("gh is not installed: https://cli.github.com")
		return nil
	}
	if !github.IsAuthenticated(ctx) {
		s.Printers.Stderr.Warnln("gh is not authenticated, run: gh auth login")
		return nil
	}

	limit := s.Limit
	if limit <= 0 {
		limit = 5
	}
	runs, err := github.RunList(ctx, rec.GithubRepo, limit)
	if err != nil {
		s.Printers.Stderr.Warnf("listing workflow runs: %v", err)
		return nil
	}
	s.Printers.Stdout.Println(runs)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
