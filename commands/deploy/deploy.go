// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package deploy provides the infrastructure deployment commands.
package deploy

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/generate"
	"github.com/djup-io/djup/printer"
	"github.com/djup-io/djup/run/github"
	"github.com/djup-io/djup/run/terraform"
)

// MinTerraformVersion is the minimum terraform version deploys are tested
// against. An undeterminable version passes the check.
const MinTerraformVersion = ">= 1.3.0"

// InfraSpec is the command specification for the deploy infra command.
type InfraSpec struct {
	Project     string
	Environment string
	Upgrade     bool
	AutoApprove bool

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *InfraSpec) Name() string { return "deploy infra" }

// Exec executes the deploy infra command.
func (s *InfraSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/deploy").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Bool("upgrade", s.Upgrade).
		Msgf("executing %s", s.Name())

	if err := checkTerraform(ctx, s.Engine, s.Project, s.Environment); err != nil {
		return err
	}

	err := s.Engine.Deploy(ctx, s.Project, s.Environment, engine.DeployOptions{
		Upgrade:     s.Upgrade,
		AutoApprove: s.AutoApprove,
	})
	if err != nil {
		return err
	}

	s.pushKubeconfigSecret(ctx)
	return nil
}

// pushKubeconfigSecret uploads the saved kubeconfig as the environment's
// GitHub Actions secret so the deploy workflow can reach the cluster.
// Best effort: any failure downgrades to a warning.
func (s *InfraSpec) pushKubeconfigSecret(ctx context.Context) {
	rec, err := s.Engine.Store().LoadProject(s.Project)
	if err != nil || rec.GithubRepo == "" {
		return
	}
	if !github.IsInstalled() || !github.IsAuthenticated(ctx) {
		s.Printers.Stderr.Warnln("gh unavailable, set the kubeconfig secret manually")
		return
	}
	path, err := s.Engine.KubeconfigPath(s.Project, s.Environment)
	if err != nil {
		s.Printers.Stderr.Warnf("resolving kubeconfig path: %v", err)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.Printers.Stderr.Warnf("reading kubeconfig: %v", err)
		return
	}
	name := generate.WorkflowEnvironment{Name: s.Environment}.SecretPrefix() + "_KUBECONFIG"
	if err := github.SetSecret(ctx, name, string(data), rec.GithubRepo); err != nil {
		s.Printers.Stderr.Warnf("setting secret %s: %v", name, err)
		return
	}
	s.Printers.Stdout.Printf("Secret %s updated in %s\n", name, rec.GithubRepo)
}

// ValidateSpec is the command specification for the deploy validate
// command.
type ValidateSpec struct {
	Project     string
	Environment string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *ValidateSpec) Name() string { return "deploy validate" }

// Exec executes the deploy validate command.
func (s *ValidateSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/deploy").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Msgf("executing %s", s.Name())

	if !terraform.IsInstalled() {
		return errors.E("terraform is not installed")
	}
	if err := s.Engine.Validate(ctx, s.Project, s.Environment); err != nil {
		return err
	}
	s.Printers.Stdout.Successf("configuration of environment %s is valid", s.Environment)
	return nil
}

// PlanSpec is the command specification for the deploy plan command.
type PlanSpec struct {
	Project     string
	Environment string
	Out         string

	Engine   *engine.Engine
	Printers printer.Printers
}

// Name returns the name of the command.
func (s *PlanSpec) Name() string { return "deploy plan" }

// Exec executes the deploy plan command.
func (s *PlanSpec) Exec(ctx context.Context) error {
	log.Debug().
		Str("action", "commands/deploy").
		Str("project", s.Project).
		Str("environment", s.Environment).
		Str("out", s.Out).
		Msgf("executing %s", s.Name())

	if !terraform.IsInstalled() {
		return errors.E("terraform is not installed")
	}
	planText, err := s.Engine.Plan(ctx, s.Project, s.Environment, s.Out)
	if err != nil {
		return err
	}
	s.Printers.Stdout.Println(planText)
	if s.Out != "" {
		s.Printers.Stdout.Printf("Plan saved as %s in the environment directory\n", s.Out)
	}
	return nil
}

// checkTerraform verifies the terraform binary is present and satisfies
// the minimum tested version.
func checkTerraform(ctx context.Context, e *engine.Engine, proj, env string) error {
	if !terraform.IsInstalled() {
		return errors.E("terraform is not installed: https://developer.hashicorp.com/terraform/install")
	}
	runner := terraform.NewRunner(e.Store().EnvironmentDir(proj, env))
	return runner.CheckVersion(ctx, MinTerraformVersion)
}
