// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package engine orchestrates the lifecycle of projects and environments:
// creation, removal, deployment and teardown. The engine holds no
// persistent state of its own; every lookup goes through the config store
// and deployment status is always derived from state file presence.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/printer"
	"github.com/djup-io/djup/project"
	"github.com/djup-io/djup/run/terraform"
)

// Error kinds of lifecycle operations.
const (
	// ErrAlreadyExists indicates the project or environment name is
	// already taken.
	ErrAlreadyExists errors.Kind = "already exists"

	// ErrProtectedEnvironment indicates an attempt to remove a core
	// environment through the generic remove path.
	ErrProtectedEnvironment errors.Kind = "cannot remove protected environment"

	// ErrInvalidProfile indicates a size profile outside the fixed set.
	ErrInvalidProfile errors.Kind = "invalid size profile"

	// ErrInvalidName indicates an invalid project or environment name.
	ErrInvalidName errors.Kind = "invalid name"

	// ErrInvalidRegion indicates a region outside the fixed set.
	ErrInvalidRegion errors.Kind = "invalid region"
)

// Terraform is the subset of the terraform runner driven by the engine.
type Terraform interface {
	Init(ctx context.Context, upgrade bool) error
	Plan(ctx context.Context, outFile string) (string, error)
	Apply(ctx context.Context, autoApprove bool, planFile string) error
	Destroy(ctx context.Context, autoApprove bool) error
	Outputs(ctx context.Context) map[string]interface{}
	Validate(ctx context.Context) error
}

// Engine orchestrates lifecycle operations against a config store.
type Engine struct {
	// TerraformFor builds the terraform adapter for a working directory.
	// Overridable so tests can fake the external tool.
	TerraformFor func(workdir string) Terraform

	// KubeDir is where kubeconfig artifacts are written. Empty means
	// ~/.kube, resolved on first use.
	KubeDir string

	store    *config.Store
	printers printer.Printers
}

// New creates an engine over the given store, reporting human output to
// printers.
func New(store *config.Store, printers printer.Printers) *Engine {
	return &Engine{
		TerraformFor: func(workdir string) Terraform {
			return terraform.NewRunner(workdir)
		},
		store:    store,
		printers: printers,
	}
}

// Store returns the engine's config store.
func (e *Engine) Store() *config.Store { return e.store }

// IsProtectedName tells if the environment name is protected. The command
// surface uses this to require stronger confirmation uniformly.
func (e *Engine) IsProtectedName(name string) bool {
	return project.IsProtected(name)
}

// Status is the derived deployment status of an environment.
type Status struct {
	Deployed bool
}

// Status derives the deployment status of an environment from state file
// presence. It is never cached: an apply failure leaves the state
// ambiguous, so callers re-derive instead of trusting the last operation.
func (e *Engine) Status(proj, env string) Status {
	return Status{Deployed: e.store.IsDeployed(proj, env)}
}

// ResourceCount returns the number of resources recorded in the
// environment's state file, or -1 when it cannot be determined. This is a
// display-only, best-effort read.
func (e *Engine) ResourceCount(proj, env string) int {
	data, err := os.ReadFile(filepath.Join(e.store.EnvironmentDir(proj, env), config.StateFile))
	if err != nil {
		return -1
	}
	return countStateResources(data)
}

// KubeconfigPath is the well-known per-environment kubeconfig artifact
// location.
func (e *Engine) KubeconfigPath(proj, env string) (string, error) {
	dir := e.KubeDir
	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", errors.E(err, "resolving home directory")
		}
		dir = filepath.Join(home, ".kube")
	}
	return filepath.Join(dir, fmt.Sprintf("config-%s-%s", proj, env)), nil
}

// checkProject fails with config.ErrNotFound when the project is unknown.
func (e *Engine) checkProject(proj string) error {
	if !e.store.HasProject(proj) {
		return errors.E(config.ErrNotFound, "project %s", proj)
	}
	return nil
}

// checkEnvironment fails with config.ErrNotFound when the environment is
// not configured for the project.
func (e *Engine) checkEnvironment(proj, env string) error {
	if err := e.checkProject(proj); err != nil {
		return err
	}
	if !e.store.HasEnvironment(proj, env) {
		return errors.E(config.ErrNotFound, "environment %s of project %s", env, proj)
	}
	return nil
}

// saveKubeconfig persists the kubeconfig output of a deployed environment.
// Best-effort by contract: absence of the output or any write failure is
// reported as a warning, never as an operation failure.
func (e *Engine) saveKubeconfig(ctx context.Context, tf Terraform, proj, env string) {
	logger := log.With().
		Str("action", "engine.saveKubeconfig()").
		Str("project", proj).
		Str("environment", env).
		Logger()

	outputs := tf.Outputs(ctx)
	kubeconfig, ok := outputs["kubeconfig"].(string)
	if !ok || kubeconfig == "" {
		logger.Debug().Msg("no kubeconfig output")
		return
	}
	path, err := e.KubeconfigPath(proj, env)
	if err != nil {
		e.printers.Stderr.Warnf("not saving kubeconfig: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.printers.Stderr.Warnf("not saving kubeconfig: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(kubeconfig), 0600); err != nil {
		e.printers.Stderr.Warnf("not saving kubeconfig: %v", err)
		return
	}
	e.printers.Stdout.Println(fmt.Sprintf("Kubeconfig saved: %s", path))
}

// removeKubeconfig deletes the kubeconfig artifact of an environment, if
// present.
func (e *Engine) removeKubeconfig(proj, env string) {
	path, err := e.KubeconfigPath(proj, env)
	if err != nil {
		return
	}
	if err := os.Remove(path); err == nil {
		e.printers.Stdout.Println(fmt.Sprintf("Removed kubeconfig: %s", path))
	}
}
