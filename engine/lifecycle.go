// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/generate"
	"github.com/djup-io/djup/project"
)

// InitProjectSpec parameterizes project creation.
type InitProjectSpec struct {
	Name       string
	GithubRepo string
	Region     string

	// ProductionDomain defaults to <name>.example.com, DevDomain to
	// dev.<production domain>.
	ProductionDomain string
	DevDomain        string
}

// InitProject creates a new project with its two core environments: dev
// (small profile, develop branch) and production (large profile, main
// branch). All configuration files and the deploy workflow are rendered;
// nothing is deployed.
func (e *Engine) InitProject(ctx context.Context, spec InitProjectSpec) error {
	logger := log.With().
		Str("action", "engine.InitProject()").
		Str("project", spec.Name).
		Logger()

	if !project.ValidName(spec.Name) {
		return errors.E(ErrInvalidName, "project %q: use lowercase letters, digits and hyphens", spec.Name)
	}
	if e.store.HasProject(spec.Name) {
		return errors.E(ErrAlreadyExists, "project %s", spec.Name)
	}
	region, ok := project.RegionByCode(spec.Region)
	if !ok {
		return errors.E(ErrInvalidRegion, "%q: valid regions are %v", spec.Region, project.RegionCodes())
	}
	if err := e.store.Ensure(); err != nil {
		return err
	}

	prodDomain := spec.ProductionDomain
	if prodDomain == "" {
		prodDomain = spec.Name + ".example.com"
	}
	devDomain := spec.DevDomain
	if devDomain == "" {
		devDomain = "dev." + prodDomain
	}

	rec := project.Project{
		Name:          spec.Name,
		GithubRepo:    spec.GithubRepo,
		Region:        region.Code,
		UpstashRegion: region.UpstashRegion,
	}

	coreEnvs := []struct {
		name    string
		profile string
		domain  string
	}{
		{"dev", "small", devDomain},
		{"production", "large", prodDomain},
	}
	for _, env := range coreEnvs {
		profile, _ := project.ProfileByName(env.profile)
		rec.SetEnvironment(env.name, project.Environment{
			Branch:  project.DefaultBranches[env.name],
			Profile: profile.Name,
		}, env.domain)
		if err := e.renderEnvironment(rec, env.name, profile, env.domain); err != nil {
			return err
		}
	}

	if err := e.store.SaveProject(spec.Name, rec); err != nil {
		return err
	}
	if err := e.writeWorkflow(rec); err != nil {
		return err
	}

	logger.Debug().Msg("project created")
	return nil
}

// AddEnvironmentSpec parameterizes environment creation.
type AddEnvironmentSpec struct {
	Project string
	Name    string
	Profile string

	// Branch defaults to the environment name, Domain to
	// <name>.<production domain>.
	Branch string
	Domain string

	// Deploy provisions the environment right after creating it.
	Deploy bool
}

// AddEnvironment creates a new environment: renders its Terraform set and
// Helm values, records it in the project record and regenerates the deploy
// workflow. All preconditions are checked before the first filesystem
// mutation, so a failed call leaves no partial environment behind.
func (e *Engine) AddEnvironment(ctx context.Context, spec AddEnvironmentSpec) error {
	logger := log.With().
		Str("action", "engine.AddEnvironment()").
		Str("project", spec.Project).
		Str("environment", spec.Name).
		Logger()

	if err := e.checkProject(spec.Project); err != nil {
		return err
	}
	if !project.ValidName(spec.Name) {
		return errors.E(ErrInvalidName, "environment %q: use lowercase letters, digits and hyphens", spec.Name)
	}
	if e.store.HasEnvironment(spec.Project, spec.Name) {
		return errors.E(ErrAlreadyExists, "environment %s of project %s", spec.Name, spec.Project)
	}
	profile, ok := project.ProfileByName(spec.Profile)
	if !ok {
		return errors.E(ErrInvalidProfile, "%q: valid profiles are %v", spec.Profile, project.ProfileNames())
	}

	rec, err := e.store.LoadProject(spec.Project)
	if err != nil {
		return err
	}

	branch := spec.Branch
	if branch == "" {
		branch = spec.Name
	}
	domain := spec.Domain
	if domain == "" {
		base := rec.Domain("production")
		if base == "" {
			base = spec.Project + ".example.com"
		}
		domain = spec.Name + "." + base
	}

	rec.SetEnvironment(spec.Name, project.Environment{
		Branch:  branch,
		Profile: profile.Name,
	}, domain)

	if err := e.renderEnvironment(rec, spec.Name, profile, domain); err != nil {
		return err
	}
	if err := e.store.SaveProject(spec.Project, rec); err != nil {
		return err
	}
	if err := e.writeWorkflow(rec); err != nil {
		return err
	}
	logger.Debug().Msg("environment created")

	if spec.Deploy {
		return e.Deploy(ctx, spec.Project, spec.Name, DeployOptions{})
	}
	return nil
}

// RemoveEnvironment deletes an environment's configuration directory and
// record entries. Core environments are never removable. A deployed
// environment can be removed: its live infrastructure is orphaned, which is
// warned about but not blocked. Confirmation policy belongs to the command
// surface.
func (e *Engine) RemoveEnvironment(proj, env string) error {
	if err := e.checkEnvironment(proj, env); err != nil {
		return err
	}
	if project.IsProtected(env) {
		return errors.E(ErrProtectedEnvironment, "%s", env)
	}
	if e.store.IsDeployed(proj, env) {
		e.printers.Stderr.Warnf(
			"environment %s has deployed infrastructure which will be orphaned; run destroy first to tear it down", env)
	}

	if err := os.RemoveAll(e.store.EnvironmentDir(proj, env)); err != nil {
		return errors.E(config.ErrIO, err, "removing environment %s", env)
	}
	rec, err := e.store.LoadProject(proj)
	if err != nil {
		return err
	}
	rec.DeleteEnvironment(env)
	if err := e.store.SaveProject(proj, rec); err != nil {
		return err
	}
	return e.writeWorkflow(rec)
}

// DeployOptions tune a deployment run.
type DeployOptions struct {
	// Upgrade upgrades provider plugins during init.
	Upgrade bool

	// AutoApprove applies without the tool's own confirmation prompt.
	AutoApprove bool
}

// Deploy provisions an environment: init, plan (printed), apply. On
// success the kubeconfig output is persisted to the well-known artifact
// path; that final step is best-effort and never fails the deploy.
func (e *Engine) Deploy(ctx context.Context, proj, env string, opts DeployOptions) error {
	logger := log.With().
		Str("action", "engine.Deploy()").
		Str("project", proj).
		Str("environment", env).
		Logger()

	if err := e.checkEnvironment(proj, env); err != nil {
		return err
	}

	tf := e.TerraformFor(e.store.EnvironmentDir(proj, env))

	logger.Debug().Msg("initializing")
	if err := tf.Init(ctx, opts.Upgrade); err != nil {
		return err
	}

	logger.Debug().Msg("planning")
	planText, err := tf.Plan(ctx, "")
	if err != nil {
		return err
	}
	e.printers.Stdout.Println(planText)

	logger.Debug().Msg("applying")
	if err := tf.Apply(ctx, opts.AutoApprove, ""); err != nil {
		return err
	}

	e.saveKubeconfig(ctx, tf, proj, env)
	e.printers.Stdout.Successf("environment %s of project %s deployed", env, proj)
	return nil
}

// Validate runs a static check of the environment's configuration.
func (e *Engine) Validate(ctx context.Context, proj, env string) error {
	if err := e.checkEnvironment(proj, env); err != nil {
		return err
	}
	tf := e.TerraformFor(e.store.EnvironmentDir(proj, env))
	if err := tf.Init(ctx, false); err != nil {
		return err
	}
	return tf.Validate(ctx)
}

// Plan computes and returns the execution plan of the environment without
// applying it. When saveFile is non-empty the plan artifact is persisted in
// the environment directory under that name.
func (e *Engine) Plan(ctx context.Context, proj, env, saveFile string) (string, error) {
	if err := e.checkEnvironment(proj, env); err != nil {
		return "", err
	}
	tf := e.TerraformFor(e.store.EnvironmentDir(proj, env))
	if err := tf.Init(ctx, false); err != nil {
		return "", err
	}
	return tf.Plan(ctx, saveFile)
}

// stateArtifacts are the provisioning tool's local files scrubbed when an
// environment is destroyed without keeping its configuration.
var stateArtifacts = []string{
	"terraform.tfstate",
	"terraform.tfstate.backup",
	".terraform.lock.hcl",
	".terraform",
	"tfplan",
}

// DestroyEnvironment tears down the deployed infrastructure of an
// environment. When nothing is deployed it is a no-op success with a
// notice; the provisioning tool is not invoked. On success the kubeconfig
// artifact is removed; when keepConfig is false the state and plugin files
// are scrubbed too, keeping the rendered configuration.
//
// It reports whether a destroy actually ran.
func (e *Engine) DestroyEnvironment(ctx context.Context, proj, env string, keepConfig bool) (bool, error) {
	logger := log.With().
		Str("action", "engine.DestroyEnvironment()").
		Str("project", proj).
		Str("environment", env).
		Logger()

	if err := e.checkEnvironment(proj, env); err != nil {
		return false, err
	}
	if !e.store.IsDeployed(proj, env) {
		e.printers.Stdout.Printf("environment %s has nothing deployed, skipping\n", env)
		return false, nil
	}

	tf := e.TerraformFor(e.store.EnvironmentDir(proj, env))
	logger.Debug().Msg("destroying")
	if err := tf.Destroy(ctx, true); err != nil {
		return false, err
	}

	e.removeKubeconfig(proj, env)
	if !keepConfig {
		e.scrubState(proj, env)
	}
	e.printers.Stdout.Successf("environment %s of project %s destroyed", env, proj)
	return true, nil
}

// scrubState removes the local state artifacts of an environment, keeping
// the rendered configuration files.
func (e *Engine) scrubState(proj, env string) {
	dir := e.store.EnvironmentDir(proj, env)
	for _, name := range stateArtifacts {
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			e.printers.Stderr.Warnf("removing %s: %v", filepath.Join(dir, name), err)
		}
	}
}

// DestroyOutcome is the per-environment result of a project destroy.
type DestroyOutcome int

// Outcomes of destroying one environment of a project.
const (
	OutcomeDestroyed DestroyOutcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// String returns the display name of the outcome.
func (o DestroyOutcome) String() string {
	switch o {
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// DestroyEntry is the outcome of destroying one environment.
type DestroyEntry struct {
	Environment string
	Outcome     DestroyOutcome
	Err         error
}

// DestroyReport is the per-environment outcome of a project destroy.
type DestroyReport struct {
	Entries []DestroyEntry
}

// Failed tells if any environment failed to destroy.
func (r DestroyReport) Failed() bool {
	for _, entry := range r.Entries {
		if entry.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// DestroyProject destroys every environment of the project independently:
// one failing environment does not stop the others. Failures are collected
// in the returned error list alongside the report. The project
// configuration is never removed here; only infrastructure and, per
// environment when keepConfig is false, the local state artifacts.
func (e *Engine) DestroyProject(ctx context.Context, proj string, keepConfig bool) (DestroyReport, error) {
	if err := e.checkProject(proj); err != nil {
		return DestroyReport{}, err
	}

	report := DestroyReport{}
	errs := errors.L()
	for _, env := range e.store.Environments(proj) {
		destroyed, err := e.DestroyEnvironment(ctx, proj, env, keepConfig)
		switch {
		case err != nil:
			errs.Append(errors.E(err, "destroying environment %s", env))
			report.Entries = append(report.Entries, DestroyEntry{env, OutcomeFailed, err})
		case destroyed:
			report.Entries = append(report.Entries, DestroyEntry{env, OutcomeDestroyed, nil})
		default:
			report.Entries = append(report.Entries, DestroyEntry{env, OutcomeSkipped, nil})
		}
	}
	return report, errs.AsError()
}

// renderEnvironment writes the Terraform set and Helm values of an
// environment.
func (e *Engine) renderEnvironment(rec project.Project, env string, profile project.SizeProfile, domain string) error {
	envDir := e.store.EnvironmentDir(rec.Name, env)
	if err := generate.Terraform(envDir, generate.TerraformContextFor(rec, env, profile)); err != nil {
		return err
	}
	return generate.HelmValues(filepath.Join(envDir, "values.yaml"), generate.HelmContext{
		ProjectName: rec.Name,
		Environment: env,
		GithubRepo:  rec.GithubRepo,
		Domain:      domain,
		MinReplicas: profile.MinReplicas,
		MaxReplicas: profile.MaxReplicas,
	})
}

// writeWorkflow regenerates the project's deploy workflow from the current
// record, one job per environment.
func (e *Engine) writeWorkflow(rec project.Project) error {
	var envs []generate.WorkflowEnvironment
	for _, name := range rec.EnvironmentNames() {
		envs = append(envs, generate.WorkflowEnvironment{
			Name:   name,
			Branch: rec.Environments[name].Branch,
		})
	}
	path := filepath.Join(e.store.ProjectDir(rec.Name), ".github", "workflows", "deploy.yml")
	return generate.Workflow(path, generate.WorkflowContext{
		ProjectName:  rec.Name,
		GithubRepo:   rec.GithubRepo,
		Environments: envs,
	})
}
