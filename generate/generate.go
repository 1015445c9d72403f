// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package generate renders the infrastructure files of an environment:
// the Terraform set, the Helm values file and the GitHub Actions deploy
// workflow. Templates are embedded; rendering contexts are explicit
// structs so a missing or renamed field fails at compile time.
package generate

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/project"
)

// ErrRender indicates a template rendering or write failure.
const ErrRender errors.Kind = "rendering configuration files failed"

//go:embed assets/*.tmpl
var assets embed.FS

var templates = template.Must(template.ParseFS(assets, "assets/*.tmpl"))

// DefaultRedisMaxCommandsPerSecond is the fixed Redis rate ceiling applied
// to every environment.
const DefaultRedisMaxCommandsPerSecond = 10000

// TerraformContext is the rendering context of the Terraform file set.
type TerraformContext struct {
	ProjectName string
	Environment string

	Region        string
	UpstashRegion string

	NodeSize       string
	NodeCount      int
	MediaBucketGB  int
	StaticBucketGB int

	RedisMaxMemoryMB          int
	RedisMaxCommandsPerSecond int
}

// TerraformContextFor assembles the Terraform context of an environment
// from the project record and its size profile.
func TerraformContextFor(rec project.Project, env string, profile project.SizeProfile) TerraformContext {
	return TerraformContext{
		ProjectName:               rec.Name,
		Environment:               env,
		Region:                    rec.Region,
		UpstashRegion:             rec.UpstashRegion,
		NodeSize:                  profile.NodeSize,
		NodeCount:                 profile.NodeCount,
		MediaBucketGB:             profile.MediaBucketGB,
		StaticBucketGB:            profile.StaticBucketGB,
		RedisMaxMemoryMB:          profile.RedisMaxMemoryMB,
		RedisMaxCommandsPerSecond: DefaultRedisMaxCommandsPerSecond,
	}
}

// HelmContext is the rendering context of the Helm values file.
type HelmContext struct {
	ProjectName string
	Environment string

	GithubRepo string
	Domain     string

	MinReplicas int
	MaxReplicas int
}

// WorkflowEnvironment is one environment/branch pair of the deploy
// workflow.
type WorkflowEnvironment struct {
	Name   string
	Branch string
}

// SecretPrefix is the uppercased environment name used to key the
// environment's GitHub secrets (e.g. DEV_KUBECONFIG).
func (w WorkflowEnvironment) SecretPrefix() string {
	return strings.ToUpper(strings.ReplaceAll(w.Name, "-", "_"))
}

// WorkflowContext is the rendering context of the GitHub Actions deploy
// workflow.
type WorkflowContext struct {
	ProjectName  string
	GithubRepo   string
	Environments []WorkflowEnvironment
}

// terraformFiles maps template names to the files of the rendered set.
var terraformFiles = map[string]string{
	"main.tf.tmpl":          "main.tf",
	"variables.tf.tmpl":     "variables.tf",
	"outputs.tf.tmpl":       "outputs.tf",
	"terraform.tfvars.tmpl": "terraform.tfvars",
}

// Terraform renders the four-file Terraform set into envDir. Rendering is
// one-shot: existing files are overwritten, but the set is never diffed or
// re-rendered automatically afterwards.
func Terraform(envDir string, ctx TerraformContext) error {
	log.Debug().
		Str("action", "generate.Terraform()").
		Str("dir", envDir).
		Str("project", ctx.ProjectName).
		Str("environment", ctx.Environment).
		Msg("rendering terraform file set")

	for tmpl, filename := range terraformFiles {
		if err := renderFile(tmpl, filepath.Join(envDir, filename), ctx); err != nil {
			return err
		}
	}
	return nil
}

// HelmValues writes the Helm values file for an environment.
func HelmValues(path string, ctx HelmContext) error {
	type replicas struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	}

	values := map[string]interface{}{
		"django": map[string]interface{}{
			"image": map[string]interface{}{
				"repository": "ghcr.io/" + ctx.GithubRepo,
				"tag":        "latest",
				"pullPolicy": "Always",
			},
			"replicas": replicas{Min: ctx.MinReplicas, Max: ctx.MaxReplicas},
			"env": map[string]string{
				"DJANGO_SETTINGS_MODULE": "config.settings.production",
				"ENVIRONMENT":            ctx.Environment,
				"ALLOWED_HOSTS":          ctx.Domain,
			},
			"ingress": map[string]interface{}{
				"enabled": true,
				"host":    ctx.Domain,
				"tls":     map[string]bool{"enabled": true},
			},
		},
		"worker": map[string]interface{}{
			"replicas": replicas{Min: ctx.MinReplicas, Max: ctx.MaxReplicas},
		},
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.E(ErrRender, err, "encoding helm values")
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	return nil
}

// Workflow writes the GitHub Actions deploy workflow listing one job per
// environment, each gated on its branch.
func Workflow(path string, ctx WorkflowContext) error {
	return renderFile("deploy.yml.tmpl", path, ctx)
}

func renderFile(tmpl, path string, ctx interface{}) error {
	var content strings.Builder
	if err := templates.ExecuteTemplate(&content, tmpl, ctx); err != nil {
		return errors.E(ErrRender, err, "rendering %s", tmpl)
	}
	return writeFile(path, []byte(content.String()))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.E(ErrRender, err, "creating directory of %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.E(ErrRender, err, "writing %s", path)
	}
	return nil
}
