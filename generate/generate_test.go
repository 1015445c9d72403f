// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package generate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madlambda/spells/assert"
	"gopkg.in/yaml.v3"

	"github.com/djup-io/djup/generate"
	"github.com/djup-io/djup/project"
)

func TestTerraformRendersFullFileSet(t *testing.T) {
	t.Parallel()

	envDir := t.TempDir()
	profile, ok := project.ProfileByName("medium")
	assert.IsTrue(t, ok)

	rec := project.Project{
		Name:          "acme",
		Region:        "NYC1",
		UpstashRegion: "us-east-1",
	}

	err := generate.Terraform(envDir, generate.TerraformContextFor(rec, "staging", profile))
	assert.NoError(t, err)

	for _, filename := range []string{"main.tf", "variables.tf", "outputs.tf", "terraform.tfvars"} {
		data, err := os.ReadFile(filepath.Join(envDir, filename))
		assert.NoError(t, err, "reading %s", filename)
		if len(data) == 0 {
			t.Fatalf("%s is empty", filename)
		}
	}

	mainTF, err := os.ReadFile(filepath.Join(envDir, "main.tf"))
	assert.NoError(t, err)
	for _, want := range []string{"acme-staging", "civo_kubernetes_cluster", "upstash_redis_database"} {
		if !strings.Contains(string(mainTF), want) {
			t.Fatalf("main.tf missing %q", want)
		}
	}

	tfvars, err := os.ReadFile(filepath.Join(envDir, "terraform.tfvars"))
	assert.NoError(t, err)
	wantAssignments := map[string]string{
		"region":                        `"NYC1"`,
		"upstash_region":                `"us-east-1"`,
		"node_size":                     `"g4s.kube.medium"`,
		"node_count":                    "3",
		"redis_max_memory_mb":           "512",
		"redis_max_commands_per_second": "10000",
	}
	assignments := parseAssignments(string(tfvars))
	for key, want := range wantAssignments {
		if got := assignments[key]; got != want {
			t.Fatalf("terraform.tfvars %s = %q, want %q", key, got, want)
		}
	}
}

func parseAssignments(s string) map[string]string {
	assignments := map[string]string{}
	for _, line := range strings.Split(s, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found || strings.HasPrefix(strings.TrimSpace(key), "#") {
			continue
		}
		assignments[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return assignments
}

func TestHelmValuesEncodesStructuredValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "staging", "values.yaml")
	err := generate.HelmValues(path, generate.HelmContext{
		ProjectName: "acme",
		Environment: "staging",
		GithubRepo:  "octo/acme",
		Domain:      "staging.acme.com",
		MinReplicas: 2,
		MaxReplicas: 5,
	})
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var values struct {
		Django struct {
			Image struct {
				Repository string `yaml:"repository"`
			} `yaml:"image"`
			Replicas struct {
				Min int `yaml:"min"`
				Max int `yaml:"max"`
			} `yaml:"replicas"`
			Env map[string]string `yaml:"env"`
			Ingress struct {
				Host string `yaml:"host"`
			} `yaml:"ingress"`
		} `yaml:"django"`
		Worker struct {
			Replicas struct {
				Min int `yaml:"min"`
			} `yaml:"replicas"`
		} `yaml:"worker"`
	}
	assert.NoError(t, yaml.Unmarshal(data, &values))

	assert.EqualStrings(t, "ghcr.io/octo/acme", values.Django.Image.Repository)
	assert.EqualInts(t, 2, values.Django.Replicas.Min)
	assert.EqualInts(t, 5, values.Django.Replicas.Max)
	assert.EqualStrings(t, "staging.acme.com", values.Django.Env["ALLOWED_HOSTS"])
	assert.EqualStrings(t, "staging", values.Django.Env["ENVIRONMENT"])
	assert.EqualStrings(t, "staging.acme.com", values.Django.Ingress.Host)
	assert.EqualInts(t, 2, values.Worker.Replicas.Min)
}

func TestWorkflowListsEachEnvironmentBranch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deploy.yml")
	err := generate.Workflow(path, generate.WorkflowContext{
		ProjectName: "acme",
		GithubRepo:  "octo/acme",
		Environments: []generate.WorkflowEnvironment{
			{Name: "dev", Branch: "develop"},
			{Name: "production", Branch: "main"},
		},
	})
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	got := string(data)

	for _, want := range []string{
		"- develop",
		"- main",
		"deploy-dev:",
		"deploy-production:",
		"refs/heads/develop",
		"refs/heads/main",
		"secrets.DEV_KUBECONFIG",
		"secrets.PRODUCTION_KUBECONFIG",
		"${{ github.sha }}",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("workflow missing %q, got:\n%s", want, got)
		}
	}
}

func TestSecretPrefix(t *testing.T) {
	t.Parallel()

	env := generate.WorkflowEnvironment{Name: "my-env", Branch: "my-env"}
	assert.EqualStrings(t, "MY_ENV", env.SecretPrefix())
}
