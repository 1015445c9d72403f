// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package project_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/madlambda/spells/assert"

	"github.com/djup-io/djup/project"
)

func TestValidName(t *testing.T) {
	t.Parallel()

	valid := []string{"acme", "my-app", "app2", "a", "a-b-c", "2048"}
	invalid := []string{"", "Acme", "my_app", "-app", "app-", "my app", "app.io", "a--"}

	for _, name := range valid {
		if !project.ValidName(name) {
			t.Errorf("ValidName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if project.ValidName(name) {
			t.Errorf("ValidName(%q) = true, want false", name)
		}
	}
}

func TestProtectedEnvironments(t *testing.T) {
	t.Parallel()

	assert.IsTrue(t, project.IsProtected("dev"))
	assert.IsTrue(t, project.IsProtected("production"))
	assert.IsTrue(t, !project.IsProtected("staging"))
	assert.IsTrue(t, !project.IsProtected(""))
}

func TestSetEnvironmentOnZeroRecord(t *testing.T) {
	t.Parallel()

	var p project.Project
	p.SetEnvironment("staging", project.Environment{Branch: "staging", Profile: "medium"}, "staging.acme.com")

	want := project.Project{
		Domains: map[string]string{"staging": "staging.acme.com"},
		Environments: map[string]project.Environment{
			"staging": {Branch: "staging", Profile: "medium"},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteEnvironmentRemovesDomainEntry(t *testing.T) {
	t.Parallel()

	p := project.Project{
		Domains: map[string]string{"staging": "staging.acme.com", "dev": "dev.acme.com"},
		Environments: map[string]project.Environment{
			"staging": {Branch: "staging", Profile: "medium"},
			"dev":     {Branch: "develop", Profile: "small"},
		},
	}
	p.DeleteEnvironment("staging")

	assert.EqualInts(t, 1, len(p.Environments))
	assert.EqualInts(t, 1, len(p.Domains))

	// deleting a missing environment is a no-op
	p.DeleteEnvironment("staging")
	assert.EqualInts(t, 1, len(p.Environments))
}

func TestEnvironmentNamesSorted(t *testing.T) {
	t.Parallel()

	p := project.Project{
		Environments: map[string]project.Environment{
			"production": {}, "dev": {}, "staging": {},
		},
	}
	got := p.EnvironmentNames()
	want := []string{"dev", "production", "staging"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileTable(t *testing.T) {
	t.Parallel()

	names := project.ProfileNames()
	want := []string{"large", "medium", "small"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("profile names mismatch (-want +got):\n%s", diff)
	}

	large, ok := project.ProfileByName("large")
	assert.IsTrue(t, ok)
	assert.EqualStrings(t, "g4s.kube.large", large.NodeSize)
	assert.EqualInts(t, 5, large.NodeCount)
	assert.EqualInts(t, 1024, large.RedisMaxMemoryMB)
	assert.EqualInts(t, 15, large.MaxReplicas)

	_, ok = project.ProfileByName("xlarge")
	assert.IsTrue(t, !ok)
}

func TestRegionTable(t *testing.T) {
	t.Parallel()

	codes := project.RegionCodes()
	want := []string{"FRA1", "LON1", "NYC1", "PHX1"}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("region codes mismatch (-want +got):\n%s", diff)
	}

	nyc, ok := project.RegionByCode("NYC1")
	assert.IsTrue(t, ok)
	assert.EqualStrings(t, "us-east-1", nyc.UpstashRegion)
}
