// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package env_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/madlambda/spells/assert"

	"github.com/djup-io/djup/commands/env"
	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/printer"
)

type noopTerraform struct{}

func (noopTerraform) Init(ctx context.Context, upgrade bool) error { return nil }
func (noopTerraform) Plan(ctx context.Context, outFile string) (string, error) {
	return "", nil
}
func (noopTerraform) Apply(ctx context.Context, autoApprove bool, planFile string) error {
	return nil
}
func (noopTerraform) Destroy(ctx context.Context, autoApprove bool) error { return nil }
func (noopTerraform) Outputs(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{}
}
func (noopTerraform) Validate(ctx context.Context) error { return nil }

func newTestEngine(t *testing.T, out *bytes.Buffer) *engine.Engine {
	t.Helper()

	store := config.NewStore(t.TempDir())
	e := engine.New(store, printer.Printers{
		Stdout: printer.NewPrinter(out),
		Stderr: printer.NewPrinter(&bytes.Buffer{}),
	})
	e.KubeDir = t.TempDir()
	e.TerraformFor = func(dir string) engine.Terraform { return noopTerraform{} }

	err := e.InitProject(context.Background(), engine.InitProjectSpec{
		Name:             "acme",
		Region:           "LON1",
		ProductionDomain: "acme.io",
	})
	assert.NoError(t, err)
	return e
}

func TestEnvListShowsConfiguredEnvironments(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	e := newTestEngine(t, out)

	spec := &env.ListSpec{
		Project:  "acme",
		Engine:   e,
		Printers: printer.Printers{Stdout: printer.NewPrinter(out), Stderr: printer.NewPrinter(&bytes.Buffer{})},
	}
	assert.NoError(t, spec.Exec(context.Background()))

	got := out.String()
	for _, want := range []string{"dev", "production", "small", "large", "not deployed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("listing misses %q, got:\n%s", want, got)
		}
	}
}

func TestEnvListUnknownProject(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	e := newTestEngine(t, out)

	spec := &env.ListSpec{
		Project:  "nosuch",
		Engine:   e,
		Printers: printer.Printers{Stdout: printer.NewPrinter(out), Stderr: printer.NewPrinter(&bytes.Buffer{})},
	}
	errors.AssertIsKind(t, spec.Exec(context.Background()), config.ErrNotFound)
}

func TestEnvRemoveForceSkipsConfirmation(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	e := newTestEngine(t, out)
	printers := printer.Printers{Stdout: printer.NewPrinter(out), Stderr: printer.NewPrinter(&bytes.Buffer{})}

	add := &env.AddSpec{
		Project:     "acme",
		Environment: "staging",
		Profile:     "small",
		Engine:      e,
		Printers:    printers,
	}
	assert.NoError(t, add.Exec(context.Background()))

	remove := &env.RemoveSpec{
		Project:     "acme",
		Environment: "staging",
		Force:       true,
		Engine:      e,
		Printers:    printers,
		// no Stdin: force must not read anything
	}
	assert.NoError(t, remove.Exec(context.Background()))
	if e.Store().HasEnvironment("acme", "staging") {
		t.Fatal("environment still configured after remove")
	}
}

func TestEnvInfoUnknownEnvironment(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	e := newTestEngine(t, out)

	spec := &env.InfoSpec{
		Project:     "acme",
		Environment: "staging",
		Engine:      e,
		Printers:    printer.Printers{Stdout: printer.NewPrinter(out), Stderr: printer.NewPrinter(&bytes.Buffer{})},
	}
	errors.AssertIsKind(t, spec.Exec(context.Background()), config.ErrNotFound)
}

func TestEnvInfoShowsProfileSizing(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	e := newTestEngine(t, out)

	spec := &env.InfoSpec{
		Project:     "acme",
		Environment: "production",
		Engine:      e,
		Printers:    printer.Printers{Stdout: printer.NewPrinter(out), Stderr: printer.NewPrinter(&bytes.Buffer{})},
	}
	assert.NoError(t, spec.Exec(context.Background()))

	got := out.String()
	for _, want := range []string{"g4s.kube.large", "1024MB", "acme.io", "not deployed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("info misses %q, got:\n%s", want, got)
		}
	}
}
