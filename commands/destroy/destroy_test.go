// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package destroy_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madlambda/spells/assert"

	"github.com/djup-io/djup/commands/destroy"
	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/printer"
)

type fakeTerraform struct {
	dir          string
	destroyCalls int
}

func (f *fakeTerraform) Init(ctx context.Context, upgrade bool) error { return nil }

func (f *fakeTerraform) Plan(ctx context.Context, outFile string) (string, error) {
	return "", nil
}

func (f *fakeTerraform) Apply(ctx context.Context, autoApprove bool, planFile string) error {
	return nil
}

func (f *fakeTerraform) Destroy(ctx context.Context, autoApprove bool) error {
	f.destroyCalls++
	return os.Remove(filepath.Join(f.dir, config.StateFile))
}

func (f *fakeTerraform) Outputs(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{}
}

func (f *fakeTerraform) Validate(ctx context.Context) error { return nil }

type testSetup struct {
	engine   *engine.Engine
	store    *config.Store
	fakes    map[string]*fakeTerraform
	printers printer.Printers
	out      *bytes.Buffer
}

func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	store := config.NewStore(t.TempDir())
	out := &bytes.Buffer{}
	printers := printer.Printers{
		Stdout: printer.NewPrinter(out),
		Stderr: printer.NewPrinter(&bytes.Buffer{}),
	}
	e := engine.New(store, printers)
	e.KubeDir = t.TempDir()

	fakes := map[string]*fakeTerraform{}
	e.TerraformFor = func(dir string) engine.Terraform {
		if f, ok := fakes[dir]; ok {
			return f
		}
		f := &fakeTerraform{dir: dir}
		fakes[dir] = f
		return f
	}

	err := e.InitProject(context.Background(), engine.InitProjectSpec{
		Name:   "acme",
		Region: "NYC1",
	})
	assert.NoError(t, err)

	return &testSetup{engine: e, store: store, fakes: fakes, printers: printers, out: out}
}

func (ts *testSetup) markDeployed(t *testing.T, env string) {
	t.Helper()

	path := filepath.Join(ts.store.EnvironmentDir("acme", env), config.StateFile)
	assert.NoError(t, os.WriteFile(path, []byte(`{"version": 4, "resources": []}`), 0644))
}

func (ts *testSetup) fakeFor(env string) *fakeTerraform {
	dir := ts.store.EnvironmentDir("acme", env)
	if f, ok := ts.fakes[dir]; ok {
		return f
	}
	f := &fakeTerraform{dir: dir}
	ts.fakes[dir] = f
	return f
}

func TestDestroyProductionRequiresExactToken(t *testing.T) {
	t.Parallel()

	ts := newTestSetup(t)
	ts.markDeployed(t, "production")
	fake := ts.fakeFor("production")

	spec := &destroy.EnvSpec{
		Project:     "acme",
		Environment: "production",
		Engine:      ts.engine,
		Printers:    ts.printers,
		Stdin:       strings.NewReader("yes\n"),
	}
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 0, fake.destroyCalls)
	if !strings.Contains(ts.out.String(), "aborted") {
		t.Fatal("no abort notice printed")
	}

	spec.Stdin = strings.NewReader(destroy.ProductionToken + "\n")
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 1, fake.destroyCalls)
}

func TestDestroyEnvPlainConfirmation(t *testing.T) {
	t.Parallel()

	ts := newTestSetup(t)
	ts.markDeployed(t, "dev")
	fake := ts.fakeFor("dev")

	spec := &destroy.EnvSpec{
		Project:     "acme",
		Environment: "dev",
		Engine:      ts.engine,
		Printers:    ts.printers,
		Stdin:       strings.NewReader("n\n"),
	}
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 0, fake.destroyCalls)

	spec.Stdin = strings.NewReader("y\n")
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 1, fake.destroyCalls)
}

func TestDestroyEnvAutoApproveSkipsConfirmation(t *testing.T) {
	t.Parallel()

	ts := newTestSetup(t)
	ts.markDeployed(t, "dev")
	fake := ts.fakeFor("dev")

	spec := &destroy.EnvSpec{
		Project:     "acme",
		Environment: "dev",
		AutoApprove: true,
		Engine:      ts.engine,
		Printers:    ts.printers,
	}
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 1, fake.destroyCalls)
}

func TestDestroyProjectRequiresProjectName(t *testing.T) {
	t.Parallel()

	ts := newTestSetup(t)
	ts.markDeployed(t, "dev")
	ts.markDeployed(t, "production")
	devFake := ts.fakeFor("dev")
	prodFake := ts.fakeFor("production")

	spec := &destroy.ProjectSpec{
		Project:  "acme",
		Engine:   ts.engine,
		Printers: ts.printers,
		Stdin:    strings.NewReader("wrong\n"),
	}
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 0, devFake.destroyCalls)
	assert.EqualInts(t, 0, prodFake.destroyCalls)

	spec.Stdin = strings.NewReader("acme\n")
	assert.NoError(t, spec.Exec(context.Background()))
	assert.EqualInts(t, 1, devFake.destroyCalls)
	assert.EqualInts(t, 1, prodFake.destroyCalls)
	if !ts.store.HasProject("acme") {
		t.Fatal("project configuration removed by destroy")
	}
	if !strings.Contains(ts.out.String(), "still exists") {
		t.Fatal("no configuration retention notice printed")
	}
}
