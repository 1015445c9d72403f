// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package terraform wraps the terraform binary. The wrapper is a stateless
// façade: each method is an independent subprocess invocation in the
// runner's working directory, with no in-process caching of plan or apply
// state.
package terraform

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	hclversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/run"
)

// Error kinds surfaced by the wrapper, one per lifecycle operation. Each
// carries the tool's captured stderr where output is captured, and is never
// retried internally.
const (
	ErrInit      errors.Kind = "terraform init failed"
	ErrPlan      errors.Kind = "terraform plan failed"
	ErrApply     errors.Kind = "terraform apply failed"
	ErrDestroy   errors.Kind = "terraform destroy failed"
	ErrValidate  errors.Kind = "terraform validate failed"
	ErrWorkspace errors.Kind = "terraform workspace operation failed"
)

const binName = "terraform"

// Runner executes terraform commands in a fixed working directory.
type Runner struct {
	WorkingDir string

	// Streams attached to live (uncaptured) executions, so operators see
	// terraform's own output and can answer its prompts. They default to
	// the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a runner bound to the given working directory.
func NewRunner(workingDir string) *Runner {
	return &Runner{
		WorkingDir: workingDir,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// IsInstalled tells if the terraform binary can be found.
func IsInstalled() bool {
	return run.InPath(binName)
}

// Init runs terraform init. Input prompts are disabled; when upgrade is set
// provider plugins are upgraded.
func (r *Runner) Init(ctx context.Context, upgrade bool) error {
	args := []string{"init", "-input=false"}
	if upgrade {
		args = append(args, "-upgrade")
	}
	if err := r.live(ctx, args); err != nil {
		return errors.E(ErrInit, err)
	}
	return nil
}

// Plan runs terraform plan returning the captured textual output. When
// outFile is non-empty the plan artifact is saved for a later Apply.
func (r *Runner) Plan(ctx context.Context, outFile string) (string, error) {
	args := []string{"plan", "-input=false"}
	if outFile != "" {
		args = append(args, "-out", outFile)
	}
	res, err := r.capture(ctx, args)
	if err != nil {
		return "", errors.E(ErrPlan, err)
	}
	return res.Stdout, nil
}

// Apply applies either the given saved plan file or the live working
// directory. Apply failures are not retried: partially applied
// infrastructure is the operator's to reconcile.
func (r *Runner) Apply(ctx context.Context, autoApprove bool, planFile string) error {
	args := []string{"apply", "-input=false"}
	if autoApprove {
		args = append(args, "-auto-approve")
	}
	if planFile != "" {
		args = append(args, planFile)
	}
	if err := r.live(ctx, args); err != nil {
		return errors.E(ErrApply, err)
	}
	return nil
}

// Destroy tears down all managed resources. There is no partial-destroy
// recovery; the caller re-runs on midway failure.
func (r *Runner) Destroy(ctx context.Context, autoApprove bool) error {
	args := []string{"destroy"}
	if autoApprove {
		args = append(args, "-auto-approve")
	}
	if err := r.live(ctx, args); err != nil {
		return errors.E(ErrDestroy, err)
	}
	return nil
}

// Validate runs a static configuration check.
func (r *Runner) Validate(ctx context.Context) error {
	if err := r.live(ctx, []string{"validate"}); err != nil {
		return errors.E(ErrValidate, err)
	}
	return nil
}

// Fmt formats the configuration files in the working directory. When check
// is set no file is changed and a non-zero exit reports unformatted files.
func (r *Runner) Fmt(ctx context.Context, check bool) error {
	args := []string{"fmt"}
	if check {
		args = append(args, "-check")
	}
	if err := r.live(ctx, args); err != nil {
		return errors.E(ErrValidate, err)
	}
	return nil
}

// Outputs returns the root module outputs as a flat name to value mapping.
//
// This is a best-effort read: absence of outputs is common before the first
// apply, so any subprocess failure or malformed JSON yields an empty
// mapping, never an error.
func (r *Runner) Outputs(ctx context.Context) map[string]interface{} {
	res, err := r.capture(ctx, []string{"output", "-json"})
	if err != nil {
		return map[string]interface{}{}
	}
	return ParseOutputs([]byte(res.Stdout))
}

// ParseOutputs extracts {name: value} from terraform's JSON output schema,
// where each entry wraps the actual value under a "value" key. Malformed
// input yields an empty mapping.
func ParseOutputs(data []byte) map[string]interface{} {
	var raw map[string]struct {
		Value interface{} `json:"value"`
	}
	outputs := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Debug().
			Str("action", "terraform.ParseOutputs()").
			Err(err).
			Msg("discarding malformed outputs")
		return outputs
	}
	for name, entry := range raw {
		outputs[name] = entry.Value
	}
	return outputs
}

// Workspaces lists the terraform workspaces. The current workspace marker
// (`*`) is stripped.
func (r *Runner) Workspaces(ctx context.Context) ([]string, error) {
	res, err := r.capture(ctx, []string{"workspace", "list"})
	if err != nil {
		return nil, errors.E(ErrWorkspace, err)
	}
	return ParseWorkspaces(res.Stdout), nil
}

// ParseWorkspaces parses the `terraform workspace list` output.
func ParseWorkspaces(out string) []string {
	var workspaces []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if name != "" {
			workspaces = append(workspaces, name)
		}
	}
	return workspaces
}

// SelectWorkspace switches to the given workspace.
func (r *Runner) SelectWorkspace(ctx context.Context, name string) error {
	if _, err := r.capture(ctx, []string{"workspace", "select", name}); err != nil {
		return errors.E(ErrWorkspace, err, "selecting workspace %s", name)
	}
	return nil
}

// NewWorkspace creates a new workspace.
func (r *Runner) NewWorkspace(ctx context.Context, name string) error {
	if _, err := r.capture(ctx, []string{"workspace", "new", name}); err != nil {
		return errors.E(ErrWorkspace, err, "creating workspace %s", name)
	}
	return nil
}

// Version returns the version of the terraform binary, or nil when it
// cannot be determined (missing binary, unparsable output). Callers treat
// an unknown version as non-fatal.
func (r *Runner) Version(ctx context.Context) *hclversion.Version {
	res, err := r.capture(ctx, []string{"version", "-json"})
	if err != nil {
		return nil
	}
	var parsed struct {
		TerraformVersion string `json:"terraform_version"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &parsed); err != nil {
		return nil
	}
	v, err := hclversion.NewVersion(parsed.TerraformVersion)
	if err != nil {
		return nil
	}
	return v
}

// CheckVersion verifies the binary satisfies the given version constraint
// (e.g. ">= 1.0.0"). An undeterminable version passes the check.
func (r *Runner) CheckVersion(ctx context.Context, constraint string) error {
	v := r.Version(ctx)
	if v == nil {
		return nil
	}
	constraints, err := hclversion.NewConstraint(constraint)
	if err != nil {
		return errors.E(errors.ErrInternal, err, "invalid version constraint %q", constraint)
	}
	if !constraints.Check(v) {
		return errors.E("terraform %s does not satisfy required version %q", v, constraint)
	}
	return nil
}

func (r *Runner) capture(ctx context.Context, args []string) (run.Result, error) {
	cmd, err := run.Command(ctx, binName, args, r.WorkingDir)
	if err != nil {
		return run.Result{}, err
	}
	return run.Capture(cmd)
}

func (r *Runner) live(ctx context.Context, args []string) error {
	cmd, err := run.Command(ctx, binName, args, r.WorkingDir)
	if err != nil {
		return err
	}
	_, err = run.Interactive(cmd, r.Stdin, r.Stdout, r.Stderr)
	return err
}
