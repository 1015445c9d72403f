// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package run executes external tools as subprocesses. Every invocation is
// a single blocking attempt with no retries and no timeouts; callers decide
// whether to retry.
package run

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/cli/safeexec"
	"github.com/rs/zerolog/log"

	"github.com/djup-io/djup/errors"
)

const (
	// ErrCommandNotFound represents the error when the executable cannot
	// be found in the system.
	ErrCommandNotFound errors.Kind = "command not found"

	// ErrFailed represents the error when the execution fails, whatever
	// the reason.
	ErrFailed errors.Kind = "execution failed"
)

// Result holds the outcome of a captured command execution.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// LookPath resolves the absolute path of the given executable, refusing
// relative-directory matches.
func LookPath(name string) (string, error) {
	path, err := safeexec.LookPath(name)
	if err != nil {
		return "", errors.E(ErrCommandNotFound, err, "looking up %q", name)
	}
	return path, nil
}

// InPath tells if the given executable can be found in the system.
func InPath(name string) bool {
	_, err := LookPath(name)
	return err == nil
}

// Command builds a command for the given executable, resolving it through
// LookPath. The command does not inherit the process stdin; callers that
// need interactive execution use Interactive. The context cancels the
// process; no deadline is imposed here.
func Command(ctx context.Context, name string, args []string, workdir string) (*exec.Cmd, error) {
	path, err := LookPath(name)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = workdir
	return cmd, nil
}

// Capture runs the command capturing stdout and stderr and returns the
// result. A non-zero exit returns an ErrFailed error carrying the exit code
// and the captured stderr; the partial result is returned alongside it.
func Capture(cmd *exec.Cmd) (Result, error) {
	logger := log.With().
		Str("action", "run.Capture()").
		Str("cmd", strings.Join(cmd.Args, " ")).
		Str("workdir", cmd.Dir).
		Logger()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().Msg("running")

	err := cmd.Run()
	res := Result{
		ExitCode: exitCode(cmd),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err != nil {
		return res, errors.E(ErrFailed, err, "running %s (exit code %d): %s",
			strings.Join(cmd.Args, " "), res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return res, nil
}

// Interactive runs the command attached to the given streams so the
// operator sees live output and can answer the tool's own prompts. It
// returns the exit code of the process.
func Interactive(cmd *exec.Cmd, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	logger := log.With().
		Str("action", "run.Interactive()").
		Str("cmd", strings.Join(cmd.Args, " ")).
		Str("workdir", cmd.Dir).
		Logger()

	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Debug().Msg("running")

	err := cmd.Run()
	code := exitCode(cmd)
	if err != nil {
		return code, errors.E(ErrFailed, err, "running %s (exit code %d)",
			strings.Join(cmd.Args, " "), code)
	}
	return code, nil
}

// exitCode is safe to call even when the process never started.
func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
