// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package github wraps the gh binary for the optional automatic-secrets
// and status flows. Failures here are downgraded to warnings at call
// sites; no project or environment operation depends on gh succeeding.
package github

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/run"
)

// ErrGH represents a failed gh invocation.
const ErrGH errors.Kind = "gh command failed"

const binName = "gh"

// IsInstalled tells if the GitHub CLI is installed.
func IsInstalled() bool {
	return run.InPath(binName)
}

// IsAuthenticated tells if the GitHub CLI holds valid credentials.
func IsAuthenticated(ctx context.Context) bool {
	cmd, err := run.Command(ctx, binName, []string{"auth", "status"}, "")
	if err != nil {
		return false
	}
	_, err = run.Capture(cmd)
	return err == nil
}

// Authenticate runs the interactive gh login flow attached to the given
// streams.
func Authenticate(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd, err := run.Command(ctx, binName, []string{"auth", "login"}, "")
	if err != nil {
		return errors.E(ErrGH, err)
	}
	if _, err := run.Interactive(cmd, stdin, stdout, stderr); err != nil {
		return errors.E(ErrGH, err, "authenticating with GitHub")
	}
	return nil
}

// SetSecret sets a repository secret, passing the value on stdin so it
// never appears in the process arguments. When repo is empty gh resolves
// the repository from the working directory.
func SetSecret(ctx context.Context, name, value, repo string) error {
	args := []string{"secret", "set", name}
	if repo != "" {
		args = append(args, "-R", repo)
	}
	cmd, err := run.Command(ctx, binName, args, "")
	if err != nil {
		return errors.E(ErrGH, err)
	}
	cmd.Stdin = strings.NewReader(value)
	if _, err := run.Capture(cmd); err != nil {
		return errors.E(ErrGH, err, "setting secret %s", name)
	}
	return nil
}

// RunList returns the most recent workflow runs of the repository as
// printed by gh.
func RunList(ctx context.Context, repo string, limit int) (string, error) {
	args := []string{"run", "list", "-R", repo, "-L", strconv.Itoa(limit)}
	cmd, err := run.Command(ctx, binName, args, "")
	if err != nil {
		return "", errors.E(ErrGH, err)
	}
	res, err := run.Capture(cmd)
	if err != nil {
		return "", errors.E(ErrGH, err, "listing workflow runs of %s", repo)
	}
	return res.Stdout, nil
}

// CurrentRepo returns the "owner/repo" of the origin remote of the git
// repository enclosing dir, or false when there is no repository, no
// origin remote, or the remote does not point at github.com.
func CurrentRepo(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", false
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", false
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", false
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL normalizes a github.com remote URL (HTTPS or SSH) to
// "owner/repo".
func ParseRemoteURL(url string) (string, bool) {
	if !strings.Contains(url, "github.com") {
		return "", false
	}
	var path string
	switch {
	case strings.HasPrefix(url, "https://"):
		path = strings.TrimPrefix(url, "https://github.com/")
	case strings.HasPrefix(url, "ssh://"):
		path = strings.TrimPrefix(url, "ssh://git@github.com/")
	default:
		// git@github.com:owner/repo.git
		parts := strings.SplitN(url, ":", 2)
		if len(parts) != 2 {
			return "", false
		}
		path = parts[1]
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if strings.Count(path, "/") != 1 {
		return "", false
	}
	return path, true
}
