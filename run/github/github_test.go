// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package github_test

import (
	"testing"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/madlambda/spells/assert"

	"github.com/djup-io/djup/run/github"
)

func TestParseRemoteURL(t *testing.T) {
	t.Parallel()

	type testcase struct {
		url  string
		want string
		ok   bool
	}

	for _, tc := range []testcase{
		{url: "https://github.com/octo/acme.git", want: "octo/acme", ok: true},
		{url: "https://github.com/octo/acme", want: "octo/acme", ok: true},
		{url: "git@github.com:octo/acme.git", want: "octo/acme", ok: true},
		{url: "ssh://git@github.com/octo/acme.git", want: "octo/acme", ok: true},
		{url: "https://gitlab.com/octo/acme.git", ok: false},
		{url: "git@github.com", ok: false},
		{url: "https://github.com/acme.git", ok: false},
	} {
		got, ok := github.ParseRemoteURL(tc.url)
		if ok != tc.ok {
			t.Errorf("ParseRemoteURL(%q) ok = %v, want %v", tc.url, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseRemoteURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestCurrentRepoOutsideGitRepository(t *testing.T) {
	t.Parallel()

	_, ok := github.CurrentRepo(t.TempDir())
	assert.IsTrue(t, !ok)
}

func TestCurrentRepoReadsOriginRemote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	assert.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octo/acme.git"},
	})
	assert.NoError(t, err)

	got, ok := github.CurrentRepo(dir)
	assert.IsTrue(t, ok)
	assert.EqualStrings(t, "octo/acme", got)
}

func TestCurrentRepoWithoutOrigin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	assert.NoError(t, err)

	_, ok := github.CurrentRepo(dir)
	assert.IsTrue(t, !ok)
}
