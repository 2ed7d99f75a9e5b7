// SPDX-License-Identifier: MPL-2.0

// Package scm infers source-control metadata from the local git remote.
//
// Only GitHub remotes are recognized; anything else (including a failing
// git invocation) yields "no SCM info" rather than an error, because SCM
// metadata is best-effort publishing garnish, never a release blocker.
package scm

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Info is the structured SCM record for a recognized GitHub remote.
type Info struct {
	// User is the GitHub account or organization.
	User string
	// Repo is the repository name, without the .git suffix.
	Repo string
}

// The three GitHub remote forms we recognize.
var (
	httpsRemote = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	gitRemote   = regexp.MustCompile(`^git://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	sshRemote   = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
)

// BrowseURL returns the repository's web URL.
func (i *Info) BrowseURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", i.User, i.Repo)
}

// Connection returns the anonymous HTTPS connection string.
func (i *Info) Connection() string {
	return fmt.Sprintf("scm:git:https://github.com/%s/%s.git", i.User, i.Repo)
}

// DeveloperConnection returns the authenticated SSH connection string.
func (i *Info) DeveloperConnection() string {
	return fmt.Sprintf("scm:git:git@github.com:%s/%s.git", i.User, i.Repo)
}

// Parse extracts SCM info from a git remote URL. Returns nil for
// non-GitHub or unrecognized remotes.
func Parse(remote string) *Info {
	remote = strings.TrimSpace(remote)
	for _, re := range []*regexp.Regexp{httpsRemote, gitRemote, sshRemote} {
		if m := re.FindStringSubmatch(remote); m != nil {
			return &Info{User: m[1], Repo: m[2]}
		}
	}
	return nil
}

// Infer probes the origin remote of the repository at dir (or the current
// directory when dir is empty) and parses it. Any git failure yields nil.
func Infer(ctx context.Context, dir string) *Info {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--get-url", "origin")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	return Parse(string(out))
}
