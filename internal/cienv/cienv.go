// SPDX-License-Identifier: MPL-2.0

// Package cienv classifies the CI environment a build is running in.
//
// CI providers expose overlapping but differently-named environment
// variables for the same concepts (current tag, current branch, secure
// context). This package centralizes the precedence order so the rest of
// the codebase never special-cases a provider directly. All functions are
// pure over an injected Env lookup; absent variables read as "".
package cienv

import (
	"os"
	"strings"
)

// Environment variable names consumed by the classifier, grouped by concern.
const (
	// Secure-context gate.
	EnvTravisSecureVars = "TRAVIS_SECURE_ENV_VARS"
	EnvBuildReason      = "BUILD_REASON"
	EnvPGPSecret        = "PGP_SECRET"

	// Tag detection.
	EnvTravisTag        = "TRAVIS_TAG"
	EnvCircleTag        = "CIRCLE_TAG"
	EnvGitlabCommitTag  = "CI_COMMIT_TAG"
	EnvAzureSourceRef   = "BUILD_SOURCEBRANCH"
	EnvGithubRef        = "GITHUB_REF"

	// Branch detection.
	EnvTravisBranch       = "TRAVIS_BRANCH"
	EnvCircleBranch       = "CIRCLE_BRANCH"
	EnvGitlabCommitBranch = "CI_COMMIT_BRANCH"

	// Provider identity.
	EnvAzureTFBuild    = "TF_BUILD"
	EnvGithubAction    = "GITHUB_ACTION"
	EnvCircleCI        = "CIRCLECI"
	EnvGitlabCI        = "GITLAB_CI"
)

const (
	// TagRefPrefix marks a ref-style variable as a tag push.
	TagRefPrefix = "refs/tags/"

	// Unknown is the placeholder returned when no provider variable is set.
	Unknown = "<unknown>"
)

const (
	// ProviderTravis is Travis CI.
	ProviderTravis Provider = "travis"
	// ProviderAzure is Azure Pipelines.
	ProviderAzure Provider = "azure"
	// ProviderGithub is GitHub Actions.
	ProviderGithub Provider = "github"
	// ProviderCircle is CircleCI.
	ProviderCircle Provider = "circleci"
	// ProviderGitlab is GitLab CI.
	ProviderGitlab Provider = "gitlab"
	// ProviderUnknown means no known provider variable was found.
	ProviderUnknown Provider = Unknown
)

type (
	// Env looks up an environment variable by name, returning "" when unset.
	// Injecting the lookup (instead of reading ambient process state) lets
	// tests supply arbitrary variable sets deterministically.
	Env func(key string) string

	// Provider identifies a CI provider.
	Provider string
)

// OS returns an Env backed by the process environment.
func OS() Env { return os.Getenv }

// tagVars and branchVars fix the provider precedence order for
// ReleaseTag and CurrentBranch. Provider-specific variables come before
// the generic ref-style fallbacks.
var (
	tagVars    = []string{EnvTravisTag, EnvCircleTag, EnvGitlabCommitTag, EnvAzureSourceRef, EnvGithubRef}
	branchVars = []string{EnvTravisBranch, EnvAzureSourceRef, EnvGithubRef, EnvCircleBranch, EnvGitlabCommitBranch}
)

// IsSecure reports whether the current build has access to restricted
// variables: either a CI system flags the build as secure, or the signing
// secret itself is present. A false result must gate the entire release
// flow.
func IsSecure(env Env) bool {
	return env(EnvTravisSecureVars) == "true" ||
		env(EnvBuildReason) == "IndividualCI" ||
		env(EnvPGPSecret) != ""
}

// IsTag reports whether the current run was triggered by a tag push.
// Provider-specific tag variables are consulted first, then the ref-style
// variables are checked for the tag-ref prefix.
func IsTag(env Env) bool {
	if env(EnvTravisTag) != "" || env(EnvCircleTag) != "" || env(EnvGitlabCommitTag) != "" {
		return true
	}
	return strings.HasPrefix(env(EnvAzureSourceRef), TagRefPrefix) ||
		strings.HasPrefix(env(EnvGithubRef), TagRefPrefix)
}

// ReleaseTag returns the first non-empty value among the provider tag
// variables, or Unknown when none are set. Ref-style values keep their
// refs/tags/ prefix; use StripRefPrefix for the bare name.
func ReleaseTag(env Env) string {
	return firstNonEmpty(env, tagVars)
}

// CurrentBranch returns the first non-empty value among the provider
// branch variables, or Unknown when none are set.
func CurrentBranch(env Env) string {
	return firstNonEmpty(env, branchVars)
}

// IsSnapshotVersion reports whether the version string is marked as
// provisional with the -SNAPSHOT suffix.
func IsSnapshotVersion(version string) bool {
	return strings.HasSuffix(version, "-SNAPSHOT")
}

// IsAzure reports whether the build runs on Azure Pipelines.
func IsAzure(env Env) bool { return env(EnvAzureTFBuild) == "True" }

// IsGithub reports whether the build runs on GitHub Actions.
func IsGithub(env Env) bool { return env(EnvGithubAction) != "" }

// IsCircleCI reports whether the build runs on CircleCI.
func IsCircleCI(env Env) bool { return env(EnvCircleCI) == "true" }

// IsGitlab reports whether the build runs on GitLab CI.
func IsGitlab(env Env) bool { return env(EnvGitlabCI) == "true" }

// Identify returns the CI provider the build runs on, or ProviderUnknown.
func Identify(env Env) Provider {
	switch {
	case IsAzure(env):
		return ProviderAzure
	case IsGithub(env):
		return ProviderGithub
	case IsCircleCI(env):
		return ProviderCircle
	case IsGitlab(env):
		return ProviderGitlab
	case env(EnvTravisSecureVars) != "" || env(EnvTravisTag) != "" || env(EnvTravisBranch) != "":
		return ProviderTravis
	default:
		return ProviderUnknown
	}
}

// StripRefPrefix removes a leading refs/tags/ or refs/heads/ from a
// ref-style value, returning bare tag or branch names unchanged.
func StripRefPrefix(ref string) string {
	ref = strings.TrimPrefix(ref, TagRefPrefix)
	return strings.TrimPrefix(ref, "refs/heads/")
}

func firstNonEmpty(env Env, keys []string) string {
	for _, key := range keys {
		if v := env(key); v != "" {
			return v
		}
	}
	return Unknown
}
