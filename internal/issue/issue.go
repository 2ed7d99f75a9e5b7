// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InsecureContextId Id = iota + 1
	PGPSecretMissingId
	KeyImportFailedId
	NotTagNotSnapshotId
	ConfigLoadFailedId
	HookFailedId
	StagingSyncFailedId
	BundleReleaseFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also: "
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	insecureContextIssue = &Issue{
		id: InsecureContextId,
		mdMsg: `
# No access to secret variables!

This build has no secure CI context, so stagehand will not attempt a
release. Forked pull requests usually run without secrets, and that is
exactly when publishing must not happen.

## How stagehand decides:
- ` + "`TRAVIS_SECURE_ENV_VARS=true`" + ` (Travis)
- ` + "`BUILD_REASON=IndividualCI`" + ` (Azure Pipelines)
- ` + "`PGP_SECRET`" + ` present (any provider)

## Things you can try:
- Add PGP_SECRET to your pipeline's secret variables
- Make sure secrets are exposed to this job (they are withheld from
  fork builds on most providers)`,
	}

	pgpSecretMissingIssue = &Issue{
		id: PGPSecretMissingId,
		mdMsg: `
# PGP_SECRET is not set!

stagehand needs the base64-encoded PGP private key in the PGP_SECRET
environment variable to sign artifacts.

## Exporting the key:
~~~
$ gpg --export-secret-keys KEY_ID | base64
~~~

Store the output as the PGP_SECRET secret variable of your pipeline.
On Azure Pipelines, store a base64-encoded zip of your .gnupg
directory instead.`,
	}

	keyImportFailedIssue = &Issue{
		id: KeyImportFailedId,
		mdMsg: `
# Failed to import the PGP key!

The key material in PGP_SECRET could not be imported into gpg.

## Common causes:
- The secret is not valid base64 (watch out for wrapped lines)
- The decoded payload is not a private key export
- gpg is not installed on the build image

## Things you can try:
- Re-export the key: ` + "`gpg --export-secret-keys KEY_ID | base64 -w0`" + `
- Run with --verbose to see the gpg diagnostics`,
	}

	notTagNotSnapshotIssue = &Issue{
		id: NotTagNotSnapshotId,
		mdMsg: `
# Branch build with a non-snapshot version!

This run is not a tag push, but the version does not end in -SNAPSHOT.
Publishing a fixed version from a branch commit would overwrite or
shadow a real release, so stagehand does nothing.

## Things you can try:
- Use a -SNAPSHOT version on branches and let tag pushes carry the
  release version
- Push a tag if you intended to cut a release`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the stagehand configuration file.

## Configuration file locations:
- Linux: ~/.config/stagehand/config.cue
- macOS: ~/Library/Application Support/stagehand/config.cue
- Windows: %APPDATA%\stagehand\config.cue
- Or ./config.cue next to your build

## Things you can try:
- Create a default configuration:
~~~
$ stagehand config init
~~~
- Check the CUE syntax of the file

## Example configuration:
~~~cue
staging_dir: "target/staging"
files: ["dist/*.jar", "dist/*.pom"]

hooks: {
  pre_release: "echo preparing"
}
~~~`,
	}

	hookFailedIssue = &Issue{
		id: HookFailedId,
		mdMsg: `
# A release hook failed!

One of the configured hook scripts exited with a non-zero status, so
the release was aborted.

## Things you can try:
- Run the hook snippet manually to reproduce
- Hooks run in a built-in POSIX interpreter; avoid bashisms
- Run with --verbose to see each hook's output`,
	}

	stagingSyncFailedIssue = &Issue{
		id: StagingSyncFailedId,
		mdMsg: `
# Failed to sync the staging bundle!

Artifacts could not be copied into the staging bundle directory.

## Common causes:
- The staging_dir is not writable
- A configured file glob matches nothing
- Disk full on the build agent

## Things you can try:
- Check staging_dir in your configuration
- Verify the file globs against your build output`,
	}

	bundleReleaseFailedIssue = &Issue{
		id: BundleReleaseFailedId,
		mdMsg: `
# Bundle release failed!

The configured bundle release script exited with a non-zero status.
The staged artifacts are still in the staging directory; fix the
script and re-run the release.

## Things you can try:
- Run the bundle.release_script snippet manually
- Check credentials for your staging repository`,
	}

	issues = map[Id]*Issue{
		insecureContextIssue.Id():     insecureContextIssue,
		pgpSecretMissingIssue.Id():    pgpSecretMissingIssue,
		keyImportFailedIssue.Id():     keyImportFailedIssue,
		notTagNotSnapshotIssue.Id():   notTagNotSnapshotIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		hookFailedIssue.Id():          hookFailedIssue,
		stagingSyncFailedIssue.Id():   stagingSyncFailedIssue,
		bundleReleaseFailedIssue.Id(): bundleReleaseFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
