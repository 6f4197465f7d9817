/*
Increment the project version and release it.

  sda-release version bump [-github_release] [-open] {major|minor|patch}

Description

Increment the version stored in the primary manifest (deno.json by default)
and mirror it into the secondary manifest (package.json by default).
The change is then committed, pushed and tagged as vMAJOR.MINOR.PATCH.
Only the new tag is pushed, never all local tags.

The command refuses to run unless the trunk branch (main by default) is checked out.
Be aware that every pending change in the working tree is committed together
with the version change.

In case -github_release is set, a GitHub release is created for the new tag.
The GITHUB_TOKEN environment variable must contain a token that is allowed
to create releases in the upstream repository.

In case -open is set, the release page is opened in the web browser.
Without -github_release this is the page for drafting a new release.

Steps

This command goes through the following steps:

  1. Make sure the trunk branch is checked out.
  2. Read the current version from the primary manifest.
  3. Write the incremented version into both manifests.
  4. Stage everything and commit with message vX.Y.Z.
  5. Push the current branch.
  6. Create tag vX.Y.Z and push it to the configured remote.
  7. Create the GitHub release in case -github_release is set.
  8. Open the release page in case -open is set.

In case anything fails before the commit is created, the manifests
are restored and unstaged again.
*/
package bumpCmd
