package releases

import (
	// Stdlib
	"fmt"

	// Internal
	"github.com/setup-sda/sda-release/action"
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/git"
	"github.com/setup-sda/sda-release/log"
	"github.com/setup-sda/sda-release/manifest"
	"github.com/setup-sda/sda-release/version"
)

// Repository is the source control the release is recorded in.
// git.Repository is the implementation used outside of tests.
type Repository interface {
	CurrentBranch() (string, error)
	CommitAll(message string) error
	Unstage(paths ...string) error
	Push() error
	Tag(name string) error
	PushTag(remote, name string) error
	ListTags(pattern string) ([]string, error)
}

// Config is satisfied by *config.Config.
type Config interface {
	TrunkBranchName() string
	RemoteName() string
	PrimaryManifestPath() string
	SecondaryManifestPath() string
}

// Driver increments the project version and publishes the result.
type Driver struct {
	config Config
	repo   Repository
}

func NewDriver(config Config, repo Repository) *Driver {
	return &Driver{config, repo}
}

// EnsureTrunk returns *ErrNotOnTrunk unless the current branch is the trunk branch.
func (driver *Driver) EnsureTrunk() error {
	task := "Make sure the trunk branch is checked out"
	log.Run(task)

	current, err := driver.currentBranch()
	if err != nil {
		return errs.NewError(task, err)
	}

	trunk := driver.config.TrunkBranchName()
	if current != trunk {
		return errs.NewError(task, &ErrNotOnTrunk{current, trunk})
	}
	return nil
}

// currentBranch returns the current branch name with any refs/heads/
// or heads/ prefix removed, whatever the Repository implementation returns.
func (driver *Driver) currentBranch() (string, error) {
	branch, err := driver.repo.CurrentBranch()
	if err != nil {
		return "", err
	}
	return git.StripBranchPrefix(branch), nil
}

// CurrentVersion returns the version stored in the primary manifest.
// The secondary manifest and the repository are not touched.
func (driver *Driver) CurrentVersion() (*version.Version, error) {
	path := driver.config.PrimaryManifestPath()
	task := fmt.Sprintf("Get the current version from '%v'", path)

	primary, err := manifest.Read(path)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	ver, err := primary.Version()
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return ver, nil
}

// IncrementVersion bumps the version stored in the manifests, commits
// the change, pushes it and tags the new commit.
//
// Nothing is modified in case kind is invalid or the trunk branch
// is not checked out. The manifests are restored in case anything fails
// before the release commit is created. Once the commit exists, nothing
// is reverted any more and the returned error tells the user what is left
// to be done manually.
func (driver *Driver) IncrementVersion(kind version.Kind) (ver *version.Version, err error) {
	// Validate the input before touching anything.
	task := "Check the version increment type"
	if _, err := version.ParseKind(string(kind)); err != nil {
		return nil, errs.NewError(task, err)
	}

	// Releases are only allowed on the trunk branch.
	if err := driver.EnsureTrunk(); err != nil {
		return nil, err
	}

	// Read the manifests and compute the next version.
	primary, secondary, err := driver.readManifests()
	if err != nil {
		return nil, err
	}

	task = fmt.Sprintf("Get the current version from '%v'", primary.Path())
	current, err := primary.Version()
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	next, err := current.Bump(kind)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	log.Log(fmt.Sprintf("Incrementing version %v -> %v", current, next))

	// Rollback machinery.
	chain := action.NewActionChain()
	defer chain.RollbackOnError(&err)

	// Write the new version into the manifests.
	for _, m := range []*manifest.Manifest{primary, secondary} {
		task := fmt.Sprintf("Write version %v into '%v'", next, m.Path())
		log.Run(task)
		if err := m.SetVersion(next); err != nil {
			return nil, errs.NewError(task, err)
		}
		act, err := m.Write()
		if err != nil {
			return nil, errs.NewError(task, err)
		}
		chain.PushTask(fmt.Sprintf("Restore '%v'", m.Path()), act)
	}

	// Commit. Unstage the manifests in case the commit fails,
	// the content is restored right after that by the chain.
	tag := next.ReleaseTagString()
	chain.PushTask("Unstage the manifests", action.ActionFunc(func() error {
		return driver.repo.Unstage(primary.Path(), secondary.Path())
	}))

	task = fmt.Sprintf("Commit the release (message = %q)", tag)
	log.Run(task)
	if err := driver.repo.CommitAll(tag); err != nil {
		return nil, errs.NewError(task, err)
	}

	// The release commit exists, there is nothing to roll back from now on.
	chain.Commit()

	task = "Push the current branch"
	log.Run(task)
	if err := driver.repo.Push(); err != nil {
		hint := fmt.Sprintf(`
The release commit %v was created, but it could not be pushed.
Once the problem is fixed, finish the release manually:

  git push
  git tag %v
  git push %v tag %v

`, tag, tag, driver.config.RemoteName(), tag)
		return nil, errs.NewErrorWithHint(task, err, hint)
	}

	task = fmt.Sprintf("Create tag '%v'", tag)
	log.Run(task)
	if err := driver.repo.Tag(tag); err != nil {
		hint := fmt.Sprintf(`
The release commit %v was pushed, but it could not be tagged.
Once the problem is fixed, finish the release manually:

  git tag %v
  git push %v tag %v

`, tag, tag, driver.config.RemoteName(), tag)
		return nil, errs.NewErrorWithHint(task, err, hint)
	}

	task = fmt.Sprintf("Push tag '%v'", tag)
	log.Run(task)
	if err := driver.repo.PushTag(driver.config.RemoteName(), tag); err != nil {
		hint := fmt.Sprintf(`
The release tag %v exists locally, but it could not be pushed.
Once the problem is fixed, push it manually:

  git push %v tag %v

`, tag, driver.config.RemoteName(), tag)
		return nil, errs.NewErrorWithHint(task, err, hint)
	}

	return next, nil
}

// readManifests reads both manifests. The secondary manifest is read
// before anything is written so that a broken document fails the release
// while the working tree is still untouched.
func (driver *Driver) readManifests() (primary, secondary *manifest.Manifest, err error) {
	task := "Read the manifests"

	primary, err = manifest.Read(driver.config.PrimaryManifestPath())
	if err != nil {
		return nil, nil, errs.NewError(task, err)
	}

	secondary, err = manifest.Read(driver.config.SecondaryManifestPath())
	if err != nil {
		return nil, nil, errs.NewError(task, err)
	}

	return primary, secondary, nil
}
