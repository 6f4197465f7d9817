package git

import (
	// Stdlib
	"bufio"
	"bytes"
	"fmt"
	"strings"

	// Internal
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/git/gitutil"
)

// Repository runs git commands in the working tree located at Dir.
// An empty Dir means the current working directory.
type Repository struct {
	Dir string
}

func NewRepository(dir string) *Repository {
	return &Repository{dir}
}

// CurrentBranch returns the name of the branch HEAD is pointing to,
// without any refs/heads/ or heads/ prefix.
func (repo *Repository) CurrentBranch() (branch string, err error) {
	task := "Get the current branch name"
	stdout, err := repo.Run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", errs.NewError(task, err)
	}
	return StripBranchPrefix(string(bytes.TrimSpace(stdout.Bytes()))), nil
}

// CommitAll stages all changes in the working tree and commits them.
func (repo *Repository) CommitAll(message string) error {
	task := "Stage all changes"
	if _, err := repo.RunCommand("add", "-A"); err != nil {
		return errs.NewError(task, err)
	}

	task = fmt.Sprintf("Commit the staged changes (message = %q)", message)
	if _, err := repo.RunCommand("commit", "-m", message); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// Unstage removes the given paths from the index,
// the working tree is left untouched.
func (repo *Repository) Unstage(paths ...string) error {
	task := fmt.Sprintf("Unstage %v", strings.Join(paths, ", "))
	args := append([]string{"--quiet", "--"}, paths...)
	if _, err := repo.RunCommand("reset", args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// Push pushes the current branch to its upstream.
func (repo *Repository) Push() error {
	task := "Push the current branch"
	if _, err := repo.RunCommand("push"); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// Tag creates a lightweight tag pointing to HEAD.
func (repo *Repository) Tag(name string) error {
	task := fmt.Sprintf("Create tag '%v'", name)
	if _, err := repo.RunCommand("tag", name); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// DeleteTag deletes the given local tag.
func (repo *Repository) DeleteTag(name string) error {
	task := fmt.Sprintf("Delete tag '%v'", name)
	if _, err := repo.RunCommand("tag", "-d", name); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// PushTag pushes the given tag, and only that tag, into remote.
func (repo *Repository) PushTag(remote, name string) error {
	task := fmt.Sprintf("Push tag '%v' to '%v'", name, remote)
	if _, err := repo.RunCommand("push", remote, "tag", name); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// ListTags lists the tags matching the given glob pattern.
func (repo *Repository) ListTags(pattern string) ([]string, error) {
	task := fmt.Sprintf("List tags matching '%v'", pattern)
	stdout, err := repo.RunCommand("tag", "--list", pattern)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	var tags []string
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			tags = append(tags, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewError(task, err)
	}
	return tags, nil
}

// RemoteURL returns the URL configured for the given remote.
func (repo *Repository) RemoteURL(remote string) (string, error) {
	key := fmt.Sprintf("remote.%v.url", remote)
	value, err := repo.GetConfigString(key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", errs.NewError(
			fmt.Sprintf("Get URL for git remote '%v'", remote), &ErrRemoteNotFound{remote})
	}
	return value, nil
}

// RootDir returns the absolute path of the repository root.
func (repo *Repository) RootDir() (string, error) {
	return gitutil.RepositoryRootAbsolutePath(repo.Dir)
}

func (repo *Repository) GetConfigString(key string) (value string, err error) {
	task := fmt.Sprintf("Run 'git config %v'", key)
	stdout, err := repo.Run("config", key)
	if err != nil {
		// git config returns exit code 1 when the key is not set.
		// This can be detected by the hint (stderr) being empty.
		// We treat this as the key being set to "".
		if ex, ok := err.(*errs.Error); ok && ex.Hint() == "" {
			return "", nil
		}
		return "", errs.NewError(task, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (repo *Repository) Run(args ...string) (stdout *bytes.Buffer, err error) {
	return gitutil.Run(repo.Dir, args...)
}

func (repo *Repository) RunCommand(command string, args ...string) (stdout *bytes.Buffer, err error) {
	return gitutil.RunCommand(repo.Dir, command, args...)
}
