package gitutil

import (
	// Stdlib
	"bytes"
	"fmt"

	// Internal
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/log"
	"github.com/setup-sda/sda-release/shell"
)

// Run runs git with the given arguments in dir.
// An empty dir means the current working directory.
//
// In case git exits with a non-zero status, the returned error
// is an *errs.Error with the stderr output used as the hint.
func Run(dir string, args ...string) (stdout *bytes.Buffer, err error) {
	argsList := make([]string, 2, 2+len(args))
	argsList[0], argsList[1] = "git", "--no-pager"
	argsList = append(argsList, args...)

	task := fmt.Sprintf("Run git with args = %#v", args)
	log.V(log.Debug).Log(task)
	stdout, stderr, err := shell.RunInDir(dir, argsList...)
	if err != nil {
		return nil, errs.NewErrorWithHint(task, err, stderr.String())
	}
	return stdout, nil
}

// RunCommand is like Run, but the git subcommand is passed in separately.
func RunCommand(dir, command string, args ...string) (stdout *bytes.Buffer, err error) {
	argsList := make([]string, 3, 3+len(args))
	argsList[0], argsList[1], argsList[2] = "git", "--no-pager", command
	argsList = append(argsList, args...)

	task := fmt.Sprintf("Run 'git %v' with args = %#v", command, args)
	log.V(log.Debug).Log(task)
	stdout, stderr, err := shell.RunInDir(dir, argsList...)
	if err != nil {
		return nil, errs.NewErrorWithHint(task, err, stderr.String())
	}
	return stdout, nil
}

// RepositoryRootAbsolutePath returns the absolute path of the root
// of the repository that dir belongs to.
func RepositoryRootAbsolutePath(dir string) (path string, err error) {
	task := "Get the repository root absolute path"
	stdout, err := Run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errs.NewError(task, err)
	}
	return string(bytes.TrimSpace(stdout.Bytes())), nil
}
