package shell

import (
	// Stdlib
	"bytes"
	"os/exec"
)

// Run runs the given command and returns what it printed.
// The command is run in the current working directory.
func Run(args ...string) (stdout, stderr *bytes.Buffer, err error) {
	return RunInDir("", args...)
}

// RunInDir is like Run, but the command is started in dir.
// An empty dir means the current working directory.
func RunInDir(dir string, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	stdout = new(bytes.Buffer)
	stderr = new(bytes.Buffer)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err = cmd.Run()
	return
}
