package releases

import "fmt"

// ErrNotOnTrunk is returned when a release is attempted
// while a branch other than the trunk branch is checked out.
type ErrNotOnTrunk struct {
	current string
	trunk   string
}

func (err *ErrNotOnTrunk) Error() string {
	return fmt.Sprintf(
		"you can only increment the version on branch '%v'; current branch is '%v'",
		err.trunk, err.current)
}

func (err *ErrNotOnTrunk) CurrentBranch() string {
	return err.current
}

func (err *ErrNotOnTrunk) TrunkBranch() string {
	return err.trunk
}
