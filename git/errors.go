package git

import "fmt"

type ErrRemoteNotFound struct {
	remote string
}

func (err *ErrRemoteNotFound) Error() string {
	return fmt.Sprintf("git remote '%v' not configured", err.remote)
}
