// Package action keeps track of the side effects of a multi-step operation
// so that they can be reverted when a later step fails.
package action

// Action is a step that has already been performed.
// Rollback reverts its effect.
type Action interface {
	Rollback() error
}

type ActionFunc func() error

func (action ActionFunc) Rollback() error {
	return action()
}
