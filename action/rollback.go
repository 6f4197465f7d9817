package action

import (
	// Stdlib
	"errors"
	"fmt"
	"strings"

	// Internal
	"github.com/setup-sda/sda-release/errs"
	"github.com/setup-sda/sda-release/log"
)

var ErrRollbackFailed = errors.New("failed to roll back changes")

type record struct {
	task   string
	action Action
}

// ActionChain collects actions so that they can be rolled back
// in the reverse order they were pushed in.
//
// Once the operation reaches the point where its changes must be kept,
// call Commit. The chain is empty after that and rolling back is a no-op.
type ActionChain struct {
	records []record
}

func NewActionChain() *ActionChain {
	return &ActionChain{}
}

func (chain *ActionChain) Push(action Action) {
	chain.PushTask("", action)
}

// PushTask pushes an action. The task is logged when the action is rolled back.
func (chain *ActionChain) PushTask(task string, action Action) {
	if action != nil {
		chain.records = append(chain.records, record{task, action})
	}
}

func (chain *ActionChain) Len() int {
	return len(chain.records)
}

// Commit drops the actions pushed so far.
func (chain *ActionChain) Commit() {
	chain.records = nil
}

// Rollback runs all the actions, the last one pushed first.
// A failing action does not stop the rollback. The error returned
// lists the tasks that failed.
func (chain *ActionChain) Rollback() error {
	var failed []string
	for i := len(chain.records) - 1; i >= 0; i-- {
		rec := chain.records[i]
		if rec.task != "" {
			log.Rollback(rec.task)
		}
		if err := rec.action.Rollback(); err != nil {
			errs.Log(err)
			task := rec.task
			if task == "" {
				task = "unnamed action"
			}
			failed = append(failed, task)
		}
	}
	chain.records = nil

	if len(failed) != 0 {
		hint := fmt.Sprintf(
			"\nThe following steps could not be reverted:\n\n  %v\n\n",
			strings.Join(failed, "\n  "))
		return errs.NewErrorWithHint("Roll back changes", ErrRollbackFailed, hint)
	}
	return nil
}

// RollbackOnError is meant to be deferred:
//
//     defer chain.RollbackOnError(&err)
//
// A failed rollback is logged, the original error is kept.
func (chain *ActionChain) RollbackOnError(err *error) {
	if *err == nil {
		return
	}
	if ex := chain.Rollback(); ex != nil {
		errs.Log(ex)
	}
}
