package executor

import (
	"github.com/joaolago1113/fuel-core/state"
)

// Uncommitted pairs an execution result with the pending changes that would
// persist it. The executor never commits on its own; the caller decides
// between Commit and Discard on the changes.
type Uncommitted[Changes any] struct {
	result  ExecutionResult
	changes Changes
}

// NewUncommitted pairs a result with its pending changes.
func NewUncommitted[Changes any](result ExecutionResult, changes Changes) *Uncommitted[Changes] {
	return &Uncommitted[Changes]{result: result, changes: changes}
}

// Result gives access to the execution result without releasing the changes.
func (u *Uncommitted[Changes]) Result() *ExecutionResult { return &u.result }

// Into splits the pairing into the result and the pending changes.
func (u *Uncommitted[Changes]) Into() (ExecutionResult, Changes) {
	return u.result, u.changes
}

// UncommittedResult is the uncommitted pairing produced by the block
// executor: the result plus the open state transaction.
type UncommittedResult = Uncommitted[state.Transaction]
