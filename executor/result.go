package executor

import (
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
	"github.com/joaolago1113/fuel-core/vm"
)

// ExecutionResult is the outcome of executing one block. It is built by a
// single goroutine and handed to the caller as a completed, immutable value.
type ExecutionResult struct {
	// Block contains only the transactions that were accepted.
	Block *types.Block

	// SkippedTransactions lists the transactions that were rejected before
	// inclusion and did not affect state, in the order rejection was
	// discovered. None of them appear in Block.
	SkippedTransactions []SkippedTransaction

	// TxStatus holds one entry per transaction included in Block, in block
	// order.
	TxStatus []TransactionExecutionStatus
}

// SkippedTransaction pairs a rejected transaction's id with the error that
// excluded it.
type SkippedTransaction struct {
	TransactionID types.TxID
	Err           error
}

// TransactionExecutionStatus is the per-transaction outcome of a transaction
// that made it into the block.
type TransactionExecutionStatus struct {
	ID     types.TxID
	Result TransactionExecutionResult
}

// TransactionExecutionResult records whether an included transaction
// succeeded or failed during execution. A transaction that reverted is
// Failed but stays in the block and is charged fees; a transaction rejected
// before inclusion is never represented here.
type TransactionExecutionResult struct {
	state  *vm.ProgramState
	reason string
	failed bool
}

// Success builds the result of a successfully executed transaction. The
// program state may be nil for transactions without a script.
func Success(state *vm.ProgramState) TransactionExecutionResult {
	return TransactionExecutionResult{state: state}
}

// Failed builds the result of a transaction whose execution failed but which
// was still included in the block.
func Failed(state *vm.ProgramState, reason string) TransactionExecutionResult {
	return TransactionExecutionResult{state: state, reason: reason, failed: true}
}

// Succeeded reports whether the transaction executed successfully.
func (r TransactionExecutionResult) Succeeded() bool { return !r.failed }

// State returns the final VM program state, if any.
func (r TransactionExecutionResult) State() *vm.ProgramState { return r.state }

// Reason returns the human-readable failure reason; empty on success.
func (r TransactionExecutionResult) Reason() string { return r.reason }

func (r TransactionExecutionResult) String() string {
	if r.failed {
		return fmt.Sprintf("failed (%s)", r.reason)
	}
	if r.state != nil {
		return fmt.Sprintf("success (%s)", r.state)
	}
	return "success"
}
