// Package vm defines the boundary between the block executor and the
// transaction interpreter. The executor never interprets instructions itself;
// it hands transactions to an Interpreter and records the outcomes.
package vm

//go:generate mockgen -source vm.go -destination vm_mocks.go -package vm

import (
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
)

// ProgramStateKind classifies how a program run ended.
type ProgramStateKind uint8

const (
	// Return means the program completed and returned a word.
	Return ProgramStateKind = iota
	// ReturnData means the program completed and returned a data digest.
	ReturnData
	// Revert means the program aborted itself. A reverted transaction is
	// still included in its block and charged fees.
	Revert
)

func (k ProgramStateKind) String() string {
	switch k {
	case Return:
		return "return"
	case ReturnData:
		return "return_data"
	case Revert:
		return "revert"
	default:
		return fmt.Sprintf("program_state(%d)", uint8(k))
	}
}

// ProgramState is the final state of an executed program.
type ProgramState struct {
	Kind  ProgramStateKind
	Value uint64
	Data  []byte
}

func (s ProgramState) String() string {
	if s.Kind == ReturnData {
		return fmt.Sprintf("%s(%x)", s.Kind, s.Data)
	}
	return fmt.Sprintf("%s(%d)", s.Kind, s.Value)
}

// Storage is the narrow view of chain state an interpreter may read during
// execution.
type Storage interface {
	// ContractUtxo returns the current UTXO of a contract. The second result
	// is false if the contract is unknown.
	ContractUtxo(id types.ContractID) (types.UtxoID, bool, error)
}

// Interpreter runs transaction scripts and input predicates.
//
// A script that reverts is reported through the returned ProgramState, not
// through the error: reverts are a normal outcome of execution. The error
// return is reserved for engine faults (an *InterpreterError), which the
// executor treats as fatal to the whole block.
type Interpreter interface {
	// Run executes the transaction's script against the given storage view
	// and returns its final program state.
	Run(tx *types.Transaction, storage Storage) (*ProgramState, error)

	// CheckPredicates evaluates every input predicate of the transaction.
	// A non-nil error means at least one predicate did not validate.
	CheckPredicates(tx *types.Transaction) error
}

// InterpreterError is an engine-level fault: the interpreter itself failed,
// as opposed to the executed program reverting. Backtrace is only populated
// when backtrace collection is enabled.
type InterpreterError struct {
	Op        string
	Err       error
	Backtrace *Backtrace
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("interpreter fault during %s: %v", e.Op, e.Err)
}

func (e *InterpreterError) Unwrap() error { return e.Err }

// Backtrace captures the interpreter state at the point of a fault. It is
// large, so it is always handled by pointer and only collected on request.
type Backtrace struct {
	TxID      types.TxID
	Registers []uint64
	Memory    []byte
}

func (b *Backtrace) String() string {
	return fmt.Sprintf("backtrace for transaction %s: %d registers, %d bytes of memory",
		b.TxID.Hex(), len(b.Registers), len(b.Memory))
}
