package executor

import (
	"errors"
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
	"github.com/joaolago1113/fuel-core/vm"
)

// Structural and consensus-invariant failures. Any of these aborts the block
// being produced or validated; no partial result is emitted.
var (
	ErrTooManyTransactions      = errors.New("too many transactions in the block")
	ErrOutputAlreadyExists      = errors.New("output already exists")
	ErrFeeOverflow              = errors.New("the computed fee caused an integer overflow")
	ErrMintMissing              = errors.New("the block is missing `Mint` transaction")
	ErrMintFoundSecondEntry     = errors.New("found the second entry of the `Mint` transaction in the block")
	ErrMintHasUnexpectedIndex   = errors.New("the `Mint` transaction has an unexpected index")
	ErrMintIsNotLastTransaction = errors.New("the last transaction in the block is not `Mint`")
	ErrMintMismatch             = errors.New("the `Mint` transaction mismatches expectations")
	ErrCoinbaseAmountMismatch   = errors.New("coinbase amount mismatches with expected")
	ErrInvalidFeeAmount         = errors.New("the amount of charged fees is invalid")
	ErrInvalidBlockID           = errors.New("block id is invalid")
)

// TransactionIDCollisionError reports a block containing the same
// transaction twice.
type TransactionIDCollisionError struct {
	ID types.TxID
}

func (e *TransactionIDCollisionError) Error() string {
	return fmt.Sprintf("transaction id was already used: %s", e.ID.Hex())
}

// CoinbaseBalanceError reports a failure to credit the collected fees to the
// coinbase recipient.
type CoinbaseBalanceError struct {
	Err error
}

func (e *CoinbaseBalanceError) Error() string {
	return fmt.Sprintf("can't increase the balance of the coinbase contract: %v", e.Err)
}

func (e *CoinbaseBalanceError) Unwrap() error { return e.Err }

// StorageError wraps a failure of the storage layer. The cause is kept
// intact, never flattened, so callers can still unwrap it.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("got error during work with storage %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RelayerError wraps a failure of the relayer layer. The wrapped cause is
// owned by this value and never mutated after construction, so the error may
// be handed from the executing goroutine to any caller.
type RelayerError struct {
	Err error
}

func (e *RelayerError) Error() string {
	return fmt.Sprintf("got error during work with relayer %v", e.Err)
}

func (e *RelayerError) Unwrap() error { return e.Err }

// VmExecutionError reports an engine-level interpreter fault tied to a
// specific transaction. Ordinary reverts never take this form; they surface
// as a Failed transaction status instead.
type VmExecutionError struct {
	Err           error
	TransactionID types.TxID
}

func (e *VmExecutionError) Error() string {
	return fmt.Sprintf("Transaction(%s) execution error: %v", e.TransactionID.Hex(), e.Err)
}

func (e *VmExecutionError) Unwrap() error { return e.Err }

// BacktraceError carries the full interpreter backtrace of a fault. The
// backtrace is held by pointer; it is large and rare, and inlining it would
// bloat every other error value.
type BacktraceError struct {
	Backtrace *vm.Backtrace
}

// NewBacktraceError wraps an interpreter backtrace.
func NewBacktraceError(bt *vm.Backtrace) error {
	return &BacktraceError{Backtrace: bt}
}

func (e *BacktraceError) Error() string {
	return "execution error with backtrace"
}

// InvalidTransactionError wraps a failure of the transaction checking layer
// as an executor-level error.
type InvalidTransactionError struct {
	Check *vm.CheckError
}

// NewInvalidTransaction wraps a check error directly, for call sites at the
// top of the executor.
func NewInvalidTransaction(check *vm.CheckError) error {
	return &InvalidTransactionError{Check: check}
}

// InvalidTransactionFromRule wraps a static validity rule violation by
// routing it through the checking layer first, so the error shape matches
// NewInvalidTransaction without double wrapping.
func InvalidTransactionFromRule(v *vm.ValidityError) error {
	return &InvalidTransactionError{Check: vm.CheckFromValidity(v)}
}

func (e *InvalidTransactionError) Error() string {
	return e.Check.Error()
}

func (e *InvalidTransactionError) Unwrap() error { return e.Check }

// InvalidTransactionOutcomeError reports that re-execution during validation
// produced a different outcome than the block declared for a transaction.
type InvalidTransactionOutcomeError struct {
	TransactionID types.TxID
}

func (e *InvalidTransactionOutcomeError) Error() string {
	return fmt.Sprintf("transaction doesn't match expected result: %s", e.TransactionID.Hex())
}

// ContractUtxoMissingError reports a contract input for which no current
// UTXO exists in storage.
type ContractUtxoMissingError struct {
	Contract types.ContractID
}

func (e *ContractUtxoMissingError) Error() string {
	return fmt.Sprintf("no matching utxo for contract id %s", e.Contract.Hex())
}

// MessageAlreadySpentError reports an attempt to consume a message that has
// already been consumed, detected while applying state changes.
type MessageAlreadySpentError struct {
	Nonce types.Nonce
}

func (e *MessageAlreadySpentError) Error() string {
	return fmt.Sprintf("message already spent %s", e.Nonce.Hex())
}

// InputTypeMismatchError reports an output that references an input of the
// wrong kind.
type InputTypeMismatchError struct {
	Expected string
}

func (e *InputTypeMismatchError) Error() string {
	return fmt.Sprintf("expected input of type %s", e.Expected)
}
