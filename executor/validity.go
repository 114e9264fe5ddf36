package executor

import (
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
	"github.com/joaolago1113/fuel-core/vm"
)

// ValidityCause is the closed set of reasons a transaction's inputs can be
// invalid against current chain state.
type ValidityCause uint8

const (
	CauseCoinAlreadySpent ValidityCause = iota
	CauseCoinHasNotMatured
	CauseCoinDoesNotExist
	CauseMessageAlreadySpent
	CauseMessageSpendTooEarly
	CauseMessageDoesNotExist
	CauseMessageSenderMismatch
	CauseMessageRecipientMismatch
	CauseMessageAmountMismatch
	CauseMessageNonceMismatch
	CauseMessageDataMismatch
	CauseInvalidContractInputIndex
	CausePredicateExecutionDisabled
	CauseInvalidPredicate
	CauseValidation
)

// TransactionValidityError reports why a transaction's inputs are invalid
// against current chain state. In production and dry runs the offending
// transaction is skipped; in validation the whole block is rejected.
//
// Exactly one payload field is populated, according to Cause. Values are
// created by the constructor functions below and never mutated.
type TransactionValidityError struct {
	Cause ValidityCause

	Utxo          types.UtxoID
	Nonce         types.Nonce
	TransactionID types.TxID
	Check         *vm.CheckError
}

// CoinAlreadySpent reports a coin input that was already consumed.
func CoinAlreadySpent(utxo types.UtxoID) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseCoinAlreadySpent, Utxo: utxo}
}

// CoinHasNotMatured reports a coin spent before its maturity height.
func CoinHasNotMatured(utxo types.UtxoID) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseCoinHasNotMatured, Utxo: utxo}
}

// CoinDoesNotExist reports a coin input with no corresponding coin.
func CoinDoesNotExist(utxo types.UtxoID) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseCoinDoesNotExist, Utxo: utxo}
}

// MessageAlreadySpent reports a message input that was already consumed.
func MessageAlreadySpent(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageAlreadySpent, Nonce: nonce}
}

// MessageSpendTooEarly reports a message whose DA height the current block
// has not reached yet.
func MessageSpendTooEarly(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageSpendTooEarly, Nonce: nonce}
}

// MessageDoesNotExist reports a message input unknown to the relayer.
func MessageDoesNotExist(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageDoesNotExist, Nonce: nonce}
}

// MessageSenderMismatch reports a message input whose sender disagrees with
// the relayer's record.
func MessageSenderMismatch(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageSenderMismatch, Nonce: nonce}
}

// MessageRecipientMismatch reports a message input whose recipient disagrees
// with the relayer's record.
func MessageRecipientMismatch(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageRecipientMismatch, Nonce: nonce}
}

// MessageAmountMismatch reports a message input whose amount disagrees with
// the relayer's record.
func MessageAmountMismatch(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageAmountMismatch, Nonce: nonce}
}

// MessageNonceMismatch reports a message input whose nonce disagrees with
// the relayer's record.
func MessageNonceMismatch(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageNonceMismatch, Nonce: nonce}
}

// MessageDataMismatch reports a message input whose data disagrees with the
// relayer's record.
func MessageDataMismatch(nonce types.Nonce) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseMessageDataMismatch, Nonce: nonce}
}

// InvalidContractInputIndex reports a contract output pointing at an invalid
// input.
func InvalidContractInputIndex(utxo types.UtxoID) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseInvalidContractInputIndex, Utxo: utxo}
}

// PredicateExecutionDisabled reports a transaction with predicate inputs
// while predicate execution is disabled.
func PredicateExecutionDisabled(id types.TxID) *TransactionValidityError {
	return &TransactionValidityError{Cause: CausePredicateExecutionDisabled, TransactionID: id}
}

// InvalidPredicate reports a transaction containing a predicate that failed
// to validate.
func InvalidPredicate(id types.TxID) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseInvalidPredicate, TransactionID: id}
}

// ValidityFromCheck wraps a checking-layer error as an input-validity error,
// for call sites deep in validity checking.
func ValidityFromCheck(check *vm.CheckError) *TransactionValidityError {
	return &TransactionValidityError{Cause: CauseValidation, Check: check}
}

// ValidityFromRule wraps a static validity rule violation by routing it
// through the checking layer, so both sources produce the same shape.
func ValidityFromRule(v *vm.ValidityError) *TransactionValidityError {
	return ValidityFromCheck(vm.CheckFromValidity(v))
}

func (e *TransactionValidityError) Error() string {
	switch e.Cause {
	case CauseCoinAlreadySpent:
		return fmt.Sprintf("coin input was already spent: %s", e.Utxo)
	case CauseCoinHasNotMatured:
		return fmt.Sprintf("coin has not yet reached maturity: %s", e.Utxo)
	case CauseCoinDoesNotExist:
		return fmt.Sprintf("the specified coin doesn't exist: %s", e.Utxo)
	case CauseMessageAlreadySpent:
		return fmt.Sprintf("the specified message was already spent: %s", e.Nonce.Hex())
	case CauseMessageSpendTooEarly:
		return fmt.Sprintf("message is not yet spendable, as its DA height is newer than this block allows: %s", e.Nonce.Hex())
	case CauseMessageDoesNotExist:
		return fmt.Sprintf("the specified message doesn't exist: %s", e.Nonce.Hex())
	case CauseMessageSenderMismatch:
		return fmt.Sprintf("the input message sender doesn't match the relayer message sender: %s", e.Nonce.Hex())
	case CauseMessageRecipientMismatch:
		return fmt.Sprintf("the input message recipient doesn't match the relayer message recipient: %s", e.Nonce.Hex())
	case CauseMessageAmountMismatch:
		return fmt.Sprintf("the input message amount doesn't match the relayer message amount: %s", e.Nonce.Hex())
	case CauseMessageNonceMismatch:
		return fmt.Sprintf("the input message nonce doesn't match the relayer message nonce: %s", e.Nonce.Hex())
	case CauseMessageDataMismatch:
		return fmt.Sprintf("the input message data doesn't match the relayer message data: %s", e.Nonce.Hex())
	case CauseInvalidContractInputIndex:
		return fmt.Sprintf("contract output index isn't valid: %s", e.Utxo)
	case CausePredicateExecutionDisabled:
		return fmt.Sprintf("the transaction contains predicate inputs which aren't enabled: %s", e.TransactionID.Hex())
	case CauseInvalidPredicate:
		return fmt.Sprintf("the transaction contains a predicate which failed to validate: TransactionId(%s)", e.TransactionID.Hex())
	case CauseValidation:
		return fmt.Sprintf("transaction validity: %v", e.Check)
	default:
		return fmt.Sprintf("transaction validity cause(%d)", uint8(e.Cause))
	}
}

// Unwrap exposes the wrapped check error, if any, to errors.Is/As.
func (e *TransactionValidityError) Unwrap() error {
	if e.Check != nil {
		return e.Check
	}
	return nil
}
