package vm

import (
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
)

// Rule names a static validity rule a transaction can violate before any
// state is consulted.
type Rule uint8

const (
	RuleNoSpendableInput Rule = iota
	RuleDuplicateInputUtxo
	RuleDuplicateMessageNonce
	RuleMaxGasExceeded
	RuleMaxSizeExceeded
	RuleOutputsExceedInputs
)

func (r Rule) String() string {
	switch r {
	case RuleNoSpendableInput:
		return "the transaction has no spendable input"
	case RuleDuplicateInputUtxo:
		return "the transaction spends the same UTXO twice"
	case RuleDuplicateMessageNonce:
		return "the transaction spends the same message twice"
	case RuleMaxGasExceeded:
		return "the transaction exceeds the gas limit"
	case RuleMaxSizeExceeded:
		return "the transaction exceeds the size limit"
	case RuleOutputsExceedInputs:
		return "the transaction outputs exceed its inputs"
	default:
		return fmt.Sprintf("rule(%d)", uint8(r))
	}
}

// ValidityError reports the violation of a static validity rule by a
// specific transaction.
type ValidityError struct {
	Rule Rule
	TxID types.TxID
}

func (e *ValidityError) Error() string {
	return fmt.Sprintf("%s: TransactionId(%s)", e.Rule, e.TxID.Hex())
}

// CheckError is a failure of the transaction checking layer. It either wraps
// a ValidityError (a named static rule) or carries a free-form reason from a
// check that has no dedicated rule.
type CheckError struct {
	Validity *ValidityError
	Reason   string
}

// NewCheckError builds a check error with a free-form reason.
func NewCheckError(reason string) *CheckError {
	return &CheckError{Reason: reason}
}

// CheckFromValidity wraps a static rule violation as a check error. The
// display text of the result is the validity error's own text.
func CheckFromValidity(v *ValidityError) *CheckError {
	return &CheckError{Validity: v}
}

func (e *CheckError) Error() string {
	if e.Validity != nil {
		return e.Validity.Error()
	}
	return e.Reason
}

// Unwrap exposes the wrapped validity error, if any, to errors.Is/As.
func (e *CheckError) Unwrap() error {
	if e.Validity != nil {
		return e.Validity
	}
	return nil
}
