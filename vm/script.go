package vm

import (
	"encoding/binary"
	"errors"

	"github.com/joaolago1113/fuel-core/types"
)

// Script opcodes. A script is one opcode byte followed by an optional 8-byte
// big-endian operand; predicates use the same encoding and validate when they
// return a non-zero word.
const (
	OpReturn     byte = 0x00
	OpReturnData byte = 0x01
	OpRevert     byte = 0x02
)

var errTruncatedScript = errors.New("script shorter than its operand")

// ScriptInterpreter is a minimal interpreter over the opcode set above. It
// exists so the tools and tests can execute blocks end to end; a full
// instruction set would slot in behind the same Interpreter interface.
type ScriptInterpreter struct{}

// NewScriptInterpreter returns the built-in minimal interpreter.
func NewScriptInterpreter() *ScriptInterpreter {
	return &ScriptInterpreter{}
}

// Run evaluates the transaction's script.
func (si *ScriptInterpreter) Run(tx *types.Transaction, storage Storage) (*ProgramState, error) {
	if len(tx.Script) == 0 {
		return &ProgramState{Kind: Return}, nil
	}
	op := tx.Script[0]
	switch op {
	case OpReturn, OpRevert:
		value, err := operand(tx.Script)
		if err != nil {
			return nil, &InterpreterError{Op: "operand decode", Err: err}
		}
		kind := Return
		if op == OpRevert {
			kind = Revert
		}
		return &ProgramState{Kind: kind, Value: value}, nil
	case OpReturnData:
		return &ProgramState{Kind: ReturnData, Data: tx.ScriptData}, nil
	default:
		return nil, &InterpreterError{
			Op:  "instruction decode",
			Err: errors.New("unknown opcode"),
		}
	}
}

// CheckPredicates evaluates every input predicate; a predicate validates when
// it returns a non-zero word.
func (si *ScriptInterpreter) CheckPredicates(tx *types.Transaction) error {
	for _, in := range tx.Inputs {
		var predicate []byte
		switch in := in.(type) {
		case *types.CoinInput:
			predicate = in.Predicate
		case *types.MessageInput:
			predicate = in.Predicate
		}
		if len(predicate) == 0 {
			continue
		}
		if predicate[0] != OpReturn {
			return errors.New("predicate did not return")
		}
		value, err := operand(predicate)
		if err != nil {
			return err
		}
		if value == 0 {
			return errors.New("predicate returned zero")
		}
	}
	return nil
}

func operand(script []byte) (uint64, error) {
	if len(script) == 1 {
		return 0, nil
	}
	if len(script) < 9 {
		return 0, errTruncatedScript
	}
	return binary.BigEndian.Uint64(script[1:9]), nil
}
