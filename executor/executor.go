// Package executor implements the block executor and the result and failure
// contract it shares with its callers: the block producer, the block
// validator and the dry-run service.
package executor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/op/go-logging"

	"github.com/joaolago1113/fuel-core/logger"
	"github.com/joaolago1113/fuel-core/relayer"
	"github.com/joaolago1113/fuel-core/state"
	"github.com/joaolago1113/fuel-core/types"
	"github.com/joaolago1113/fuel-core/vm"
)

// Params are the chain parameters the executor enforces.
type Params struct {
	// MaxTransactions caps the number of transactions per block, the
	// coinbase included. Zero means no cap.
	MaxTransactions int

	// MaxGasPerTx caps a single transaction's gas limit. Zero means no cap.
	// A transaction over the cap should never have been included, so the
	// violation is fatal to the block in every mode.
	MaxGasPerTx uint64

	// PredicatesEnabled allows transactions with predicate inputs.
	PredicatesEnabled bool

	// BaseAssetID is the asset fees are paid and minted in.
	BaseAssetID types.AssetID

	// CoinbaseRecipient receives the fees collected by a produced block.
	CoinbaseRecipient types.Address

	// CollectBacktraces attaches the full interpreter backtrace to engine
	// faults instead of the plain fault error.
	CollectBacktraces bool

	// LogLevel configures the executor's logger.
	LogLevel string
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		MaxTransactions:   65535,
		PredicatesEnabled: true,
		LogLevel:          "info",
	}
}

// Executor executes blocks against chain state. It owns no state of its own;
// every execution opens one state transaction and hands it back uncommitted.
type Executor struct {
	db          state.Database
	relayer     relayer.Relayer
	interpreter vm.Interpreter
	params      Params
	log         *logging.Logger
}

// New creates a block executor over the given collaborators.
func New(db state.Database, rel relayer.Relayer, interpreter vm.Interpreter, params Params) *Executor {
	return &Executor{
		db:          db,
		relayer:     rel,
		interpreter: interpreter,
		params:      params,
		log:         logger.NewLogger(params.LogLevel, "executor"),
	}
}

// ExecuteWithoutCommit executes a block and returns the result paired with
// the still-open state transaction. The caller commits or discards.
func (e *Executor) ExecuteWithoutCommit(block ExecutionBlock) (*UncommittedResult, error) {
	st, err := e.db.Begin()
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	result, err := e.executeBlock(st, block)
	if err != nil {
		st.Discard()
		return nil, err
	}
	return NewUncommitted(*result, st), nil
}

// ExecuteAndCommit executes a block and persists its state changes.
func (e *Executor) ExecuteAndCommit(block ExecutionBlock) (*ExecutionResult, error) {
	uncommitted, err := e.ExecuteWithoutCommit(block)
	if err != nil {
		return nil, err
	}
	result, changes := uncommitted.Into()
	if err := changes.Commit(); err != nil {
		return nil, &StorageError{Err: err}
	}
	return &result, nil
}

// DryRun executes a block speculatively and always discards the state
// changes, returning only the per-transaction statuses.
func (e *Executor) DryRun(block *types.PartialBlock) ([]TransactionExecutionStatus, error) {
	uncommitted, err := e.ExecuteWithoutCommit(DryRun[*types.PartialBlock, *types.Block](block))
	if err != nil {
		return nil, err
	}
	result, changes := uncommitted.Into()
	changes.Discard()
	return result.TxStatus, nil
}

func (e *Executor) executeBlock(st state.Transaction, block ExecutionBlock) (*ExecutionResult, error) {
	var declared *types.Block
	if b, ok := block.ValidationPayload(); ok {
		declared = b
	}

	// Reduce both entry shapes to the partial block the loop runs on.
	kind, partial := Single(MapValidation(block, (*types.Block).Partial)).Split()
	header := partial.Header
	txs := partial.Transactions

	if e.params.MaxTransactions > 0 && len(txs) > e.params.MaxTransactions {
		return nil, ErrTooManyTransactions
	}

	toExecute := txs
	var declaredMint *types.Transaction
	if kind == KindValidation {
		mintIdx := -1
		for i, tx := range txs {
			if tx.IsMint() {
				if mintIdx >= 0 {
					return nil, ErrMintFoundSecondEntry
				}
				mintIdx = i
			}
		}
		if mintIdx < 0 {
			return nil, ErrMintMissing
		}
		if mintIdx != len(txs)-1 {
			return nil, ErrMintIsNotLastTransaction
		}
		declaredMint = txs[mintIdx]
		if declaredMint.MintOutputIndex != 0 {
			return nil, ErrMintHasUnexpectedIndex
		}
		if declaredMint.MintAssetID != e.params.BaseAssetID {
			return nil, ErrMintMismatch
		}
		toExecute = txs[:mintIdx]
	}

	result := &ExecutionResult{}
	executed := make([]*types.Transaction, 0, len(toExecute)+1)
	seen := make(map[types.TxID]struct{}, len(toExecute))
	var totalFee uint64

	for _, tx := range toExecute {
		txID := tx.ID()
		if _, ok := seen[txID]; ok {
			return nil, &TransactionIDCollisionError{ID: txID}
		}
		seen[txID] = struct{}{}

		status, fee, err := e.attemptTransaction(st, &header, tx, txID, kind)
		if err != nil {
			var validity *TransactionValidityError
			if errors.As(err, &validity) && kind != KindValidation {
				e.log.Debugf("skipping transaction %s: %v", txID.Hex(), err)
				result.SkippedTransactions = append(result.SkippedTransactions,
					SkippedTransaction{TransactionID: txID, Err: err})
				continue
			}
			return nil, err
		}

		newTotal := totalFee + fee
		if newTotal < totalFee {
			return nil, ErrFeeOverflow
		}
		totalFee = newTotal

		executed = append(executed, tx)
		result.TxStatus = append(result.TxStatus, *status)
	}

	switch kind {
	case KindProduction:
		mint := types.NewMint(totalFee, e.params.BaseAssetID, e.params.CoinbaseRecipient)
		if err := e.applyMint(st, mint); err != nil {
			return nil, err
		}
		executed = append(executed, mint)
		result.TxStatus = append(result.TxStatus,
			TransactionExecutionStatus{ID: mint.ID(), Result: Success(nil)})
	case KindValidation:
		if declaredMint.MintAmount != totalFee {
			return nil, ErrCoinbaseAmountMismatch
		}
		if err := e.applyMint(st, declaredMint); err != nil {
			return nil, err
		}
		executed = append(executed, declaredMint)
		result.TxStatus = append(result.TxStatus,
			TransactionExecutionStatus{ID: declaredMint.ID(), Result: Success(nil)})
	case KindDryRun:
		// A dry run mints nothing; nothing is committed anyway.
	}

	final := (&types.PartialBlock{Header: header, Transactions: executed}).Generate()
	if kind == KindValidation {
		if final.ID() != declared.ID() {
			return nil, ErrInvalidBlockID
		}
		final = declared
	}
	result.Block = final

	e.log.Noticef("executed block %d (%s): %d transactions, %d skipped",
		header.Height, kind, len(result.TxStatus), len(result.SkippedTransactions))
	return result, nil
}

// attemptTransaction checks, runs and applies a single transaction. All
// reads and validity decisions happen before the first state write, so a
// rejected transaction leaves no trace.
func (e *Executor) attemptTransaction(
	st state.Transaction,
	header *types.BlockHeader,
	tx *types.Transaction,
	txID types.TxID,
	kind ExecutionKind,
) (*TransactionExecutionStatus, uint64, error) {
	if tx.IsMint() {
		// The coinbase is created by the executor itself; one arriving with
		// the input transactions is rejected up front.
		return nil, 0, ValidityFromCheck(vm.NewCheckError("unexpected coinbase `Mint` transaction"))
	}

	if e.params.MaxGasPerTx > 0 && tx.GasLimit > e.params.MaxGasPerTx {
		return nil, 0, InvalidTransactionFromRule(&vm.ValidityError{Rule: vm.RuleMaxGasExceeded, TxID: txID})
	}

	fee, ok := tx.Fee()
	if !ok {
		return nil, 0, ErrInvalidFeeAmount
	}

	if err := e.checkTransaction(st, header, tx, txID); err != nil {
		return nil, 0, err
	}

	programState, err := e.runScript(st, tx, txID)
	if err != nil {
		return nil, 0, err
	}
	reverted := programState != nil && programState.Kind == vm.Revert

	change, err := computeChange(tx, txID, e.params.BaseAssetID, fee, reverted)
	if err != nil {
		return nil, 0, err
	}

	if err := e.applyEffects(st, tx, txID, reverted, change, kind); err != nil {
		return nil, 0, err
	}

	status := &TransactionExecutionStatus{ID: txID}
	if reverted {
		status.Result = Failed(programState, fmt.Sprintf("execution reverted: %s", programState))
	} else {
		status.Result = Success(programState)
	}
	return status, fee, nil
}

// checkTransaction validates a transaction's shape and inputs against chain
// state without mutating anything.
func (e *Executor) checkTransaction(st state.Transaction, header *types.BlockHeader, tx *types.Transaction, txID types.TxID) error {
	spendable := false
	seenUtxos := make(map[types.UtxoID]struct{}, len(tx.Inputs))
	seenNonces := make(map[types.Nonce]struct{})
	for _, in := range tx.Inputs {
		switch in := in.(type) {
		case *types.CoinInput:
			spendable = true
			if _, ok := seenUtxos[in.Utxo]; ok {
				return ValidityFromRule(&vm.ValidityError{Rule: vm.RuleDuplicateInputUtxo, TxID: txID})
			}
			seenUtxos[in.Utxo] = struct{}{}
		case *types.MessageInput:
			spendable = true
			if _, ok := seenNonces[in.Nonce]; ok {
				return ValidityFromRule(&vm.ValidityError{Rule: vm.RuleDuplicateMessageNonce, TxID: txID})
			}
			seenNonces[in.Nonce] = struct{}{}
		case *types.ContractInput:
			if _, ok := seenUtxos[in.Utxo]; ok {
				return ValidityFromRule(&vm.ValidityError{Rule: vm.RuleDuplicateInputUtxo, TxID: txID})
			}
			seenUtxos[in.Utxo] = struct{}{}
		}
	}
	if !spendable {
		return ValidityFromRule(&vm.ValidityError{Rule: vm.RuleNoSpendableInput, TxID: txID})
	}

	// Outputs referencing inputs must point at the right input kind before
	// any state is touched.
	for i, out := range tx.Outputs {
		contractOut, ok := out.(*types.ContractOutput)
		if !ok {
			continue
		}
		if int(contractOut.InputIndex) >= len(tx.Inputs) {
			return InvalidContractInputIndex(types.UtxoIDFor(txID, uint16(i)))
		}
		if _, ok := tx.Inputs[contractOut.InputIndex].(*types.ContractInput); !ok {
			return &InputTypeMismatchError{Expected: "contract"}
		}
	}

	if tx.HasPredicates() {
		if !e.params.PredicatesEnabled {
			return PredicateExecutionDisabled(txID)
		}
		if err := e.interpreter.CheckPredicates(tx); err != nil {
			return InvalidPredicate(txID)
		}
	}

	for _, in := range tx.Inputs {
		switch in := in.(type) {
		case *types.CoinInput:
			rec, ok, err := st.Coin(in.Utxo)
			if err != nil {
				return &StorageError{Err: err}
			}
			if !ok {
				return CoinDoesNotExist(in.Utxo)
			}
			if rec.Spent {
				return CoinAlreadySpent(in.Utxo)
			}
			if rec.Coin.Maturity > header.Height {
				return CoinHasNotMatured(in.Utxo)
			}
		case *types.MessageInput:
			spent, err := st.MessageSpent(in.Nonce)
			if err != nil {
				return &StorageError{Err: err}
			}
			if spent {
				return MessageAlreadySpent(in.Nonce)
			}
			msg, ok, err := e.relayer.Message(in.Nonce)
			if err != nil {
				return &RelayerError{Err: err}
			}
			if !ok {
				return MessageDoesNotExist(in.Nonce)
			}
			if msg.DaHeight > header.DaHeight {
				return MessageSpendTooEarly(in.Nonce)
			}
			if msg.Sender != in.Sender {
				return MessageSenderMismatch(in.Nonce)
			}
			if msg.Recipient != in.Recipient {
				return MessageRecipientMismatch(in.Nonce)
			}
			if msg.Amount != in.Amount {
				return MessageAmountMismatch(in.Nonce)
			}
			if msg.Nonce != in.Nonce {
				return MessageNonceMismatch(in.Nonce)
			}
			if !bytes.Equal(msg.Data, in.Data) {
				return MessageDataMismatch(in.Nonce)
			}
		case *types.ContractInput:
			utxo, ok, err := st.ContractUtxo(in.Contract)
			if err != nil {
				return &StorageError{Err: err}
			}
			if !ok {
				return &ContractUtxoMissingError{Contract: in.Contract}
			}
			if utxo != in.Utxo {
				return InvalidContractInputIndex(in.Utxo)
			}
		}
	}
	return nil
}

// runScript executes the transaction's script. Reverts surface through the
// program state; engine faults abort the block.
func (e *Executor) runScript(st state.Transaction, tx *types.Transaction, txID types.TxID) (*vm.ProgramState, error) {
	if len(tx.Script) == 0 {
		return nil, nil
	}
	programState, err := e.interpreter.Run(tx, st)
	if err != nil {
		var fault *vm.InterpreterError
		if errors.As(err, &fault) && e.params.CollectBacktraces && fault.Backtrace != nil {
			return nil, NewBacktraceError(fault.Backtrace)
		}
		return nil, &VmExecutionError{Err: err, TransactionID: txID}
	}
	return programState, nil
}

// computeChange derives the amount of every change output. A reverted
// transaction refunds all inputs minus the fee; a successful one refunds
// what its coin outputs did not consume.
func computeChange(tx *types.Transaction, txID types.TxID, base types.AssetID, fee uint64, reverted bool) (map[int]uint64, error) {
	inTotals := map[types.AssetID]uint64{}
	add := func(asset types.AssetID, amount uint64) error {
		sum := inTotals[asset] + amount
		if sum < inTotals[asset] {
			return ValidityFromCheck(vm.NewCheckError("input amounts overflow"))
		}
		inTotals[asset] = sum
		return nil
	}
	for _, in := range tx.Inputs {
		switch in := in.(type) {
		case *types.CoinInput:
			if err := add(in.AssetID, in.Amount); err != nil {
				return nil, err
			}
		case *types.MessageInput:
			if err := add(base, in.Amount); err != nil {
				return nil, err
			}
		}
	}

	spent := map[types.AssetID]uint64{}
	if !reverted {
		for _, out := range tx.Outputs {
			coinOut, ok := out.(*types.CoinOutput)
			if !ok {
				continue
			}
			sum := spent[coinOut.AssetID] + coinOut.Amount
			if sum < spent[coinOut.AssetID] {
				return nil, ValidityFromCheck(vm.NewCheckError("output amounts overflow"))
			}
			spent[coinOut.AssetID] = sum
		}
	}
	feeSum := spent[base] + fee
	if feeSum < spent[base] {
		return nil, ErrFeeOverflow
	}
	spent[base] = feeSum

	for asset, amount := range spent {
		if amount > inTotals[asset] {
			return nil, ValidityFromRule(&vm.ValidityError{Rule: vm.RuleOutputsExceedInputs, TxID: txID})
		}
	}

	change := map[int]uint64{}
	seenChange := map[types.AssetID]struct{}{}
	for i, out := range tx.Outputs {
		changeOut, ok := out.(*types.ChangeOutput)
		if !ok {
			continue
		}
		if _, ok := seenChange[changeOut.AssetID]; ok {
			return nil, ValidityFromCheck(vm.NewCheckError("duplicate change output for asset " + changeOut.AssetID.Hex()))
		}
		seenChange[changeOut.AssetID] = struct{}{}
		change[i] = inTotals[changeOut.AssetID] - spent[changeOut.AssetID]
	}
	return change, nil
}

// applyEffects writes the transaction's state changes: inputs are consumed
// even when the script reverted, so fees are still charged.
func (e *Executor) applyEffects(
	st state.Transaction,
	tx *types.Transaction,
	txID types.TxID,
	reverted bool,
	change map[int]uint64,
	kind ExecutionKind,
) error {
	for _, in := range tx.Inputs {
		switch in := in.(type) {
		case *types.CoinInput:
			if err := st.SpendCoin(in.Utxo); err != nil {
				return &StorageError{Err: err}
			}
		case *types.MessageInput:
			spent, err := st.MessageSpent(in.Nonce)
			if err != nil {
				return &StorageError{Err: err}
			}
			if spent {
				return &MessageAlreadySpentError{Nonce: in.Nonce}
			}
			if err := st.SpendMessage(in.Nonce); err != nil {
				return &StorageError{Err: err}
			}
		}
	}

	for i, out := range tx.Outputs {
		utxo := types.UtxoIDFor(txID, uint16(i))
		switch out := out.(type) {
		case *types.CoinOutput:
			if reverted {
				continue
			}
			coin := &types.Coin{Owner: out.To, Amount: out.Amount, AssetID: out.AssetID}
			if err := st.AddCoin(utxo, coin); err != nil {
				if errors.Is(err, state.ErrCoinExists) {
					return ErrOutputAlreadyExists
				}
				return &StorageError{Err: err}
			}
		case *types.ChangeOutput:
			amount := change[i]
			if kind == KindValidation {
				if out.Amount != amount {
					return &InvalidTransactionOutcomeError{TransactionID: txID}
				}
			} else {
				out.Amount = amount
			}
			coin := &types.Coin{Owner: out.To, Amount: amount, AssetID: out.AssetID}
			if err := st.AddCoin(utxo, coin); err != nil {
				if errors.Is(err, state.ErrCoinExists) {
					return ErrOutputAlreadyExists
				}
				return &StorageError{Err: err}
			}
		case *types.ContractOutput:
			if reverted {
				continue
			}
			contractIn := tx.Inputs[out.InputIndex].(*types.ContractInput)
			if err := st.SetContractUtxo(contractIn.Contract, utxo); err != nil {
				return &StorageError{Err: err}
			}
		}
	}
	return nil
}

// applyMint credits the collected fees to the coinbase recipient.
func (e *Executor) applyMint(st state.Transaction, mint *types.Transaction) error {
	if mint.MintAmount == 0 {
		return nil
	}
	utxo := types.UtxoIDFor(mint.ID(), mint.MintOutputIndex)
	coin := &types.Coin{
		Owner:   mint.MintRecipient,
		Amount:  mint.MintAmount,
		AssetID: mint.MintAssetID,
	}
	if err := st.AddCoin(utxo, coin); err != nil {
		if errors.Is(err, state.ErrCoinExists) {
			return ErrOutputAlreadyExists
		}
		return &CoinbaseBalanceError{Err: err}
	}
	return nil
}
