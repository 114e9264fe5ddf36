package executor

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/mock/gomock"

	"github.com/joaolago1113/fuel-core/relayer"
	"github.com/joaolago1113/fuel-core/state"
	"github.com/joaolago1113/fuel-core/types"
	"github.com/joaolago1113/fuel-core/vm"
)

var (
	baseAsset  = common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000a55")
	otherAsset = common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000bee")
	alice      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob        = common.HexToAddress("0x00000000000000000000000000000000000000b0")
	producer   = common.HexToAddress("0x00000000000000000000000000000000000000cc")
)

func testParams() Params {
	return Params{
		MaxTransactions:   1024,
		PredicatesEnabled: true,
		BaseAssetID:       baseAsset,
		CoinbaseRecipient: producer,
		LogLevel:          "critical",
	}
}

func newTestExecutor(t *testing.T, rel relayer.Relayer, interpreter vm.Interpreter, params Params) (*Executor, state.Database) {
	t.Helper()
	db := state.NewMemoryDatabase()
	t.Cleanup(func() { db.Close() })
	if rel == nil {
		rel = relayer.NewInMemory(0)
	}
	if interpreter == nil {
		interpreter = vm.NewScriptInterpreter()
	}
	return New(db, rel, interpreter, params), db
}

func seedCoin(t *testing.T, db state.Database, utxo types.UtxoID, owner types.Address, amount uint64, asset types.AssetID) {
	t.Helper()
	st, err := db.Begin()
	if err != nil {
		t.Fatalf("cannot begin seeding transaction; %v", err)
	}
	if err := st.AddCoin(utxo, &types.Coin{Owner: owner, Amount: amount, AssetID: asset}); err != nil {
		t.Fatalf("cannot seed coin; %v", err)
	}
	if err := st.Commit(); err != nil {
		t.Fatalf("cannot commit seed; %v", err)
	}
}

// coinTx spends a single coin and pays fee gasPrice*gasLimit.
func coinTx(utxo types.UtxoID, amount, gasPrice, gasLimit uint64, outputs ...types.Output) *types.Transaction {
	return &types.Transaction{
		Inputs: []types.Input{
			&types.CoinInput{Utxo: utxo, Owner: alice, Amount: amount, AssetID: baseAsset},
		},
		Outputs:  outputs,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
	}
}

func produceBlock(t *testing.T, exec *Executor, partial *types.PartialBlock) *ExecutionResult {
	t.Helper()
	result, err := exec.ExecuteAndCommit(Production[*types.PartialBlock, *types.Block](partial))
	if err != nil {
		t.Fatalf("block production failed; %v", err)
	}
	return result
}

func TestProduction_ValidTransactionsEndUpInTheBlock(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxos := make([]types.UtxoID, 3)
	txs := make([]*types.Transaction, 3)
	for i := range utxos {
		utxos[i] = types.UtxoIDFor(common.BytesToHash([]byte{byte(i + 1)}), 0)
		seedCoin(t, db, utxos[i], alice, 100, baseAsset)
		txs[i] = coinTx(utxos[i], 100, 1, 10)
	}

	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: txs,
	})

	if got := len(result.SkippedTransactions); got != 0 {
		t.Errorf("no transaction should be skipped; got: %d", got)
	}
	// Three user transactions plus the coinbase mint.
	if got := len(result.Block.Transactions); got != 4 {
		t.Fatalf("unexpected block size; got: %d, want: 4", got)
	}
	if got := len(result.TxStatus); got != 4 {
		t.Fatalf("unexpected status count; got: %d, want: 4", got)
	}
	for i, status := range result.TxStatus {
		if !status.Result.Succeeded() {
			t.Errorf("transaction %d failed unexpectedly: %s", i, status.Result.Reason())
		}
		if status.ID != result.Block.Transactions[i].ID() {
			t.Errorf("status %d does not line up with block order", i)
		}
	}

	mint := result.Block.Transactions[3]
	if !mint.IsMint() {
		t.Fatal("the last transaction must be the coinbase mint")
	}
	if got := mint.MintAmount; got != 30 {
		t.Errorf("unexpected coinbase amount; got: %d, want: 30", got)
	}
	if mint.MintRecipient != producer {
		t.Errorf("coinbase paid to the wrong recipient; got: %s", mint.MintRecipient.Hex())
	}
}

func TestProduction_DoubleSpendIsSkippedNotFatal(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)

	first := coinTx(utxo, 100, 1, 10)
	second := coinTx(utxo, 100, 2, 10)

	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{first, second},
	})

	if got := len(result.SkippedTransactions); got != 1 {
		t.Fatalf("exactly one transaction must be skipped; got: %d", got)
	}
	skipped := result.SkippedTransactions[0]
	if skipped.TransactionID != second.ID() {
		t.Errorf("the second spender must be the one skipped; got: %s", skipped.TransactionID.Hex())
	}
	var validity *TransactionValidityError
	if !errors.As(skipped.Err, &validity) || validity.Cause != CauseCoinAlreadySpent {
		t.Errorf("unexpected skip reason; got: %v", skipped.Err)
	}
	for _, tx := range result.Block.Transactions {
		if tx.ID() == second.ID() {
			t.Error("a skipped transaction must not appear in the block")
		}
	}
}

func TestProduction_UnknownCoinIsSkipped(t *testing.T) {
	exec, _ := newTestExecutor(t, nil, nil, testParams())

	tx := coinTx(types.UtxoIDFor(common.BytesToHash([]byte{9}), 0), 100, 1, 1)
	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	if got := len(result.SkippedTransactions); got != 1 {
		t.Fatalf("the transaction must be skipped; got: %d skips", got)
	}
	var validity *TransactionValidityError
	if !errors.As(result.SkippedTransactions[0].Err, &validity) || validity.Cause != CauseCoinDoesNotExist {
		t.Errorf("unexpected skip reason; got: %v", result.SkippedTransactions[0].Err)
	}
}

func TestProduction_ChangeOutputReceivesTheRemainder(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)

	tx := coinTx(utxo, 100, 1, 10,
		&types.CoinOutput{To: bob, Amount: 40, AssetID: baseAsset},
		&types.ChangeOutput{To: alice, AssetID: baseAsset},
	)
	produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	// 100 in, 40 paid out, 10 fee: the change output holds 50.
	changeUtxo := types.UtxoIDFor(tx.ID(), 1)
	rec, ok, err := db.Coin(changeUtxo)
	if err != nil || !ok {
		t.Fatalf("change coin missing; ok: %v, err: %v", ok, err)
	}
	if rec.Coin.Amount != 50 {
		t.Errorf("unexpected change amount; got: %d, want: 50", rec.Coin.Amount)
	}
	if rec.Coin.Owner != alice {
		t.Errorf("change paid to the wrong owner; got: %s", rec.Coin.Owner.Hex())
	}
}

func TestProduction_OutputsExceedingInputsAreSkipped(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 50, baseAsset)

	tx := coinTx(utxo, 50, 1, 10,
		&types.CoinOutput{To: bob, Amount: 45, AssetID: baseAsset},
	)
	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	if got := len(result.SkippedTransactions); got != 1 {
		t.Fatalf("the overspending transaction must be skipped; got: %d skips", got)
	}
	var rule *vm.ValidityError
	if !errors.As(result.SkippedTransactions[0].Err, &rule) || rule.Rule != vm.RuleOutputsExceedInputs {
		t.Errorf("unexpected skip reason; got: %v", result.SkippedTransactions[0].Err)
	}
	// The rejected transaction must not have touched the coin.
	rec, ok, err := db.Coin(utxo)
	if err != nil || !ok {
		t.Fatalf("seeded coin disappeared; ok: %v, err: %v", ok, err)
	}
	if rec.Spent {
		t.Error("a skipped transaction must leave no state change behind")
	}
}

func TestProduction_TooManyTransactions(t *testing.T) {
	params := testParams()
	params.MaxTransactions = 1
	exec, _ := newTestExecutor(t, nil, nil, params)

	block := Production[*types.PartialBlock, *types.Block](&types.PartialBlock{
		Transactions: []*types.Transaction{coinTx(types.UtxoID{}, 1, 1, 1), coinTx(types.UtxoID{}, 2, 1, 1)},
	})
	if _, err := exec.ExecuteAndCommit(block); !errors.Is(err, ErrTooManyTransactions) {
		t.Errorf("unexpected error; got: %v, want: %v", err, ErrTooManyTransactions)
	}
}

func TestProduction_GasCapViolationIsFatal(t *testing.T) {
	params := testParams()
	params.MaxGasPerTx = 5
	exec, db := newTestExecutor(t, nil, nil, params)

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)
	tx := coinTx(utxo, 100, 1, 10)

	block := Production[*types.PartialBlock, *types.Block](&types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})
	_, err := exec.ExecuteAndCommit(block)
	var invalid *InvalidTransactionError
	if !errors.As(err, &invalid) {
		t.Fatalf("unexpected error; got: %v", err)
	}
	var rule *vm.ValidityError
	if !errors.As(err, &rule) || rule.Rule != vm.RuleMaxGasExceeded {
		t.Errorf("the gas rule must be reachable; got: %v", err)
	}
}

func TestProduction_DuplicateTransactionIsFatal(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)
	tx := coinTx(utxo, 100, 1, 10)

	block := Production[*types.PartialBlock, *types.Block](&types.PartialBlock{
		Transactions: []*types.Transaction{tx, tx},
	})
	_, err := exec.ExecuteAndCommit(block)
	var collision *TransactionIDCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("unexpected error; got: %v", err)
	}
	if collision.ID != tx.ID() {
		t.Errorf("collision reports the wrong id; got: %s", collision.ID.Hex())
	}
}

func TestProduction_RevertedTransactionStaysInBlockAndPaysFees(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)

	tx := coinTx(utxo, 100, 1, 10,
		&types.CoinOutput{To: bob, Amount: 40, AssetID: baseAsset},
		&types.ChangeOutput{To: alice, AssetID: baseAsset},
	)
	tx.Script = []byte{vm.OpRevert}

	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	if got := len(result.SkippedTransactions); got != 0 {
		t.Fatalf("a reverted transaction is included, not skipped; got: %d skips", got)
	}
	status := result.TxStatus[0]
	if status.Result.Succeeded() {
		t.Fatal("a reverted transaction must be reported as failed")
	}
	if ps := status.Result.State(); ps == nil || ps.Kind != vm.Revert {
		t.Errorf("the revert program state must be attached; got: %v", ps)
	}

	// The input is consumed and the fee charged, but the coin output is not
	// created; the change refunds everything except the fee.
	rec, _, _ := db.Coin(utxo)
	if !rec.Spent {
		t.Error("the reverted transaction must still consume its input")
	}
	if _, ok, _ := db.Coin(types.UtxoIDFor(tx.ID(), 0)); ok {
		t.Error("a reverted transaction must not create its coin outputs")
	}
	change, ok, _ := db.Coin(types.UtxoIDFor(tx.ID(), 1))
	if !ok {
		t.Fatal("the change output must exist even after a revert")
	}
	if change.Coin.Amount != 90 {
		t.Errorf("unexpected refund; got: %d, want: 90", change.Coin.Amount)
	}
	mint := result.Block.Transactions[len(result.Block.Transactions)-1]
	if mint.MintAmount != 10 {
		t.Errorf("the fee must still be collected; got: %d, want: 10", mint.MintAmount)
	}
}

func TestProduction_InterpreterFaultAbortsTheBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := vm.NewMockInterpreter(ctrl)
	exec, db := newTestExecutor(t, nil, interpreter, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)
	tx := coinTx(utxo, 100, 1, 10)
	tx.Script = []byte{vm.OpReturn}

	fault := &vm.InterpreterError{Op: "memory read", Err: errors.New("out of bounds")}
	interpreter.EXPECT().Run(tx, gomock.Any()).Return(nil, fault)

	block := Production[*types.PartialBlock, *types.Block](&types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})
	_, err := exec.ExecuteAndCommit(block)
	var vmErr *VmExecutionError
	if !errors.As(err, &vmErr) {
		t.Fatalf("unexpected error; got: %v", err)
	}
	if vmErr.TransactionID != tx.ID() {
		t.Errorf("fault attributed to the wrong transaction; got: %s", vmErr.TransactionID.Hex())
	}
}

func TestProduction_BacktraceIsCollectedOnRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := vm.NewMockInterpreter(ctrl)
	params := testParams()
	params.CollectBacktraces = true
	exec, db := newTestExecutor(t, nil, interpreter, params)

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)
	tx := coinTx(utxo, 100, 1, 10)
	tx.Script = []byte{vm.OpReturn}

	fault := &vm.InterpreterError{
		Op:        "jump",
		Err:       errors.New("target out of range"),
		Backtrace: &vm.Backtrace{TxID: tx.ID(), Registers: make([]uint64, 64)},
	}
	interpreter.EXPECT().Run(tx, gomock.Any()).Return(nil, fault)

	block := Production[*types.PartialBlock, *types.Block](&types.PartialBlock{
		Transactions: []*types.Transaction{tx},
	})
	_, err := exec.ExecuteAndCommit(block)
	var bt *BacktraceError
	if !errors.As(err, &bt) {
		t.Fatalf("unexpected error; got: %v", err)
	}
	if bt.Backtrace.TxID != tx.ID() {
		t.Errorf("backtrace for the wrong transaction; got: %s", bt.Backtrace.TxID.Hex())
	}
}

func TestProduction_MessageInputsSpendRelayedMessages(t *testing.T) {
	nonce := common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000099")
	msg := &types.Message{Sender: alice, Recipient: bob, Nonce: nonce, Amount: 100, DaHeight: 4}
	rel := relayer.NewInMemory(10, msg)
	exec, db := newTestExecutor(t, rel, nil, testParams())

	tx := &types.Transaction{
		Inputs: []types.Input{
			&types.MessageInput{Sender: alice, Recipient: bob, Nonce: nonce, Amount: 100},
		},
		GasPrice: 1,
		GasLimit: 10,
	}
	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1, DaHeight: 5},
		Transactions: []*types.Transaction{tx},
	})

	if got := len(result.SkippedTransactions); got != 0 {
		t.Fatalf("the message spend must succeed; skipped: %v", result.SkippedTransactions[0].Err)
	}
	spent, err := db.MessageSpent(nonce)
	if err != nil || !spent {
		t.Errorf("the message must be marked spent; got: (%v, %v)", spent, err)
	}

	// Spending the same message again in a later block is rejected.
	again := &types.Transaction{
		Inputs: []types.Input{
			&types.MessageInput{Sender: alice, Recipient: bob, Nonce: nonce, Amount: 100},
		},
		GasPrice: 2,
		GasLimit: 10,
	}
	result = produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 2, DaHeight: 5},
		Transactions: []*types.Transaction{again},
	})
	if got := len(result.SkippedTransactions); got != 1 {
		t.Fatalf("the replay must be skipped; got: %d skips", got)
	}
	var validity *TransactionValidityError
	if !errors.As(result.SkippedTransactions[0].Err, &validity) || validity.Cause != CauseMessageAlreadySpent {
		t.Errorf("unexpected skip reason; got: %v", result.SkippedTransactions[0].Err)
	}
}

func TestProduction_MessageAheadOfDaHeightIsSkipped(t *testing.T) {
	nonce := common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000099")
	msg := &types.Message{Sender: alice, Recipient: bob, Nonce: nonce, Amount: 100, DaHeight: 9}
	exec, _ := newTestExecutor(t, relayer.NewInMemory(10, msg), nil, testParams())

	tx := &types.Transaction{
		Inputs: []types.Input{
			&types.MessageInput{Sender: alice, Recipient: bob, Nonce: nonce, Amount: 100},
		},
		GasPrice: 1,
		GasLimit: 1,
	}
	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1, DaHeight: 5},
		Transactions: []*types.Transaction{tx},
	})

	if got := len(result.SkippedTransactions); got != 1 {
		t.Fatalf("the early spend must be skipped; got: %d skips", got)
	}
	var validity *TransactionValidityError
	if !errors.As(result.SkippedTransactions[0].Err, &validity) || validity.Cause != CauseMessageSpendTooEarly {
		t.Errorf("unexpected skip reason; got: %v", result.SkippedTransactions[0].Err)
	}
}

func TestProduction_ContractInputAdvancesTheContractUtxo(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	contract := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000c0ffee00")
	coinUtxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	contractUtxo := types.UtxoIDFor(common.BytesToHash([]byte{2}), 0)

	seedCoin(t, db, coinUtxo, alice, 100, baseAsset)
	st, _ := db.Begin()
	if err := st.SetContractUtxo(contract, contractUtxo); err != nil {
		t.Fatalf("cannot seed contract utxo; %v", err)
	}
	if err := st.Commit(); err != nil {
		t.Fatalf("cannot commit seed; %v", err)
	}

	tx := &types.Transaction{
		Inputs: []types.Input{
			&types.CoinInput{Utxo: coinUtxo, Owner: alice, Amount: 100, AssetID: baseAsset},
			&types.ContractInput{Utxo: contractUtxo, Contract: contract},
		},
		Outputs: []types.Output{
			&types.ContractOutput{InputIndex: 1},
		},
		GasPrice: 1,
		GasLimit: 10,
	}
	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})
	if got := len(result.SkippedTransactions); got != 0 {
		t.Fatalf("the contract call must succeed; skipped: %v", result.SkippedTransactions[0].Err)
	}

	utxo, ok, err := db.ContractUtxo(contract)
	if err != nil || !ok {
		t.Fatalf("contract utxo missing after execution; ok: %v, err: %v", ok, err)
	}
	if want := types.UtxoIDFor(tx.ID(), 0); utxo != want {
		t.Errorf("contract utxo did not advance; got: %s, want: %s", utxo, want)
	}
}

func TestProduction_StaleContractInputIsSkipped(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	contract := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000c0ffee00")
	coinUtxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, coinUtxo, alice, 100, baseAsset)
	st, _ := db.Begin()
	st.SetContractUtxo(contract, types.UtxoIDFor(common.BytesToHash([]byte{2}), 0))
	if err := st.Commit(); err != nil {
		t.Fatalf("cannot commit seed; %v", err)
	}

	tx := &types.Transaction{
		Inputs: []types.Input{
			&types.CoinInput{Utxo: coinUtxo, Owner: alice, Amount: 100, AssetID: baseAsset},
			&types.ContractInput{Utxo: types.UtxoIDFor(common.BytesToHash([]byte{3}), 0), Contract: contract},
		},
		GasPrice: 1,
		GasLimit: 1,
	}
	result := produceBlock(t, exec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	if got := len(result.SkippedTransactions); got != 1 {
		t.Fatalf("the stale reference must be skipped; got: %d skips", got)
	}
	var validity *TransactionValidityError
	if !errors.As(result.SkippedTransactions[0].Err, &validity) || validity.Cause != CauseInvalidContractInputIndex {
		t.Errorf("unexpected skip reason; got: %v", result.SkippedTransactions[0].Err)
	}
}

func TestProduction_PredicatesGateInclusion(t *testing.T) {
	passing := []byte{vm.OpReturn, 0, 0, 0, 0, 0, 0, 0, 1}
	failing := []byte{vm.OpReturn, 0, 0, 0, 0, 0, 0, 0, 0}

	t.Run("failing predicate is skipped", func(t *testing.T) {
		exec, db := newTestExecutor(t, nil, nil, testParams())
		utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
		seedCoin(t, db, utxo, alice, 100, baseAsset)

		tx := coinTx(utxo, 100, 1, 10)
		tx.Inputs[0].(*types.CoinInput).Predicate = failing

		result := produceBlock(t, exec, &types.PartialBlock{
			Header:       types.BlockHeader{Height: 1},
			Transactions: []*types.Transaction{tx},
		})
		var validity *TransactionValidityError
		if len(result.SkippedTransactions) != 1 ||
			!errors.As(result.SkippedTransactions[0].Err, &validity) ||
			validity.Cause != CauseInvalidPredicate {
			t.Errorf("unexpected outcome; skips: %v", result.SkippedTransactions)
		}
	})

	t.Run("predicates disabled", func(t *testing.T) {
		params := testParams()
		params.PredicatesEnabled = false
		exec, db := newTestExecutor(t, nil, nil, params)
		utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
		seedCoin(t, db, utxo, alice, 100, baseAsset)

		tx := coinTx(utxo, 100, 1, 10)
		tx.Inputs[0].(*types.CoinInput).Predicate = passing

		result := produceBlock(t, exec, &types.PartialBlock{
			Header:       types.BlockHeader{Height: 1},
			Transactions: []*types.Transaction{tx},
		})
		var validity *TransactionValidityError
		if len(result.SkippedTransactions) != 1 ||
			!errors.As(result.SkippedTransactions[0].Err, &validity) ||
			validity.Cause != CausePredicateExecutionDisabled {
			t.Errorf("unexpected outcome; skips: %v", result.SkippedTransactions)
		}
	})
}

func TestDryRun_LeavesNoStateBehind(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())

	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)
	tx := coinTx(utxo, 100, 1, 10)

	statuses, err := exec.DryRun(&types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})
	if err != nil {
		t.Fatalf("dry run failed; %v", err)
	}
	if len(statuses) != 1 || !statuses[0].Result.Succeeded() {
		t.Fatalf("unexpected statuses; got: %v", statuses)
	}

	rec, ok, err := db.Coin(utxo)
	if err != nil || !ok {
		t.Fatalf("seeded coin disappeared; ok: %v, err: %v", ok, err)
	}
	if rec.Spent {
		t.Error("a dry run must not persist the spend")
	}
}

// seedLike applies the same seeds to a fresh database so validation can
// re-execute a block produced elsewhere.
func TestValidation_AcceptsAProducedBlock(t *testing.T) {
	producerExec, producerDb := newTestExecutor(t, nil, nil, testParams())
	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, producerDb, utxo, alice, 100, baseAsset)

	tx := coinTx(utxo, 100, 1, 10,
		&types.CoinOutput{To: bob, Amount: 40, AssetID: baseAsset},
		&types.ChangeOutput{To: alice, AssetID: baseAsset},
	)
	produced := produceBlock(t, producerExec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	validatorExec, validatorDb := newTestExecutor(t, nil, nil, testParams())
	seedCoin(t, validatorDb, utxo, alice, 100, baseAsset)

	result, err := validatorExec.ExecuteAndCommit(
		Validation[*types.PartialBlock](produced.Block))
	if err != nil {
		t.Fatalf("a honestly produced block must validate; %v", err)
	}
	if result.Block.ID() != produced.Block.ID() {
		t.Errorf("validation rebuilt a different block; got: %s, want: %s",
			result.Block.ID().Hex(), produced.Block.ID().Hex())
	}
}

func TestValidation_MintStructure(t *testing.T) {
	newBlock := func(txs ...*types.Transaction) *types.Block {
		return (&types.PartialBlock{
			Header:       types.BlockHeader{Height: 1},
			Transactions: txs,
		}).Generate()
	}
	mint := func(amount uint64) *types.Transaction {
		return types.NewMint(amount, baseAsset, producer)
	}

	tests := []struct {
		name  string
		block *types.Block
		want  error
	}{
		{"missing mint", newBlock(), ErrMintMissing},
		{"two mints", newBlock(mint(1), mint(2)), ErrMintFoundSecondEntry},
		{"mint not last", newBlock(mint(0), coinTx(types.UtxoID{}, 1, 1, 1)), ErrMintIsNotLastTransaction},
		{"wrong coinbase amount", newBlock(mint(5)), ErrCoinbaseAmountMismatch},
		{
			"wrong mint asset",
			newBlock(types.NewMint(0, otherAsset, producer)),
			ErrMintMismatch,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			exec, _ := newTestExecutor(t, nil, nil, testParams())
			_, err := exec.ExecuteAndCommit(Validation[*types.PartialBlock](test.block))
			if !errors.Is(err, test.want) {
				t.Errorf("unexpected error; got: %v, want: %v", err, test.want)
			}
		})
	}
}

func TestValidation_UnexpectedMintIndex(t *testing.T) {
	mint := types.NewMint(0, baseAsset, producer)
	mint.MintOutputIndex = 2
	block := (&types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{mint},
	}).Generate()

	exec, _ := newTestExecutor(t, nil, nil, testParams())
	_, err := exec.ExecuteAndCommit(Validation[*types.PartialBlock](block))
	if !errors.Is(err, ErrMintHasUnexpectedIndex) {
		t.Errorf("unexpected error; got: %v, want: %v", err, ErrMintHasUnexpectedIndex)
	}
}

func TestValidation_InvalidInputIsFatal(t *testing.T) {
	// During validation a validity failure rejects the block instead of
	// skipping the transaction.
	tx := coinTx(types.UtxoIDFor(common.BytesToHash([]byte{9}), 0), 100, 1, 1)
	block := (&types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx, types.NewMint(1, baseAsset, producer)},
	}).Generate()

	exec, _ := newTestExecutor(t, nil, nil, testParams())
	_, err := exec.ExecuteAndCommit(Validation[*types.PartialBlock](block))
	var validity *TransactionValidityError
	if !errors.As(err, &validity) || validity.Cause != CauseCoinDoesNotExist {
		t.Errorf("unexpected error; got: %v", err)
	}
}

func TestValidation_WrongDeclaredChangeIsRejected(t *testing.T) {
	producerExec, producerDb := newTestExecutor(t, nil, nil, testParams())
	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, producerDb, utxo, alice, 100, baseAsset)

	tx := coinTx(utxo, 100, 1, 10,
		&types.ChangeOutput{To: alice, AssetID: baseAsset},
	)
	produced := produceBlock(t, producerExec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{tx},
	})

	// Tamper with the declared change amount after production.
	tx.Outputs[0].(*types.ChangeOutput).Amount++

	validatorExec, validatorDb := newTestExecutor(t, nil, nil, testParams())
	seedCoin(t, validatorDb, utxo, alice, 100, baseAsset)

	_, err := validatorExec.ExecuteAndCommit(
		Validation[*types.PartialBlock](produced.Block))
	var outcome *InvalidTransactionOutcomeError
	if !errors.As(err, &outcome) {
		t.Fatalf("unexpected error; got: %v", err)
	}
	if outcome.TransactionID != tx.ID() {
		t.Errorf("mismatch attributed to the wrong transaction; got: %s", outcome.TransactionID.Hex())
	}
}

func TestValidation_TamperedHeaderIsRejected(t *testing.T) {
	producerExec, producerDb := newTestExecutor(t, nil, nil, testParams())
	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, producerDb, utxo, alice, 100, baseAsset)

	produced := produceBlock(t, producerExec, &types.PartialBlock{
		Header:       types.BlockHeader{Height: 1},
		Transactions: []*types.Transaction{coinTx(utxo, 100, 1, 10)},
	})
	produced.Block.Header.TransactionsRoot[0] ^= 0xff

	validatorExec, validatorDb := newTestExecutor(t, nil, nil, testParams())
	seedCoin(t, validatorDb, utxo, alice, 100, baseAsset)

	_, err := validatorExec.ExecuteAndCommit(
		Validation[*types.PartialBlock](produced.Block))
	if !errors.Is(err, ErrInvalidBlockID) {
		t.Errorf("unexpected error; got: %v, want: %v", err, ErrInvalidBlockID)
	}
}

func TestExecuteWithoutCommit_DiscardKeepsTheDatabaseClean(t *testing.T) {
	exec, db := newTestExecutor(t, nil, nil, testParams())
	utxo := types.UtxoIDFor(common.BytesToHash([]byte{1}), 0)
	seedCoin(t, db, utxo, alice, 100, baseAsset)

	uncommitted, err := exec.ExecuteWithoutCommit(
		Production[*types.PartialBlock, *types.Block](&types.PartialBlock{
			Header:       types.BlockHeader{Height: 1},
			Transactions: []*types.Transaction{coinTx(utxo, 100, 1, 10)},
		}))
	if err != nil {
		t.Fatalf("execution failed; %v", err)
	}
	if got := len(uncommitted.Result().TxStatus); got != 2 {
		t.Fatalf("unexpected status count; got: %d, want: 2", got)
	}

	_, changes := uncommitted.Into()
	changes.Discard()

	rec, ok, err := db.Coin(utxo)
	if err != nil || !ok {
		t.Fatalf("seeded coin disappeared; ok: %v, err: %v", ok, err)
	}
	if rec.Spent {
		t.Error("a discarded execution must leave no state change behind")
	}
}
