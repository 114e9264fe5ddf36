package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/joaolago1113/fuel-core/executor"
	"github.com/joaolago1113/fuel-core/relayer"
	"github.com/joaolago1113/fuel-core/state"
	"github.com/joaolago1113/fuel-core/types"
	"github.com/joaolago1113/fuel-core/utils"
	"github.com/joaolago1113/fuel-core/vm"
)

// Produce executes a partial block, commits the state changes and prints the
// sealed block.
func Produce(ctx *cli.Context) error {
	env, partial, err := prepare(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	block := executor.Production[*types.PartialBlock, *types.Block](partial)
	result, err := env.exec.ExecuteAndCommit(block)
	if err != nil {
		return fmt.Errorf("block production failed; %v", err)
	}

	printResult(result)
	color.Green("sealed block %s at height %d", result.Block.ID().Hex(), result.Block.Header.Height)
	return nil
}

// Validate re-executes a complete block and checks it against consensus
// rules. State changes are discarded; validation proves, it does not sync.
func Validate(ctx *cli.Context) error {
	env, partial, err := prepare(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	full := &types.Block{Header: partial.Header, Transactions: partial.Transactions}
	uncommitted, err := env.exec.ExecuteWithoutCommit(
		executor.Validation[*types.PartialBlock](full))
	if err != nil {
		return fmt.Errorf("block is invalid; %v", err)
	}
	result, changes := uncommitted.Into()
	changes.Discard()

	printResult(&result)
	color.Green("block %s is valid", full.ID().Hex())
	return nil
}

// DryRun executes a partial block speculatively and prints the transaction
// statuses; no state change survives.
func DryRun(ctx *cli.Context) error {
	env, partial, err := prepare(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	statuses, err := env.exec.DryRun(partial)
	if err != nil {
		return fmt.Errorf("dry run failed; %v", err)
	}

	printStatuses(statuses)
	return nil
}

type environment struct {
	exec  *executor.Executor
	db    state.Database
	store *relayer.Store
}

func (e *environment) close() {
	if e.store != nil {
		e.store.Close()
	}
	e.db.Close()
}

// prepare assembles the executor and loads the block named by the first
// argument.
func prepare(ctx *cli.Context) (*environment, *types.PartialBlock, error) {
	if ctx.NArg() != 1 {
		return nil, nil, fmt.Errorf("command requires exactly one argument, the block file")
	}

	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	partial, err := loadBlockFile(ctx.Args().Get(0))
	if err != nil {
		return nil, nil, err
	}

	db, err := state.MakeDatabase(cfg.DbImpl, cfg.DbDir)
	if err != nil {
		return nil, nil, err
	}

	env := &environment{db: db}
	var rel relayer.Relayer
	if cfg.RelayerDbDir != "" {
		store, err := relayer.OpenStore(cfg.RelayerDbDir)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		env.store = store
		rel = store
	} else {
		rel = relayer.NewInMemory(partial.Header.DaHeight)
	}

	env.exec = executor.New(db, rel, vm.NewScriptInterpreter(), cfg.ExecutorParams())
	return env, partial, nil
}

func printResult(result *executor.ExecutionResult) {
	printStatuses(result.TxStatus)
	for _, skipped := range result.SkippedTransactions {
		color.Yellow("skipped %s: %v", skipped.TransactionID.Hex(), skipped.Err)
	}
}

func printStatuses(statuses []executor.TransactionExecutionStatus) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Transaction", "Status", "Detail"})
	for _, status := range statuses {
		verdict := "success"
		detail := ""
		if ps := status.Result.State(); ps != nil {
			detail = ps.String()
		}
		if !status.Result.Succeeded() {
			verdict = "failed"
			detail = status.Result.Reason()
		}
		table.Append([]string{status.ID.Hex(), verdict, detail})
	}
	table.Render()
}
