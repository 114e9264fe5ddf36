package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/joaolago1113/fuel-core/logger"
	"github.com/joaolago1113/fuel-core/utils"
)

// FuelExecApp data structure
var FuelExecApp = cli.App{
	Name:  "Fuel Block Executor",
	Usage: "Executes, validates and dry runs UTXO blocks against a state database",
	Commands: []*cli.Command{
		&ProduceCmd,
		&ValidateCmd,
		&DryRunCmd,
	},
	Description: `
The fuel-exec command reads a block from a JSON file and executes it against
the configured state database. "produce" commits the state changes and prints
the sealed block, "validate" re-executes a complete block and checks it
against consensus rules, and "dry-run" executes speculatively and discards
all changes.`,
}

var executionFlags = []cli.Flag{
	&utils.StateDbImplementationFlag,
	&utils.StateDbDirFlag,
	&utils.ChainConfigFlag,
	&utils.MaxTransactionsFlag,
	&utils.PredicatesEnabledFlag,
	&utils.CollectBacktracesFlag,
	&utils.RelayerDbDirFlag,
	&logger.LogLevelFlag,
}

var ProduceCmd = cli.Command{
	Action:    Produce,
	Name:      "produce",
	Usage:     "Executes the transactions of a partial block and commits the sealed block's state",
	ArgsUsage: "<block.json>",
	Flags:     executionFlags,
}

var ValidateCmd = cli.Command{
	Action:    Validate,
	Name:      "validate",
	Usage:     "Re-executes a complete block and checks it against consensus rules",
	ArgsUsage: "<block.json>",
	Flags:     executionFlags,
}

var DryRunCmd = cli.Command{
	Action:    DryRun,
	Name:      "dry-run",
	Usage:     "Executes the transactions of a partial block and discards all state changes",
	ArgsUsage: "<block.json>",
	Flags:     executionFlags,
}

func main() {
	if err := FuelExecApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
