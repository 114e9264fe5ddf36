package utils

import "github.com/urfave/cli/v2"

var (
	StateDbImplementationFlag = cli.StringFlag{
		Name:  "db-impl",
		Usage: "Select state database implementation (\"memory\", \"leveldb\", \"badger\")",
		Value: "memory",
	}
	StateDbDirFlag = cli.PathFlag{
		Name:  "db-dir",
		Usage: "Directory holding the state database; ignored by the memory implementation",
	}
	ChainConfigFlag = cli.PathFlag{
		Name:  "chain-config",
		Usage: "YAML file with chain parameters (transaction cap, base asset, coinbase recipient)",
	}
	MaxTransactionsFlag = cli.IntFlag{
		Name:  "max-transactions",
		Usage: "Maximum number of transactions per block, coinbase included; 0 disables the cap",
		Value: 65535,
	}
	PredicatesEnabledFlag = cli.BoolFlag{
		Name:  "predicates",
		Usage: "Enable execution of predicate inputs",
		Value: true,
	}
	CollectBacktracesFlag = cli.BoolFlag{
		Name:  "vm-backtrace",
		Usage: "Collect the full interpreter backtrace on VM engine faults",
	}
	RelayerDbDirFlag = cli.PathFlag{
		Name:  "relayer-dir",
		Usage: "Directory holding the relayer's bridged-message store; empty runs without persisted messages",
	}
)
