// Package utils holds the application configuration and the CLI flags it is
// assembled from.
package utils

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/joaolago1113/fuel-core/executor"
	"github.com/joaolago1113/fuel-core/logger"
)

// ChainParams are the consensus parameters read from the chain configuration
// file. Identifiers are hex strings so the file stays hand-editable.
type ChainParams struct {
	MaxTransactions   int    `yaml:"max_transactions"`
	MaxGasPerTx       uint64 `yaml:"max_gas_per_tx"`
	PredicatesEnabled bool   `yaml:"predicates_enabled"`
	BaseAssetID       string `yaml:"base_asset_id"`
	CoinbaseRecipient string `yaml:"coinbase_recipient"`
}

// Config carries everything the tools need to assemble an executor.
type Config struct {
	DbImpl       string
	DbDir        string
	RelayerDbDir string
	LogLevel     string

	Chain             ChainParams
	CollectBacktraces bool
}

// NewConfig builds the configuration from CLI flags. Flag values override
// what the chain configuration file declares.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		DbImpl:            ctx.String(StateDbImplementationFlag.Name),
		DbDir:             ctx.Path(StateDbDirFlag.Name),
		RelayerDbDir:      ctx.Path(RelayerDbDirFlag.Name),
		LogLevel:          ctx.String(logger.LogLevelFlag.Name),
		CollectBacktraces: ctx.Bool(CollectBacktracesFlag.Name),
		Chain: ChainParams{
			MaxTransactions:   ctx.Int(MaxTransactionsFlag.Name),
			PredicatesEnabled: ctx.Bool(PredicatesEnabledFlag.Name),
		},
	}

	if path := ctx.Path(ChainConfigFlag.Name); path != "" {
		chain, err := LoadChainParams(path)
		if err != nil {
			return nil, err
		}
		cfg.Chain = *chain
		if ctx.IsSet(MaxTransactionsFlag.Name) {
			cfg.Chain.MaxTransactions = ctx.Int(MaxTransactionsFlag.Name)
		}
		if ctx.IsSet(PredicatesEnabledFlag.Name) {
			cfg.Chain.PredicatesEnabled = ctx.Bool(PredicatesEnabledFlag.Name)
		}
	}

	return cfg, nil
}

// LoadChainParams reads the chain parameters from a YAML file.
func LoadChainParams(path string) (*ChainParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read chain config %s; %v", path, err)
	}
	var chain ChainParams
	if err := yaml.Unmarshal(data, &chain); err != nil {
		return nil, fmt.Errorf("cannot parse chain config %s; %v", path, err)
	}
	if chain.CoinbaseRecipient != "" && !common.IsHexAddress(chain.CoinbaseRecipient) {
		return nil, fmt.Errorf("invalid coinbase_recipient in %s", path)
	}
	return &chain, nil
}

// ExecutorParams converts the configuration into the executor's parameters.
func (cfg *Config) ExecutorParams() executor.Params {
	return executor.Params{
		MaxTransactions:   cfg.Chain.MaxTransactions,
		MaxGasPerTx:       cfg.Chain.MaxGasPerTx,
		PredicatesEnabled: cfg.Chain.PredicatesEnabled,
		BaseAssetID:       common.HexToHash(cfg.Chain.BaseAssetID),
		CoinbaseRecipient: common.HexToAddress(cfg.Chain.CoinbaseRecipient),
		CollectBacktraces: cfg.CollectBacktraces,
		LogLevel:          cfg.LogLevel,
	}
}
