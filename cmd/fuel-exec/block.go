package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/joaolago1113/fuel-core/types"
)

// The JSON block file mirrors the in-memory block shape. Inputs and outputs
// carry a "kind" discriminator; byte fields are 0x-prefixed hex.

type jsonHeader struct {
	Height            uint64      `json:"height"`
	DaHeight          uint64      `json:"da_height"`
	Time              uint64      `json:"time"`
	PrevRoot          common.Hash `json:"prev_root"`
	TransactionsRoot  common.Hash `json:"transactions_root,omitempty"`
	TransactionsCount uint64      `json:"transactions_count,omitempty"`
}

type jsonTransaction struct {
	Kind       string          `json:"kind,omitempty"`
	Script     hexutil.Bytes   `json:"script,omitempty"`
	ScriptData hexutil.Bytes   `json:"script_data,omitempty"`
	GasPrice   uint64          `json:"gas_price,omitempty"`
	GasLimit   uint64          `json:"gas_limit,omitempty"`
	Inputs     []jsonInput     `json:"inputs,omitempty"`
	Outputs    []jsonOutput    `json:"outputs,omitempty"`
	Witnesses  []hexutil.Bytes `json:"witnesses,omitempty"`

	MintAmount      uint64         `json:"mint_amount,omitempty"`
	MintAssetID     common.Hash    `json:"mint_asset_id,omitempty"`
	MintRecipient   common.Address `json:"mint_recipient,omitempty"`
	MintOutputIndex uint16         `json:"mint_output_index,omitempty"`
}

type jsonInput struct {
	Kind string `json:"kind"`

	TxID        common.Hash `json:"tx_id,omitempty"`
	OutputIndex uint16      `json:"output_index,omitempty"`

	Owner    common.Address `json:"owner,omitempty"`
	Amount   uint64         `json:"amount,omitempty"`
	AssetID  common.Hash    `json:"asset_id,omitempty"`
	Maturity uint64         `json:"maturity,omitempty"`

	Sender    common.Address `json:"sender,omitempty"`
	Recipient common.Address `json:"recipient,omitempty"`
	Nonce     common.Hash    `json:"nonce,omitempty"`
	Data      hexutil.Bytes  `json:"data,omitempty"`

	Contract common.Hash `json:"contract,omitempty"`

	Predicate     hexutil.Bytes `json:"predicate,omitempty"`
	PredicateData hexutil.Bytes `json:"predicate_data,omitempty"`
}

type jsonOutput struct {
	Kind string `json:"kind"`

	To      common.Address `json:"to,omitempty"`
	Amount  uint64         `json:"amount,omitempty"`
	AssetID common.Hash    `json:"asset_id,omitempty"`

	InputIndex uint16 `json:"input_index,omitempty"`
}

type jsonBlock struct {
	Header       jsonHeader        `json:"header"`
	Transactions []jsonTransaction `json:"transactions"`
}

// loadBlockFile reads and converts a block file. The returned header carries
// the declared transaction commitments, which only "validate" uses.
func loadBlockFile(path string) (*types.PartialBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read block file %s; %v", path, err)
	}
	var jb jsonBlock
	if err := json.Unmarshal(data, &jb); err != nil {
		return nil, fmt.Errorf("cannot parse block file %s; %v", path, err)
	}

	pb := &types.PartialBlock{
		Header: types.BlockHeader{
			Height:            jb.Header.Height,
			DaHeight:          jb.Header.DaHeight,
			Time:              jb.Header.Time,
			PrevRoot:          jb.Header.PrevRoot,
			TransactionsRoot:  jb.Header.TransactionsRoot,
			TransactionsCount: jb.Header.TransactionsCount,
		},
	}
	for i, jt := range jb.Transactions {
		tx, err := convertTransaction(jt)
		if err != nil {
			return nil, fmt.Errorf("transaction %d in %s: %v", i, path, err)
		}
		pb.Transactions = append(pb.Transactions, tx)
	}
	return pb, nil
}

func convertTransaction(jt jsonTransaction) (*types.Transaction, error) {
	if jt.Kind == "mint" {
		mint := types.NewMint(jt.MintAmount, jt.MintAssetID, jt.MintRecipient)
		mint.MintOutputIndex = jt.MintOutputIndex
		return mint, nil
	}

	tx := &types.Transaction{
		Script:     jt.Script,
		ScriptData: jt.ScriptData,
		GasPrice:   jt.GasPrice,
		GasLimit:   jt.GasLimit,
	}
	for _, w := range jt.Witnesses {
		tx.Witnesses = append(tx.Witnesses, w)
	}
	for _, ji := range jt.Inputs {
		in, err := convertInput(ji)
		if err != nil {
			return nil, err
		}
		tx.Inputs = append(tx.Inputs, in)
	}
	for _, jo := range jt.Outputs {
		out, err := convertOutput(jo)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, out)
	}
	return tx, nil
}

func convertInput(ji jsonInput) (types.Input, error) {
	switch ji.Kind {
	case "coin":
		return &types.CoinInput{
			Utxo:          types.UtxoID{TxID: ji.TxID, OutputIndex: ji.OutputIndex},
			Owner:         ji.Owner,
			Amount:        ji.Amount,
			AssetID:       ji.AssetID,
			Maturity:      ji.Maturity,
			Predicate:     ji.Predicate,
			PredicateData: ji.PredicateData,
		}, nil
	case "message":
		return &types.MessageInput{
			Sender:        ji.Sender,
			Recipient:     ji.Recipient,
			Nonce:         ji.Nonce,
			Amount:        ji.Amount,
			Data:          ji.Data,
			Predicate:     ji.Predicate,
			PredicateData: ji.PredicateData,
		}, nil
	case "contract":
		return &types.ContractInput{
			Utxo:     types.UtxoID{TxID: ji.TxID, OutputIndex: ji.OutputIndex},
			Contract: ji.Contract,
		}, nil
	default:
		return nil, fmt.Errorf("unknown input kind %q", ji.Kind)
	}
}

func convertOutput(jo jsonOutput) (types.Output, error) {
	switch jo.Kind {
	case "coin":
		return &types.CoinOutput{To: jo.To, Amount: jo.Amount, AssetID: jo.AssetID}, nil
	case "change":
		return &types.ChangeOutput{To: jo.To, Amount: jo.Amount, AssetID: jo.AssetID}, nil
	case "contract":
		return &types.ContractOutput{InputIndex: jo.InputIndex}, nil
	default:
		return nil, fmt.Errorf("unknown output kind %q", jo.Kind)
	}
}
