package types

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
)

// Input is one of the three concrete input kinds of a transaction: a coin, a
// bridged message, or a contract reference.
type Input interface {
	// Kind names the input kind for diagnostics ("coin", "message",
	// "contract").
	Kind() string

	encode(w *bytes.Buffer)
}

// CoinInput spends a previously created coin.
type CoinInput struct {
	Utxo     UtxoID
	Owner    Address
	Amount   uint64
	AssetID  AssetID
	Maturity uint64
	// Predicate, when non-empty, must evaluate to true for the input to be
	// spendable. PredicateData is passed to the predicate program.
	Predicate     []byte
	PredicateData []byte
}

func (i *CoinInput) Kind() string { return "coin" }

// MessageInput spends a message relayed from the data availability layer.
type MessageInput struct {
	Sender        Address
	Recipient     Address
	Nonce         Nonce
	Amount        uint64
	Data          []byte
	Predicate     []byte
	PredicateData []byte
}

func (i *MessageInput) Kind() string { return "message" }

// ContractInput brings a contract's current UTXO into the transaction so the
// script may call it. The UTXO is re-created by a matching ContractOutput.
type ContractInput struct {
	Utxo     UtxoID
	Contract ContractID
}

func (i *ContractInput) Kind() string { return "contract" }

// Output is one of the concrete output kinds of a transaction.
type Output interface {
	Kind() string

	encode(w *bytes.Buffer)
}

// CoinOutput creates a new coin.
type CoinOutput struct {
	To      Address
	Amount  uint64
	AssetID AssetID
}

func (o *CoinOutput) Kind() string { return "coin" }

// ChangeOutput returns the unspent remainder of the transaction's inputs to
// the given address. Its amount is computed during execution; the value
// carried here is the amount the submitter (or a previously executed block)
// declared.
type ChangeOutput struct {
	To      Address
	Amount  uint64
	AssetID AssetID
}

func (o *ChangeOutput) Kind() string { return "change" }

// ContractOutput re-establishes the UTXO of the contract referenced by the
// input at InputIndex.
type ContractOutput struct {
	InputIndex uint16
}

func (o *ContractOutput) Kind() string { return "contract" }

// TxKind distinguishes ordinary script transactions from the coinbase mint.
type TxKind uint8

const (
	// TxScript is a user transaction carrying a script over a set of inputs
	// and outputs.
	TxScript TxKind = iota
	// TxMint is the coinbase transaction crediting the collected fees of a
	// block to its producer. It is created by the executor, never submitted.
	TxMint
)

// Transaction is a UTXO transaction. The zero value is not usable; build
// script transactions field by field and mint transactions via NewMint.
type Transaction struct {
	TxKind TxKind

	Script     []byte
	ScriptData []byte
	Inputs     []Input
	Outputs    []Output
	Witnesses  [][]byte

	GasPrice uint64
	GasLimit uint64

	// Mint-only fields.
	MintAmount      uint64
	MintAssetID     AssetID
	MintRecipient   Address
	MintOutputIndex uint16
}

// NewMint builds the coinbase transaction for a block: a single coin output
// of the collected fees, owed to the producer.
func NewMint(amount uint64, assetID AssetID, recipient Address) *Transaction {
	return &Transaction{
		TxKind:        TxMint,
		MintAmount:    amount,
		MintAssetID:   assetID,
		MintRecipient: recipient,
	}
}

// IsMint reports whether the transaction is a coinbase mint.
func (tx *Transaction) IsMint() bool { return tx.TxKind == TxMint }

// HasPredicates reports whether any input carries a predicate program.
func (tx *Transaction) HasPredicates() bool {
	for _, in := range tx.Inputs {
		switch i := in.(type) {
		case *CoinInput:
			if len(i.Predicate) > 0 {
				return true
			}
		case *MessageInput:
			if len(i.Predicate) > 0 {
				return true
			}
		}
	}
	return false
}

// Fee returns the maximum fee the transaction may be charged. The second
// return value is false if the computation overflows uint64.
func (tx *Transaction) Fee() (uint64, bool) {
	if tx.GasPrice == 0 || tx.GasLimit == 0 {
		return 0, true
	}
	fee := tx.GasPrice * tx.GasLimit
	if fee/tx.GasPrice != tx.GasLimit {
		return 0, false
	}
	return fee, true
}

// ID returns the content hash identifying the transaction. Witness data is
// excluded so that signing does not change the id.
func (tx *Transaction) ID() TxID {
	var w bytes.Buffer
	writeU64 := func(v uint64) {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		w.Write(b[:])
	}
	w.WriteByte(byte(tx.TxKind))
	if tx.TxKind == TxMint {
		writeU64(tx.MintAmount)
		w.Write(tx.MintAssetID.Bytes())
		w.Write(tx.MintRecipient.Bytes())
		writeU64(uint64(tx.MintOutputIndex))
		return crypto.Keccak256Hash(w.Bytes())
	}
	writeU64(tx.GasPrice)
	writeU64(tx.GasLimit)
	writeU64(uint64(len(tx.Script)))
	w.Write(tx.Script)
	writeU64(uint64(len(tx.ScriptData)))
	w.Write(tx.ScriptData)
	for _, in := range tx.Inputs {
		in.encode(&w)
	}
	for _, out := range tx.Outputs {
		out.encode(&w)
	}
	return crypto.Keccak256Hash(w.Bytes())
}

func writeU64To(w *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.Write(b[:])
}

func (i *CoinInput) encode(w *bytes.Buffer) {
	w.WriteByte(0x00)
	w.Write(i.Utxo.TxID.Bytes())
	writeU64To(w, uint64(i.Utxo.OutputIndex))
	w.Write(i.Owner.Bytes())
	writeU64To(w, i.Amount)
	w.Write(i.AssetID.Bytes())
	writeU64To(w, i.Maturity)
	writeU64To(w, uint64(len(i.Predicate)))
	w.Write(i.Predicate)
	writeU64To(w, uint64(len(i.PredicateData)))
	w.Write(i.PredicateData)
}

func (i *MessageInput) encode(w *bytes.Buffer) {
	w.WriteByte(0x01)
	w.Write(i.Sender.Bytes())
	w.Write(i.Recipient.Bytes())
	w.Write(i.Nonce.Bytes())
	writeU64To(w, i.Amount)
	writeU64To(w, uint64(len(i.Data)))
	w.Write(i.Data)
	writeU64To(w, uint64(len(i.Predicate)))
	w.Write(i.Predicate)
	writeU64To(w, uint64(len(i.PredicateData)))
	w.Write(i.PredicateData)
}

func (i *ContractInput) encode(w *bytes.Buffer) {
	w.WriteByte(0x02)
	w.Write(i.Utxo.TxID.Bytes())
	writeU64To(w, uint64(i.Utxo.OutputIndex))
	w.Write(i.Contract.Bytes())
}

func (o *CoinOutput) encode(w *bytes.Buffer) {
	w.WriteByte(0x10)
	w.Write(o.To.Bytes())
	writeU64To(w, o.Amount)
	w.Write(o.AssetID.Bytes())
}

func (o *ChangeOutput) encode(w *bytes.Buffer) {
	// The change amount is computed at execution time and therefore not part
	// of the transaction identity.
	w.WriteByte(0x11)
	w.Write(o.To.Bytes())
	w.Write(o.AssetID.Bytes())
}

func (o *ContractOutput) encode(w *bytes.Buffer) {
	w.WriteByte(0x12)
	writeU64To(w, uint64(o.InputIndex))
}
