package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// The 32-byte identifiers used across the chain are all hashes. Aliases keep
// call sites readable without introducing conversion noise between layers.
type (
	// Bytes32 is a generic 32-byte value.
	Bytes32 = common.Hash
	// TxID identifies a transaction by its content hash.
	TxID = common.Hash
	// BlockID identifies a block by the hash of its header.
	BlockID = common.Hash
	// Nonce identifies a bridged message relayed from the data availability
	// layer.
	Nonce = common.Hash
	// ContractID identifies a deployed contract.
	ContractID = common.Hash
	// AssetID identifies an asset kind.
	AssetID = common.Hash
)

// Address identifies the owner of a coin or the party of a message.
type Address = common.Address

// UtxoID points at a single transaction output: the id of the transaction
// that created it plus the position of the output within that transaction.
type UtxoID struct {
	TxID        TxID
	OutputIndex uint16
}

// String renders the UTXO id as the hex-prefixed transaction id followed by
// the output index, e.g. 0xab..cd0001.
func (u UtxoID) String() string {
	return fmt.Sprintf("%s%04x", u.TxID.Hex(), u.OutputIndex)
}

// UtxoIDFor builds the id of the idx-th output of the given transaction.
func UtxoIDFor(tx TxID, idx uint16) UtxoID {
	return UtxoID{TxID: tx, OutputIndex: idx}
}

// Coin is an unspent (or historically spent) transaction output holding an
// amount of some asset.
type Coin struct {
	Owner   Address
	Amount  uint64
	AssetID AssetID
	// Maturity is the earliest block height at which the coin may be spent.
	Maturity uint64
}

// Message is a record bridged from the data availability layer by the
// relayer. Messages are immutable once relayed; the executor only ever reads
// them.
type Message struct {
	Sender    Address
	Recipient Address
	Nonce     Nonce
	Amount    uint64
	Data      []byte
	// DaHeight is the data availability height at which the message was
	// recorded. A message may only be spent by blocks that have advanced to
	// at least this height.
	DaHeight uint64
}
