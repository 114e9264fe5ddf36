// Package state provides the chain-state storage used by the block executor:
// coins, spent-message markers and contract UTXOs, behind a transactional
// interface. Three implementations are available, selected by name: "memory"
// for tests and dry runs, "leveldb" and "badger" for persistent deployments.
package state

import (
	"errors"
	"fmt"

	"github.com/c2h5oh/datasize"

	"github.com/joaolago1113/fuel-core/types"
)

var (
	// ErrCoinExists is returned by AddCoin when the UTXO id is already
	// occupied.
	ErrCoinExists = errors.New("coin already exists")
	// ErrNotFound is returned by mutations addressing a record that does not
	// exist.
	ErrNotFound = errors.New("record not found")
)

// CoinRecord is a coin as stored: the coin itself plus whether it has been
// spent. Spent coins are kept so a double spend can be told apart from a
// reference to a coin that never existed.
type CoinRecord struct {
	Coin  types.Coin
	Spent bool
}

// Reader is the read-only view of chain state.
type Reader interface {
	// Coin looks up a coin record by UTXO id. The second result is false if
	// no coin was ever created under the id.
	Coin(utxo types.UtxoID) (*CoinRecord, bool, error)

	// MessageSpent reports whether the message with the given nonce has been
	// consumed by an earlier transaction.
	MessageSpent(nonce types.Nonce) (bool, error)

	// ContractUtxo returns the current UTXO of a contract. The second result
	// is false if the contract is unknown.
	ContractUtxo(id types.ContractID) (types.UtxoID, bool, error)
}

// Transaction is a pending set of state changes. Reads observe earlier
// writes of the same transaction. Exactly one of Commit or Discard must be
// called; afterwards the transaction is dead.
type Transaction interface {
	Reader

	// AddCoin creates a new unspent coin under the given UTXO id.
	AddCoin(utxo types.UtxoID, coin *types.Coin) error

	// SpendCoin marks an existing coin as spent.
	SpendCoin(utxo types.UtxoID) error

	// SpendMessage marks the message with the given nonce as consumed.
	SpendMessage(nonce types.Nonce) error

	// SetContractUtxo records the new UTXO of a contract.
	SetContractUtxo(id types.ContractID, utxo types.UtxoID) error

	Commit() error
	Discard()
}

// Database is a chain-state store. Begin opens a transaction holding all
// changes of one block execution; the caller decides whether to commit.
type Database interface {
	Reader

	Begin() (Transaction, error)
	Close() error

	// MemoryUsage describes the current in-memory footprint of the store.
	// Implementations without a meaningful answer return nil.
	MemoryUsage() *MemoryUsage
}

// MemoryUsage reports the approximate memory held by a state store.
type MemoryUsage struct {
	UsedBytes uint64
}

func (m *MemoryUsage) String() string {
	return datasize.ByteSize(m.UsedBytes).HumanReadable()
}

// MakeDatabase creates a state database of the given implementation. The
// directory is ignored by the memory implementation.
func MakeDatabase(impl string, directory string) (Database, error) {
	switch impl {
	case "", "memory":
		return NewMemoryDatabase(), nil
	case "leveldb":
		return OpenLevelDB(directory)
	case "badger":
		return OpenBadger(directory)
	default:
		return nil, fmt.Errorf("unknown state database implementation: %q", impl)
	}
}
