package state

import (
	"sync"

	"github.com/joaolago1113/fuel-core/types"
)

// NewMemoryDatabase creates an empty in-memory state store. It is safe for
// concurrent readers, but only one state transaction should be open at a
// time, mirroring the single-executing-thread-per-block model.
func NewMemoryDatabase() Database {
	return &memoryDatabase{
		coins:     map[types.UtxoID]CoinRecord{},
		spentMsgs: map[types.Nonce]struct{}{},
		contracts: map[types.ContractID]types.UtxoID{},
	}
}

type memoryDatabase struct {
	mu        sync.RWMutex
	coins     map[types.UtxoID]CoinRecord
	spentMsgs map[types.Nonce]struct{}
	contracts map[types.ContractID]types.UtxoID
}

func (db *memoryDatabase) Coin(utxo types.UtxoID) (*CoinRecord, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.coins[utxo]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (db *memoryDatabase) MessageSpent(nonce types.Nonce) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.spentMsgs[nonce]
	return ok, nil
}

func (db *memoryDatabase) ContractUtxo(id types.ContractID) (types.UtxoID, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	utxo, ok := db.contracts[id]
	return utxo, ok, nil
}

func (db *memoryDatabase) Begin() (Transaction, error) {
	return &memoryTransaction{
		db:        db,
		coins:     map[types.UtxoID]CoinRecord{},
		spentMsgs: map[types.Nonce]struct{}{},
		contracts: map[types.ContractID]types.UtxoID{},
	}, nil
}

func (db *memoryDatabase) Close() error { return nil }

func (db *memoryDatabase) MemoryUsage() *MemoryUsage {
	db.mu.RLock()
	defer db.mu.RUnlock()
	// Rough accounting; enough for operator diagnostics.
	var bytes uint64
	bytes += uint64(len(db.coins)) * (34 + 32 + 8 + 32 + 8 + 1)
	bytes += uint64(len(db.spentMsgs)) * 32
	bytes += uint64(len(db.contracts)) * (32 + 34)
	return &MemoryUsage{UsedBytes: bytes}
}

// memoryTransaction buffers writes until Commit.
type memoryTransaction struct {
	db        *memoryDatabase
	done      bool
	coins     map[types.UtxoID]CoinRecord
	spentMsgs map[types.Nonce]struct{}
	contracts map[types.ContractID]types.UtxoID
}

func (tx *memoryTransaction) Coin(utxo types.UtxoID) (*CoinRecord, bool, error) {
	if rec, ok := tx.coins[utxo]; ok {
		return &rec, true, nil
	}
	return tx.db.Coin(utxo)
}

func (tx *memoryTransaction) MessageSpent(nonce types.Nonce) (bool, error) {
	if _, ok := tx.spentMsgs[nonce]; ok {
		return true, nil
	}
	return tx.db.MessageSpent(nonce)
}

func (tx *memoryTransaction) ContractUtxo(id types.ContractID) (types.UtxoID, bool, error) {
	if utxo, ok := tx.contracts[id]; ok {
		return utxo, true, nil
	}
	return tx.db.ContractUtxo(id)
}

func (tx *memoryTransaction) AddCoin(utxo types.UtxoID, coin *types.Coin) error {
	if _, ok, err := tx.Coin(utxo); err != nil {
		return err
	} else if ok {
		return ErrCoinExists
	}
	tx.coins[utxo] = CoinRecord{Coin: *coin}
	return nil
}

func (tx *memoryTransaction) SpendCoin(utxo types.UtxoID) error {
	rec, ok, err := tx.Coin(utxo)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	rec.Spent = true
	tx.coins[utxo] = *rec
	return nil
}

func (tx *memoryTransaction) SpendMessage(nonce types.Nonce) error {
	tx.spentMsgs[nonce] = struct{}{}
	return nil
}

func (tx *memoryTransaction) SetContractUtxo(id types.ContractID, utxo types.UtxoID) error {
	tx.contracts[id] = utxo
	return nil
}

func (tx *memoryTransaction) Commit() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for utxo, rec := range tx.coins {
		tx.db.coins[utxo] = rec
	}
	for nonce := range tx.spentMsgs {
		tx.db.spentMsgs[nonce] = struct{}{}
	}
	for id, utxo := range tx.contracts {
		tx.db.contracts[id] = utxo
	}
	return nil
}

func (tx *memoryTransaction) Discard() {
	tx.done = true
}
