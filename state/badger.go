package state

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/joaolago1113/fuel-core/types"
)

// OpenBadger opens (or creates) a badger-backed state store in the given
// directory.
func OpenBadger(directory string) (Database, error) {
	opts := badger.DefaultOptions(directory).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cannot open badger state at %s: %w", directory, err)
	}
	return &badgerDatabase{db: db}, nil
}

type badgerDatabase struct {
	db *badger.DB
}

func (b *badgerDatabase) Coin(utxo types.UtxoID) (*CoinRecord, bool, error) {
	var rec *CoinRecord
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = badgerCoin(txn, utxo)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

func (b *badgerDatabase) MessageSpent(nonce types.Nonce) (bool, error) {
	var spent bool
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		spent, err = badgerHas(txn, messageKey(nonce))
		return err
	})
	return spent, err
}

func (b *badgerDatabase) ContractUtxo(id types.ContractID) (types.UtxoID, bool, error) {
	var (
		utxo  types.UtxoID
		found bool
	)
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		utxo, found, err = badgerContractUtxo(txn, id)
		return err
	})
	return utxo, found, err
}

func (b *badgerDatabase) Begin() (Transaction, error) {
	return &badgerTransaction{txn: b.db.NewTransaction(true)}, nil
}

func (b *badgerDatabase) Close() error { return b.db.Close() }

func (b *badgerDatabase) MemoryUsage() *MemoryUsage { return nil }

// badgerTransaction relies on badger's own read-your-writes semantics.
type badgerTransaction struct {
	txn *badger.Txn
}

func (t *badgerTransaction) Coin(utxo types.UtxoID) (*CoinRecord, bool, error) {
	rec, err := badgerCoin(t.txn, utxo)
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

func (t *badgerTransaction) MessageSpent(nonce types.Nonce) (bool, error) {
	return badgerHas(t.txn, messageKey(nonce))
}

func (t *badgerTransaction) ContractUtxo(id types.ContractID) (types.UtxoID, bool, error) {
	return badgerContractUtxo(t.txn, id)
}

func (t *badgerTransaction) AddCoin(utxo types.UtxoID, coin *types.Coin) error {
	if rec, err := badgerCoin(t.txn, utxo); err != nil {
		return err
	} else if rec != nil {
		return ErrCoinExists
	}
	return t.txn.Set(coinKey(utxo), encodeCoinRecord(&CoinRecord{Coin: *coin}))
}

func (t *badgerTransaction) SpendCoin(utxo types.UtxoID) error {
	rec, err := badgerCoin(t.txn, utxo)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	rec.Spent = true
	return t.txn.Set(coinKey(utxo), encodeCoinRecord(rec))
}

func (t *badgerTransaction) SpendMessage(nonce types.Nonce) error {
	return t.txn.Set(messageKey(nonce), []byte{1})
}

func (t *badgerTransaction) SetContractUtxo(id types.ContractID, utxo types.UtxoID) error {
	return t.txn.Set(contractKey(id), encodeUtxoID(utxo))
}

func (t *badgerTransaction) Commit() error { return t.txn.Commit() }

func (t *badgerTransaction) Discard() { t.txn.Discard() }

func badgerCoin(txn *badger.Txn, utxo types.UtxoID) (*CoinRecord, error) {
	item, err := txn.Get(coinKey(utxo))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	buf, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return decodeCoinRecord(buf)
}

func badgerHas(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func badgerContractUtxo(txn *badger.Txn, id types.ContractID) (types.UtxoID, bool, error) {
	item, err := txn.Get(contractKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return types.UtxoID{}, false, nil
	}
	if err != nil {
		return types.UtxoID{}, false, err
	}
	buf, err := item.ValueCopy(nil)
	if err != nil {
		return types.UtxoID{}, false, err
	}
	utxo, err := decodeUtxoID(buf)
	if err != nil {
		return types.UtxoID{}, false, err
	}
	return utxo, true, nil
}
