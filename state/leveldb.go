package state

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/joaolago1113/fuel-core/types"
)

// coinCacheSize bounds the number of decoded coin records kept in memory.
const coinCacheSize = 4096

// OpenLevelDB opens (or creates) a goleveldb-backed state store in the given
// directory.
func OpenLevelDB(directory string) (Database, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open leveldb state at %s: %w", directory, err)
	}
	cache, err := lru.New(coinCacheSize)
	if err != nil {
		return nil, err
	}
	return &levelDatabase{db: db, coinCache: cache}, nil
}

type levelDatabase struct {
	db        *leveldb.DB
	coinCache *lru.Cache // types.UtxoID -> CoinRecord
}

func (l *levelDatabase) Coin(utxo types.UtxoID) (*CoinRecord, bool, error) {
	if cached, ok := l.coinCache.Get(utxo); ok {
		rec := cached.(CoinRecord)
		return &rec, true, nil
	}
	buf, err := l.db.Get(coinKey(utxo), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rec, err := decodeCoinRecord(buf)
	if err != nil {
		return nil, false, err
	}
	l.coinCache.Add(utxo, *rec)
	return rec, true, nil
}

func (l *levelDatabase) MessageSpent(nonce types.Nonce) (bool, error) {
	has, err := l.db.Has(messageKey(nonce), nil)
	if err != nil {
		return false, err
	}
	return has, nil
}

func (l *levelDatabase) ContractUtxo(id types.ContractID) (types.UtxoID, bool, error) {
	buf, err := l.db.Get(contractKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return types.UtxoID{}, false, nil
	}
	if err != nil {
		return types.UtxoID{}, false, err
	}
	utxo, err := decodeUtxoID(buf)
	if err != nil {
		return types.UtxoID{}, false, err
	}
	return utxo, true, nil
}

func (l *levelDatabase) Begin() (Transaction, error) {
	tr, err := l.db.OpenTransaction()
	if err != nil {
		return nil, err
	}
	return &levelTransaction{db: l, tr: tr, written: map[types.UtxoID]CoinRecord{}}, nil
}

func (l *levelDatabase) Close() error {
	l.coinCache.Purge()
	return l.db.Close()
}

func (l *levelDatabase) MemoryUsage() *MemoryUsage { return nil }

type levelTransaction struct {
	db      *levelDatabase
	tr      *leveldb.Transaction
	written map[types.UtxoID]CoinRecord
}

func (t *levelTransaction) Coin(utxo types.UtxoID) (*CoinRecord, bool, error) {
	if rec, ok := t.written[utxo]; ok {
		return &rec, true, nil
	}
	buf, err := t.tr.Get(coinKey(utxo), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rec, err := decodeCoinRecord(buf)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (t *levelTransaction) MessageSpent(nonce types.Nonce) (bool, error) {
	has, err := t.tr.Has(messageKey(nonce), nil)
	if err != nil {
		return false, err
	}
	return has, nil
}

func (t *levelTransaction) ContractUtxo(id types.ContractID) (types.UtxoID, bool, error) {
	buf, err := t.tr.Get(contractKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return types.UtxoID{}, false, nil
	}
	if err != nil {
		return types.UtxoID{}, false, err
	}
	utxo, err := decodeUtxoID(buf)
	if err != nil {
		return types.UtxoID{}, false, err
	}
	return utxo, true, nil
}

func (t *levelTransaction) AddCoin(utxo types.UtxoID, coin *types.Coin) error {
	if _, ok, err := t.Coin(utxo); err != nil {
		return err
	} else if ok {
		return ErrCoinExists
	}
	rec := CoinRecord{Coin: *coin}
	if err := t.tr.Put(coinKey(utxo), encodeCoinRecord(&rec), nil); err != nil {
		return err
	}
	t.written[utxo] = rec
	return nil
}

func (t *levelTransaction) SpendCoin(utxo types.UtxoID) error {
	rec, ok, err := t.Coin(utxo)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	rec.Spent = true
	if err := t.tr.Put(coinKey(utxo), encodeCoinRecord(rec), nil); err != nil {
		return err
	}
	t.written[utxo] = *rec
	return nil
}

func (t *levelTransaction) SpendMessage(nonce types.Nonce) error {
	return t.tr.Put(messageKey(nonce), []byte{1}, nil)
}

func (t *levelTransaction) SetContractUtxo(id types.ContractID, utxo types.UtxoID) error {
	return t.tr.Put(contractKey(id), encodeUtxoID(utxo), nil)
}

func (t *levelTransaction) Commit() error {
	if err := t.tr.Commit(); err != nil {
		return err
	}
	for utxo, rec := range t.written {
		t.db.coinCache.Add(utxo, rec)
	}
	return nil
}

func (t *levelTransaction) Discard() {
	t.tr.Discard()
}
