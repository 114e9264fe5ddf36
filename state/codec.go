package state

import (
	"encoding/binary"
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
)

// Key prefixes shared by the persistent backends.
const (
	prefixCoin     = 'c'
	prefixMessage  = 'm'
	prefixContract = 'u'
)

func coinKey(utxo types.UtxoID) []byte {
	key := make([]byte, 1+32+2)
	key[0] = prefixCoin
	copy(key[1:33], utxo.TxID.Bytes())
	binary.BigEndian.PutUint16(key[33:], utxo.OutputIndex)
	return key
}

func messageKey(nonce types.Nonce) []byte {
	key := make([]byte, 1+32)
	key[0] = prefixMessage
	copy(key[1:], nonce.Bytes())
	return key
}

func contractKey(id types.ContractID) []byte {
	key := make([]byte, 1+32)
	key[0] = prefixContract
	copy(key[1:], id.Bytes())
	return key
}

const coinRecordSize = 20 + 8 + 32 + 8 + 1

func encodeCoinRecord(rec *CoinRecord) []byte {
	buf := make([]byte, coinRecordSize)
	copy(buf[0:20], rec.Coin.Owner.Bytes())
	binary.BigEndian.PutUint64(buf[20:28], rec.Coin.Amount)
	copy(buf[28:60], rec.Coin.AssetID.Bytes())
	binary.BigEndian.PutUint64(buf[60:68], rec.Coin.Maturity)
	if rec.Spent {
		buf[68] = 1
	}
	return buf
}

func decodeCoinRecord(buf []byte) (*CoinRecord, error) {
	if len(buf) != coinRecordSize {
		return nil, fmt.Errorf("corrupted coin record: %d bytes", len(buf))
	}
	rec := &CoinRecord{}
	copy(rec.Coin.Owner[:], buf[0:20])
	rec.Coin.Amount = binary.BigEndian.Uint64(buf[20:28])
	copy(rec.Coin.AssetID[:], buf[28:60])
	rec.Coin.Maturity = binary.BigEndian.Uint64(buf[60:68])
	rec.Spent = buf[68] == 1
	return rec, nil
}

func encodeUtxoID(utxo types.UtxoID) []byte {
	buf := make([]byte, 34)
	copy(buf[0:32], utxo.TxID.Bytes())
	binary.BigEndian.PutUint16(buf[32:], utxo.OutputIndex)
	return buf
}

func decodeUtxoID(buf []byte) (types.UtxoID, error) {
	if len(buf) != 34 {
		return types.UtxoID{}, fmt.Errorf("corrupted utxo id: %d bytes", len(buf))
	}
	var utxo types.UtxoID
	copy(utxo.TxID[:], buf[0:32])
	utxo.OutputIndex = binary.BigEndian.Uint16(buf[32:])
	return utxo, nil
}
