package relayer

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/joaolago1113/fuel-core/types"
)

var heightKey = []byte("da_height")

// Store is a persistent relayer backed by goleveldb. A relayer sync process
// appends messages with Add and advances the height with SetDaHeight; the
// executor reads through the Relayer interface.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens (or creates) a relayer store in the given directory.
func OpenStore(directory string) (*Store, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open relayer store at %s: %w", directory, err)
	}
	return &Store{db: db}, nil
}

// Add records a relayed message under its nonce.
func (s *Store) Add(msg *types.Message) error {
	return s.db.Put(messageKey(msg.Nonce), encodeMessage(msg), nil)
}

// SetDaHeight records the data availability height the relayer has synced to.
func (s *Store) SetDaHeight(height uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], height)
	return s.db.Put(heightKey, buf[:], nil)
}

func (s *Store) Message(nonce types.Nonce) (*types.Message, bool, error) {
	buf, err := s.db.Get(messageKey(nonce), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	msg, err := decodeMessage(buf)
	if err != nil {
		return nil, false, err
	}
	return msg, true, nil
}

func (s *Store) DaHeight() (uint64, error) {
	buf, err := s.db.Get(heightKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(buf) != 8 {
		return 0, fmt.Errorf("corrupted da height record: %d bytes", len(buf))
	}
	return binary.BigEndian.Uint64(buf), nil
}

func (s *Store) Close() error { return s.db.Close() }

func messageKey(nonce types.Nonce) []byte {
	key := make([]byte, 1+32)
	key[0] = 'r'
	copy(key[1:], nonce.Bytes())
	return key
}

func encodeMessage(msg *types.Message) []byte {
	buf := make([]byte, 20+20+32+8+8+len(msg.Data))
	copy(buf[0:20], msg.Sender.Bytes())
	copy(buf[20:40], msg.Recipient.Bytes())
	copy(buf[40:72], msg.Nonce.Bytes())
	binary.BigEndian.PutUint64(buf[72:80], msg.Amount)
	binary.BigEndian.PutUint64(buf[80:88], msg.DaHeight)
	copy(buf[88:], msg.Data)
	return buf
}

func decodeMessage(buf []byte) (*types.Message, error) {
	if len(buf) < 88 {
		return nil, fmt.Errorf("corrupted message record: %d bytes", len(buf))
	}
	msg := &types.Message{}
	copy(msg.Sender[:], buf[0:20])
	copy(msg.Recipient[:], buf[20:40])
	copy(msg.Nonce[:], buf[40:72])
	msg.Amount = binary.BigEndian.Uint64(buf[72:80])
	msg.DaHeight = binary.BigEndian.Uint64(buf[80:88])
	if len(buf) > 88 {
		msg.Data = append([]byte(nil), buf[88:]...)
	}
	return msg, nil
}
