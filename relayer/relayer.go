// Package relayer provides the executor's view of messages bridged from the
// data availability layer. The executor only reads from it; message records
// are immutable once relayed, so implementations may be shared freely across
// goroutines.
package relayer

//go:generate mockgen -source relayer.go -destination relayer_mocks.go -package relayer

import (
	"github.com/joaolago1113/fuel-core/types"
)

// Relayer answers message lookups against the relayer's record of the data
// availability layer.
type Relayer interface {
	// Message returns the relayed message with the given nonce. The second
	// result is false if the relayer has no record of the nonce.
	Message(nonce types.Nonce) (*types.Message, bool, error)

	// DaHeight returns the data availability height the relayer has synced
	// up to.
	DaHeight() (uint64, error)
}

// NewInMemory builds a relayer over a fixed message set, mainly for tests
// and dry runs.
func NewInMemory(daHeight uint64, msgs ...*types.Message) Relayer {
	byNonce := make(map[types.Nonce]*types.Message, len(msgs))
	for _, msg := range msgs {
		byNonce[msg.Nonce] = msg
	}
	return &inMemory{daHeight: daHeight, messages: byNonce}
}

type inMemory struct {
	daHeight uint64
	messages map[types.Nonce]*types.Message
}

func (r *inMemory) Message(nonce types.Nonce) (*types.Message, bool, error) {
	msg, ok := r.messages[nonce]
	return msg, ok, nil
}

func (r *inMemory) DaHeight() (uint64, error) {
	return r.daHeight, nil
}
