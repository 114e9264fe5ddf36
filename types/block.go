package types

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// BlockHeader carries the consensus fields of a block. TransactionsRoot and
// TransactionsCount are filled in when a partial block is generated into a
// full one.
type BlockHeader struct {
	Height   uint64
	DaHeight uint64
	Time     uint64
	PrevRoot Bytes32

	TransactionsRoot  Bytes32
	TransactionsCount uint64
}

// PartialBlock is a block under construction: a header without transaction
// commitments plus the transactions gathered so far. Block production and
// dry runs start from a partial block.
type PartialBlock struct {
	Header       BlockHeader
	Transactions []*Transaction
}

// Generate seals the partial block into a full block by committing to its
// transactions.
func (pb *PartialBlock) Generate() *Block {
	header := pb.Header
	header.TransactionsRoot = transactionsRoot(pb.Transactions)
	header.TransactionsCount = uint64(len(pb.Transactions))
	return &Block{Header: header, Transactions: pb.Transactions}
}

// Block is a complete block. Validation starts from a full block.
type Block struct {
	Header       BlockHeader
	Transactions []*Transaction
}

// ID returns the hash of the RLP-encoded header.
func (b *Block) ID() BlockID {
	enc, err := rlp.EncodeToBytes(&b.Header)
	if err != nil {
		// The header contains only fixed-size unsigned fields; encoding
		// cannot fail.
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}

// Partial strips the transaction commitments so the block can be re-executed
// the same way a production run would build it.
func (b *Block) Partial() *PartialBlock {
	header := b.Header
	header.TransactionsRoot = Bytes32{}
	header.TransactionsCount = 0
	return &PartialBlock{Header: header, Transactions: b.Transactions}
}

// transactionsRoot commits to the ordered list of transaction ids.
func transactionsRoot(txs []*Transaction) Bytes32 {
	data := make([]byte, 0, len(txs)*32)
	for _, tx := range txs {
		id := tx.ID()
		data = append(data, id.Bytes()...)
	}
	return crypto.Keccak256Hash(data)
}
