// Package blockjson renders stake blocks into a JSON-friendly form for
// debugging and tooling. It is a presentation surface only: the hex strings
// here are never parsed back into blocks, and nothing in the core depends
// on this package.
package blockjson

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/tandemnet/tandemd/domain/stakeblock"
)

// Block is the JSON view of a stake block. All byte fields are hex-encoded.
type Block struct {
	ID           string        `json:"id"`
	ParentID     string        `json:"parentId"`
	Timestamp    int64         `json:"timestamp"`
	GeneratorBox GeneratorBox  `json:"generatorBox"`
	Attachment   string        `json:"attachment"`
	Transactions []Transaction `json:"transactions"`
	Signature    string        `json:"signature"`
}

// GeneratorBox is the JSON view of a block's stake-ownership proof
type GeneratorBox struct {
	ID        string `json:"id"`
	PublicKey string `json:"publicKey"`
	Nonce     uint64 `json:"nonce"`
	Value     uint64 `json:"value"`
}

// Transaction is the JSON view of an embedded transaction: its identifier
// and its opaque serialized bytes
type Transaction struct {
	ID    string `json:"id"`
	Bytes string `json:"bytes"`
}

// FromStakeBlock converts the given block to its JSON view
func FromStakeBlock(block *stakeblock.StakeBlock) (*Block, error) {
	blockTransactions := block.Transactions()
	transactions := make([]Transaction, len(blockTransactions))
	for i, transaction := range blockTransactions {
		transactionBytes, err := transaction.Serialize()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to serialize transaction %s",
				transaction.TransactionID())
		}
		transactions[i] = Transaction{
			ID:    transaction.TransactionID().String(),
			Bytes: hex.EncodeToString(transactionBytes),
		}
	}

	generatorBox := block.GeneratorBox()
	return &Block{
		ID:        block.ID().String(),
		ParentID:  block.ParentID().String(),
		Timestamp: block.Timestamp(),
		GeneratorBox: GeneratorBox{
			ID:        hex.EncodeToString(generatorBox.ID()),
			PublicKey: hex.EncodeToString(generatorBox.PublicKey()),
			Nonce:     generatorBox.Nonce(),
			Value:     generatorBox.Value(),
		},
		Attachment:   hex.EncodeToString(block.Attachment()),
		Transactions: transactions,
		Signature:    hex.EncodeToString(block.Signature()),
	}, nil
}
