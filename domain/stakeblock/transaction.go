package stakeblock

import (
	"github.com/tandemnet/tandemd/domain/stakeblock/externalapi"
)

// Transaction is the block's view of the transaction collaborator. The block
// treats transactions as opaque: it needs their identifiers for the canonical
// wire order and their serialized form for the byte layout, nothing else.
type Transaction interface {
	// TransactionID returns the stable identifier of the transaction. Its
	// hexadecimal string form is the sort key for the canonical wire order.
	TransactionID() *externalapi.TransactionID

	// Serialize returns the transaction's own byte representation
	Serialize() ([]byte, error)
}

// TransactionDecoder reconstructs a transaction from the bytes produced by
// its Serialize. DeserializeStakeBlock delegates every embedded transaction
// to it.
type TransactionDecoder func(transactionBytes []byte) (Transaction, error)
