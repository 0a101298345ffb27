package stakeblock

import (
	"bytes"
	"encoding/binary"

	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/tandemnet/tandemd/domain/stakeblock/externalapi"
	"github.com/tandemnet/tandemd/domain/stakeblock/generatorbox"
	"github.com/tandemnet/tandemd/domain/stakeblock/utils/hashes"
)

// StakeBlock is the proof-of-stake-side block of the tandem ledger. It is
// read-only once constructed: attaching a signature produces a new value and
// never mutates a shared instance.
type StakeBlock struct {
	parentID     *externalapi.BlockID
	timestamp    int64
	transactions []Transaction
	generatorBox *generatorbox.GeneratorBox
	attachment   []byte
	signature    []byte

	id *externalapi.BlockID
}

// New builds a stake block over the given fields and signs it with
// privateKey. The key must derive the public key embedded in generatorBox;
// otherwise New fails with ErrGeneratorKeyMismatch. The signature covers the
// serialized block with a zero-length signature region, so it can be
// reproduced later by blanking the signature field.
func New(parentID *externalapi.BlockID, timestamp int64, transactions []Transaction,
	generatorBox *generatorbox.GeneratorBox, attachment []byte,
	privateKey *secp256k1.SchnorrKeyPair) (*StakeBlock, error) {

	publicKey, err := privateKey.SchnorrPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive the public key from the given private key")
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize the derived public key")
	}
	if !bytes.Equal(serializedPublicKey[:], generatorBox.PublicKey()) {
		return nil, errors.Wrapf(ErrGeneratorKeyMismatch,
			"the given private key derives public key %x, while the generator box embeds %x",
			serializedPublicKey[:], generatorBox.PublicKey())
	}

	unsignedBlock := newStakeBlock(parentID, timestamp, transactions, generatorBox, attachment, nil)
	signableBytes, err := unsignedBlock.signableBytes()
	if err != nil {
		return nil, err
	}

	messageHash := secp256k1.Hash(blake2b.Sum256(signableBytes))
	signature, err := privateKey.SchnorrSign(&messageHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign block")
	}

	return newStakeBlock(parentID, timestamp, transactions, generatorBox, attachment,
		signature.Serialize()[:]), nil
}

// newStakeBlock clones the caller-owned fields and derives the block ID
// eagerly. All construction paths go through here, so every StakeBlock in
// existence carries a valid memoized ID.
func newStakeBlock(parentID *externalapi.BlockID, timestamp int64, transactions []Transaction,
	generatorBox *generatorbox.GeneratorBox, attachment []byte, signature []byte) *StakeBlock {

	transactionsClone := make([]Transaction, len(transactions))
	copy(transactionsClone, transactions)

	attachmentClone := make([]byte, len(attachment))
	copy(attachmentClone, attachment)

	signatureClone := make([]byte, len(signature))
	copy(signatureClone, signature)

	return &StakeBlock{
		parentID:     parentID,
		timestamp:    timestamp,
		transactions: transactionsClone,
		generatorBox: generatorBox,
		attachment:   attachmentClone,
		signature:    signatureClone,
		id:           deriveBlockID(parentID, timestamp, generatorBox, attachment),
	}
}

// deriveBlockID hashes parentID ‖ timestamp ‖ generator box ID ‖ attachment
// with blake2b-256. Transactions and the signature deliberately stay out of
// the ID: the box nonce binds the identity to the stake claim, not to the
// payload.
func deriveBlockID(parentID *externalapi.BlockID, timestamp int64,
	generatorBox *generatorbox.GeneratorBox, attachment []byte) *externalapi.BlockID {

	var timestampBytes [timestampSize]byte
	binary.BigEndian.PutUint64(timestampBytes[:], uint64(timestamp))

	writer := hashes.NewHashWriter()
	writer.InfallibleWrite(parentID.ByteSlice())
	writer.InfallibleWrite(timestampBytes[:])
	writer.InfallibleWrite(generatorBox.ID())
	writer.InfallibleWrite(attachment)
	return writer.Finalize()
}

// ID returns the content-addressed identifier of this block
func (block *StakeBlock) ID() *externalapi.BlockID {
	return block.id
}

// ParentID returns the identifier of the predecessor block
func (block *StakeBlock) ParentID() *externalapi.BlockID {
	return block.parentID
}

// Timestamp returns the block timestamp in milliseconds
func (block *StakeBlock) Timestamp() int64 {
	return block.timestamp
}

// Transactions returns the transactions embedded in this block. For a block
// decoded from bytes this is the canonical wire order. The returned slice is
// cloned, so it is safe to modify.
func (block *StakeBlock) Transactions() []Transaction {
	transactionsClone := make([]Transaction, len(block.transactions))
	copy(transactionsClone, block.transactions)
	return transactionsClone
}

// GeneratorBox returns the stake-ownership proof of the block producer
func (block *StakeBlock) GeneratorBox() *generatorbox.GeneratorBox {
	return block.generatorBox
}

// Attachment returns the free-form payload attached to this block.
// The returned slice is cloned, so it is safe to modify.
func (block *StakeBlock) Attachment() []byte {
	attachmentClone := make([]byte, len(block.attachment))
	copy(attachmentClone, block.attachment)
	return attachmentClone
}

// Signature returns the block signature, empty for an unsigned block.
// The returned slice is cloned, so it is safe to modify.
func (block *StakeBlock) Signature() []byte {
	signatureClone := make([]byte, len(block.signature))
	copy(signatureClone, block.signature)
	return signatureClone
}

// SignatureValid reports whether the block signature verifies against the
// serialized block with the signature region blanked, using the public key
// embedded in the generator box. Any mismatch, including a missing or
// malformed signature, yields false rather than an error: an invalid
// signature is an expected outcome, not a malformed input.
func (block *StakeBlock) SignatureValid() bool {
	if len(block.signature) != SignatureSize {
		return false
	}

	signableBytes, err := block.signableBytes()
	if err != nil {
		return false
	}

	return block.generatorBox.VerifySignature(signableBytes, block.signature)
}

// signableBytes returns the serialized form that block signatures cover: the
// full wire layout with a zero-length signature region.
func (block *StakeBlock) signableBytes() ([]byte, error) {
	return block.serializeWithSignature(nil)
}
