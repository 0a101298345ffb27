package staketx

import (
	"bytes"
	"encoding/binary"

	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/tandemnet/tandemd/domain/stakeblock/externalapi"
	"github.com/tandemnet/tandemd/domain/stakeblock/utils/hashes"
)

const (
	// PublicKeySize is the size of a serialized Schnorr public key
	PublicKeySize = 32

	// SignatureSize is the size of a serialized Schnorr signature
	SignatureSize = 64

	// signableSize is the size of the region covered by the transaction ID
	// and the signature: sender + recipient + amount + nonce
	signableSize = 2*PublicKeySize + 8 + 8

	// SerializedSize is the exact size of a serialized transaction
	SerializedSize = signableSize + SignatureSize
)

// Transaction is a fixed-width stake-side transfer transaction. It is
// read-only once constructed; Sign produces a new value rather than
// mutating the receiver.
type Transaction struct {
	senderPublicKey    [PublicKeySize]byte
	recipientPublicKey [PublicKeySize]byte
	amount             uint64
	nonce              uint64
	signature          [SignatureSize]byte

	id *externalapi.TransactionID
}

// New constructs an unsigned Transaction
func New(senderPublicKey []byte, recipientPublicKey []byte, amount uint64, nonce uint64) (*Transaction, error) {
	if len(senderPublicKey) != PublicKeySize {
		return nil, errors.Errorf("invalid sender public key size. Want: %d, got: %d",
			PublicKeySize, len(senderPublicKey))
	}
	if len(recipientPublicKey) != PublicKeySize {
		return nil, errors.Errorf("invalid recipient public key size. Want: %d, got: %d",
			PublicKeySize, len(recipientPublicKey))
	}

	tx := &Transaction{
		amount: amount,
		nonce:  nonce,
	}
	copy(tx.senderPublicKey[:], senderPublicKey)
	copy(tx.recipientPublicKey[:], recipientPublicKey)
	tx.id = deriveTransactionID(tx)
	return tx, nil
}

// The transaction ID covers the signable region only, so signing does not
// change the ID.
func deriveTransactionID(tx *Transaction) *externalapi.TransactionID {
	writer := hashes.NewHashWriter()
	writer.InfallibleWrite(tx.signableBytes())
	return writer.FinalizeTransactionID()
}

func (tx *Transaction) signableBytes() []byte {
	signable := make([]byte, signableSize)
	copy(signable, tx.senderPublicKey[:])
	copy(signable[PublicKeySize:], tx.recipientPublicKey[:])
	binary.BigEndian.PutUint64(signable[2*PublicKeySize:], tx.amount)
	binary.BigEndian.PutUint64(signable[2*PublicKeySize+8:], tx.nonce)
	return signable
}

// TransactionID returns the identifier of this transaction
func (tx *Transaction) TransactionID() *externalapi.TransactionID {
	return tx.id
}

// SenderPublicKey returns the serialized public key of the sender.
// The returned slice is cloned, so it is safe to modify.
func (tx *Transaction) SenderPublicKey() []byte {
	senderClone := tx.senderPublicKey
	return senderClone[:]
}

// RecipientPublicKey returns the serialized public key of the recipient.
// The returned slice is cloned, so it is safe to modify.
func (tx *Transaction) RecipientPublicKey() []byte {
	recipientClone := tx.recipientPublicKey
	return recipientClone[:]
}

// Amount returns the transferred amount
func (tx *Transaction) Amount() uint64 {
	return tx.amount
}

// Nonce returns the sender nonce
func (tx *Transaction) Nonce() uint64 {
	return tx.nonce
}

// Signature returns the transaction signature, all-zero for an unsigned
// transaction. The returned slice is cloned, so it is safe to modify.
func (tx *Transaction) Signature() []byte {
	signatureClone := tx.signature
	return signatureClone[:]
}

// Sign returns a copy of this transaction carrying a Schnorr signature over
// its signable region. The private key's public key must match the sender
// public key.
func (tx *Transaction) Sign(privateKey *secp256k1.SchnorrKeyPair) (*Transaction, error) {
	publicKey, err := privateKey.SchnorrPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive the public key from the given private key")
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize the derived public key")
	}
	if !bytes.Equal(serializedPublicKey[:], tx.senderPublicKey[:]) {
		return nil, errors.Errorf("the given private key does not match sender public key %x",
			tx.senderPublicKey)
	}

	messageHash := secp256k1.Hash(blake2b.Sum256(tx.signableBytes()))
	signature, err := privateKey.SchnorrSign(&messageHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	signedTx := *tx
	signedTx.signature = *signature.Serialize()
	return &signedTx, nil
}

// VerifySignature checks the transaction signature against the sender public
// key. Returns false, never an error, for any cryptographic mismatch.
func (tx *Transaction) VerifySignature() bool {
	publicKey, err := secp256k1.DeserializeSchnorrPubKey(tx.senderPublicKey[:])
	if err != nil {
		return false
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(tx.signature[:])
	if err != nil {
		return false
	}

	messageHash := secp256k1.Hash(blake2b.Sum256(tx.signableBytes()))
	return publicKey.SchnorrVerify(&messageHash, signature)
}

// Serialize returns the fixed-width byte representation of the transaction:
// sender ‖ recipient ‖ amount ‖ nonce ‖ signature, integers big-endian
func (tx *Transaction) Serialize() ([]byte, error) {
	serialized := make([]byte, SerializedSize)
	copy(serialized, tx.signableBytes())
	copy(serialized[signableSize:], tx.signature[:])
	return serialized, nil
}

// DeserializeTransaction reconstructs a Transaction from the output of
// Serialize. transactionBytes must be exactly SerializedSize bytes long.
func DeserializeTransaction(transactionBytes []byte) (*Transaction, error) {
	if len(transactionBytes) != SerializedSize {
		return nil, errors.Errorf("invalid serialized transaction size. Want: %d, got: %d",
			SerializedSize, len(transactionBytes))
	}

	amount := binary.BigEndian.Uint64(transactionBytes[2*PublicKeySize:])
	nonce := binary.BigEndian.Uint64(transactionBytes[2*PublicKeySize+8:])
	tx, err := New(transactionBytes[:PublicKeySize], transactionBytes[PublicKeySize:2*PublicKeySize], amount, nonce)
	if err != nil {
		return nil, err
	}
	copy(tx.signature[:], transactionBytes[signableSize:])
	return tx, nil
}

// Equal returns whether tx equals to other
func (tx *Transaction) Equal(other *Transaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	return tx.senderPublicKey == other.senderPublicKey &&
		tx.recipientPublicKey == other.recipientPublicKey &&
		tx.amount == other.amount &&
		tx.nonce == other.nonce &&
		tx.signature == other.signature
}
