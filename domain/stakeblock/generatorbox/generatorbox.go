package generatorbox

import (
	"encoding/binary"

	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// PublicKeySize is the size of the serialized Schnorr public key
	// embedded in a generator box
	PublicKeySize = 32

	// IDSize is the size of a generator box ID
	IDSize = 32

	// SerializedSize is the exact size of a serialized generator box:
	// public key + nonce + stake value
	SerializedSize = PublicKeySize + 8 + 8
)

// GeneratorBox is the stake-ownership proof embedded in a stake block. It
// binds the block producer's public key to a stake claim of some value under
// a unique nonce. The box is read-only once constructed.
type GeneratorBox struct {
	publicKey [PublicKeySize]byte
	nonce     uint64
	value     uint64

	id [IDSize]byte
}

// New constructs a GeneratorBox from the given serialized public key, nonce
// and stake value
func New(publicKey []byte, nonce uint64, value uint64) (*GeneratorBox, error) {
	if len(publicKey) != PublicKeySize {
		return nil, errors.Errorf("invalid generator public key size. Want: %d, got: %d",
			PublicKeySize, len(publicKey))
	}

	box := &GeneratorBox{
		nonce: nonce,
		value: value,
	}
	copy(box.publicKey[:], publicKey)
	box.id = deriveID(&box.publicKey, nonce)
	return box, nil
}

// The box ID commits to the public key and the nonce, and nothing else. The
// nonce is what makes two boxes of the same key distinguishable, so it also
// ends up distinguishing the IDs of blocks produced under them.
func deriveID(publicKey *[PublicKeySize]byte, nonce uint64) [IDSize]byte {
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)

	return blake2b.Sum256(append(publicKey[:], nonceBytes[:]...))
}

// PublicKey returns the serialized public key this box embeds.
// The returned slice is cloned, so it is safe to modify.
func (box *GeneratorBox) PublicKey() []byte {
	publicKeyClone := box.publicKey
	return publicKeyClone[:]
}

// Nonce returns the box nonce
func (box *GeneratorBox) Nonce() uint64 {
	return box.nonce
}

// Value returns the stake value this box claims
func (box *GeneratorBox) Value() uint64 {
	return box.value
}

// ID returns the stable identifier of this box.
// The returned slice is cloned, so it is safe to modify.
func (box *GeneratorBox) ID() []byte {
	idClone := box.id
	return idClone[:]
}

// Serialize returns the fixed-width byte representation of the box:
// publicKey ‖ nonce ‖ value, integers big-endian
func (box *GeneratorBox) Serialize() []byte {
	serialized := make([]byte, SerializedSize)
	copy(serialized, box.publicKey[:])
	binary.BigEndian.PutUint64(serialized[PublicKeySize:], box.nonce)
	binary.BigEndian.PutUint64(serialized[PublicKeySize+8:], box.value)
	return serialized
}

// DeserializeGeneratorBox reconstructs a GeneratorBox from the output of
// Serialize. boxBytes must be exactly SerializedSize bytes long.
func DeserializeGeneratorBox(boxBytes []byte) (*GeneratorBox, error) {
	if len(boxBytes) != SerializedSize {
		return nil, errors.Errorf("invalid serialized generator box size. Want: %d, got: %d",
			SerializedSize, len(boxBytes))
	}

	nonce := binary.BigEndian.Uint64(boxBytes[PublicKeySize:])
	value := binary.BigEndian.Uint64(boxBytes[PublicKeySize+8:])
	return New(boxBytes[:PublicKeySize], nonce, value)
}

// VerifySignature checks the given Schnorr signature against the given
// message using the public key embedded in this box. The message is hashed
// with blake2b-256 before verification. Any malformed key or signature
// results in false, never in an error.
func (box *GeneratorBox) VerifySignature(message []byte, signature []byte) bool {
	publicKey, err := secp256k1.DeserializeSchnorrPubKey(box.publicKey[:])
	if err != nil {
		return false
	}

	schnorrSignature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(signature)
	if err != nil {
		return false
	}

	messageHash := secp256k1.Hash(blake2b.Sum256(message))
	return publicKey.SchnorrVerify(&messageHash, schnorrSignature)
}

// Equal returns whether box equals to other
func (box *GeneratorBox) Equal(other *GeneratorBox) bool {
	if box == nil || other == nil {
		return box == other
	}

	return box.publicKey == other.publicKey &&
		box.nonce == other.nonce &&
		box.value == other.value
}
