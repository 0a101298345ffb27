package generatorbox

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kaspanet/go-secp256k1"
	"golang.org/x/crypto/blake2b"
)

func newTestKeyPair(t *testing.T) (*secp256k1.SchnorrKeyPair, []byte) {
	t.Helper()
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		t.Fatalf("SchnorrPublicKey: %v", err)
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		t.Fatalf("Serialize public key: %v", err)
	}
	return keyPair, serializedPublicKey[:]
}

func TestNewRejectsBadPublicKeySize(t *testing.T) {
	_, err := New(make([]byte, PublicKeySize-1), 1, 1)
	if err == nil {
		t.Error("New: expected an error for a short public key")
	}
	_, err = New(make([]byte, PublicKeySize+1), 1, 1)
	if err == nil {
		t.Error("New: expected an error for a long public key")
	}
}

func TestSerializeLayout(t *testing.T) {
	_, publicKey := newTestKeyPair(t)
	box, err := New(publicKey, 0x0102030405060708, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	serialized := box.Serialize()
	if len(serialized) != SerializedSize {
		t.Fatalf("Serialize: length mismatch - got: %d, want: %d", len(serialized), SerializedSize)
	}
	if !bytes.Equal(serialized[:PublicKeySize], publicKey) {
		t.Errorf("Serialize: public key region mismatch - got: %x, want: %x",
			serialized[:PublicKeySize], publicKey)
	}
	if nonce := binary.BigEndian.Uint64(serialized[PublicKeySize:]); nonce != 0x0102030405060708 {
		t.Errorf("Serialize: nonce region mismatch - got: %x, want: %x", nonce, uint64(0x0102030405060708))
	}
	if value := binary.BigEndian.Uint64(serialized[PublicKeySize+8:]); value != 42 {
		t.Errorf("Serialize: value region mismatch - got: %d, want: %d", value, 42)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	_, publicKey := newTestKeyPair(t)
	box, err := New(publicKey, 7, 1000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	deserialized, err := DeserializeGeneratorBox(box.Serialize())
	if err != nil {
		t.Fatalf("DeserializeGeneratorBox: %v", err)
	}
	if !box.Equal(deserialized) {
		t.Error("DeserializeGeneratorBox: round trip produced a different box")
	}
	if !bytes.Equal(box.ID(), deserialized.ID()) {
		t.Error("DeserializeGeneratorBox: round trip produced a different box ID")
	}

	_, err = DeserializeGeneratorBox(box.Serialize()[:SerializedSize-1])
	if err == nil {
		t.Error("DeserializeGeneratorBox: expected an error for truncated input")
	}
}

func TestIDCommitsToPublicKeyAndNonce(t *testing.T) {
	_, publicKey := newTestKeyPair(t)
	_, otherPublicKey := newTestKeyPair(t)

	box, err := New(publicKey, 1, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sameIdentity, err := New(publicKey, 1, 999999)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	otherNonce, err := New(publicKey, 2, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	otherKey, err := New(otherPublicKey, 1, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The stake value is not part of the identity.
	if !bytes.Equal(box.ID(), sameIdentity.ID()) {
		t.Error("ID: changing the value changed the box ID")
	}
	if bytes.Equal(box.ID(), otherNonce.ID()) {
		t.Error("ID: changing the nonce did not change the box ID")
	}
	if bytes.Equal(box.ID(), otherKey.ID()) {
		t.Error("ID: changing the public key did not change the box ID")
	}
	if len(box.ID()) != IDSize {
		t.Errorf("ID: length mismatch - got: %d, want: %d", len(box.ID()), IDSize)
	}
}

func TestVerifySignature(t *testing.T) {
	keyPair, publicKey := newTestKeyPair(t)
	box, err := New(publicKey, 1, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	message := []byte("block bytes to sign")
	messageHash := secp256k1.Hash(blake2b.Sum256(message))
	signature, err := keyPair.SchnorrSign(&messageHash)
	if err != nil {
		t.Fatalf("SchnorrSign: %v", err)
	}
	serializedSignature := signature.Serialize()

	if !box.VerifySignature(message, serializedSignature[:]) {
		t.Error("VerifySignature: a valid signature did not verify")
	}
	if box.VerifySignature([]byte("other bytes"), serializedSignature[:]) {
		t.Error("VerifySignature: a signature over different bytes verified")
	}
	if box.VerifySignature(message, make([]byte, 64)) {
		t.Error("VerifySignature: an all-zero signature verified")
	}
	if box.VerifySignature(message, serializedSignature[:10]) {
		t.Error("VerifySignature: a malformed signature verified")
	}

	otherKeyPair, _ := newTestKeyPair(t)
	otherSignature, err := otherKeyPair.SchnorrSign(&messageHash)
	if err != nil {
		t.Fatalf("SchnorrSign: %v", err)
	}
	serializedOtherSignature := otherSignature.Serialize()
	if box.VerifySignature(message, serializedOtherSignature[:]) {
		t.Error("VerifySignature: a signature by a different key verified")
	}
}
