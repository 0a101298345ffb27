package staketx

import (
	"bytes"
	"testing"

	"github.com/kaspanet/go-secp256k1"
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

func TestNewRejectsBadKeySizes(t *testing.T) {
	_, publicKey := newTestKeyPair(t)

	_, err := New(publicKey[:10], publicKey, 1, 1)
	if err == nil {
		t.Error("New: expected an error for a short sender key")
	}
	_, err = New(publicKey, append(publicKey, 0), 1, 1)
	if err == nil {
		t.Error("New: expected an error for a long recipient key")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	senderKeyPair, senderPublicKey := newTestKeyPair(t)
	_, recipientPublicKey := newTestKeyPair(t)

	tx, err := New(senderPublicKey, recipientPublicKey, 12345, 7)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	signedTx, err := tx.Sign(senderKeyPair)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	serialized, err := signedTx.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if len(serialized) != SerializedSize {
		t.Fatalf("Serialize: length mismatch - got: %d, want: %d", len(serialized), SerializedSize)
	}

	deserialized, err := DeserializeTransaction(serialized)
	if err != nil {
		t.Fatalf("DeserializeTransaction: %v", err)
	}
	if !signedTx.Equal(deserialized) {
		t.Error("DeserializeTransaction: round trip produced a different transaction")
	}
	if !signedTx.TransactionID().Equal(deserialized.TransactionID()) {
		t.Error("DeserializeTransaction: round trip produced a different transaction ID")
	}
	if !deserialized.VerifySignature() {
		t.Error("VerifySignature: round-tripped signature did not verify")
	}

	_, err = DeserializeTransaction(serialized[:SerializedSize-1])
	if err == nil {
		t.Error("DeserializeTransaction: expected an error for truncated input")
	}
}

func TestTransactionIDIgnoresSignature(t *testing.T) {
	senderKeyPair, senderPublicKey := newTestKeyPair(t)
	_, recipientPublicKey := newTestKeyPair(t)

	tx, err := New(senderPublicKey, recipientPublicKey, 100, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	signedTx, err := tx.Sign(senderKeyPair)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !tx.TransactionID().Equal(signedTx.TransactionID()) {
		t.Error("TransactionID: signing changed the transaction ID")
	}
	if bytes.Equal(tx.Signature(), signedTx.Signature()) {
		t.Error("Sign: the signature was not attached")
	}

	otherTx, err := New(senderPublicKey, recipientPublicKey, 101, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tx.TransactionID().Equal(otherTx.TransactionID()) {
		t.Error("TransactionID: changing the amount did not change the transaction ID")
	}
}

func TestSignRejectsWrongKey(t *testing.T) {
	_, senderPublicKey := newTestKeyPair(t)
	otherKeyPair, _ := newTestKeyPair(t)
	_, recipientPublicKey := newTestKeyPair(t)

	tx, err := New(senderPublicKey, recipientPublicKey, 100, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = tx.Sign(otherKeyPair)
	if err == nil {
		t.Error("Sign: expected an error for a key that does not match the sender")
	}
}

func TestVerifySignatureDetectsTampering(t *testing.T) {
	senderKeyPair, senderPublicKey := newTestKeyPair(t)
	_, recipientPublicKey := newTestKeyPair(t)

	tx, err := New(senderPublicKey, recipientPublicKey, 100, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tx.VerifySignature() {
		t.Error("VerifySignature: an unsigned transaction verified")
	}

	signedTx, err := tx.Sign(senderKeyPair)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	serialized, err := signedTx.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	// Flip one byte of the amount region and check that the signature no
	// longer verifies.
	serialized[2*PublicKeySize] ^= 0x01
	tampered, err := DeserializeTransaction(serialized)
	if err != nil {
		t.Fatalf("DeserializeTransaction: %v", err)
	}
	if tampered.VerifySignature() {
		t.Error("VerifySignature: a tampered transaction verified")
	}
}
