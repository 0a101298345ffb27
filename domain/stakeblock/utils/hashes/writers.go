package hashes

import (
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/tandemnet/tandemd/domain/stakeblock/externalapi"
)

// HashWriter is used to incrementally hash data without concatenating all of
// the data to a single buffer. It exposes an io.Writer api and a Finalize
// function to get the resulting hash. The used hash function is blake2b-256.
type HashWriter struct {
	hash.Hash
}

// NewHashWriter returns a HashWriter over an unkeyed blake2b-256 instance
func NewHashWriter() HashWriter {
	blake, err := blake2b.New256(nil)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. blake2b.New256 returns an error only for invalid keys"))
	}
	return HashWriter{blake}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash as a BlockID
func (h HashWriter) Finalize() *externalapi.BlockID {
	var sum [externalapi.BlockIDSize]byte
	// This should prevent `Sum` from allocating an output buffer, by using
	// the sum buffer directly. We still copy because we don't want to rely on that.
	copy(sum[:], h.Sum(sum[:0]))
	return externalapi.NewBlockIDFromByteArray(&sum)
}

// FinalizeTransactionID returns the resulting hash as a TransactionID
func (h HashWriter) FinalizeTransactionID() *externalapi.TransactionID {
	return (*externalapi.TransactionID)(h.Finalize())
}
