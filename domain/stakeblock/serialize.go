package stakeblock

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"

	"github.com/tandemnet/tandemd/domain/stakeblock/externalapi"
	"github.com/tandemnet/tandemd/domain/stakeblock/generatorbox"
)

const (
	timestampSize    = 8
	lengthPrefixSize = 4

	// SignatureSize is the exact size of a block signature on the wire
	SignatureSize = 64

	// MaxSerializedSize is the hard cap on the serialized size of a block.
	// DeserializeStakeBlock rejects longer inputs before parsing any field.
	MaxSerializedSize = 512 * 1024
)

// Serialize returns the canonical wire representation of the block:
// parentID ‖ timestamp ‖ generator box ‖ signature ‖ transaction count ‖
// length-prefixed transactions in canonical order ‖ length-prefixed
// attachment. All integers are big-endian.
func (block *StakeBlock) Serialize() ([]byte, error) {
	return block.serializeWithSignature(block.signature)
}

func (block *StakeBlock) serializeWithSignature(signature []byte) ([]byte, error) {
	buffer := &bytes.Buffer{}
	buffer.Write(block.parentID.ByteSlice())

	var timestampBytes [timestampSize]byte
	binary.BigEndian.PutUint64(timestampBytes[:], uint64(block.timestamp))
	buffer.Write(timestampBytes[:])

	buffer.Write(block.generatorBox.Serialize())
	buffer.Write(signature)

	orderedTransactions := canonicalTransactionOrder(block.transactions)
	writeLengthPrefix(buffer, uint32(len(orderedTransactions)))
	for _, transaction := range orderedTransactions {
		transactionBytes, err := transaction.Serialize()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to serialize transaction %s",
				transaction.TransactionID())
		}
		writeLengthPrefix(buffer, uint32(len(transactionBytes)))
		buffer.Write(transactionBytes)
	}

	writeLengthPrefix(buffer, uint32(len(block.attachment)))
	buffer.Write(block.attachment)

	return buffer.Bytes(), nil
}

func writeLengthPrefix(buffer *bytes.Buffer, length uint32) {
	var lengthBytes [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(lengthBytes[:], length)
	buffer.Write(lengthBytes[:])
}

// canonicalTransactionOrder returns the transactions sorted descending by
// the hexadecimal string of their IDs. Descending looks backwards, but it is
// the order every peer emits and expects; sorting ascending produces
// non-interoperable bytes.
func canonicalTransactionOrder(transactions []Transaction) []Transaction {
	orderedTransactions := make([]Transaction, len(transactions))
	copy(orderedTransactions, transactions)
	sort.SliceStable(orderedTransactions, func(i, j int) bool {
		return orderedTransactions[i].TransactionID().String() >
			orderedTransactions[j].TransactionID().String()
	})
	return orderedTransactions
}

// DeserializeStakeBlock reconstructs a block from the output of Serialize.
// Embedded transactions are delegated to decodeTransaction, and the
// resulting block keeps them in the order they appear on the wire.
// Failures are wrapped in ErrBlockTooLarge, ErrBlockTruncated or
// ErrSubfieldInvalid.
func DeserializeStakeBlock(blockBytes []byte, decodeTransaction TransactionDecoder) (*StakeBlock, error) {
	if len(blockBytes) > MaxSerializedSize {
		return nil, errors.Wrapf(ErrBlockTooLarge, "serialized block is %d bytes, the maximum is %d",
			len(blockBytes), MaxSerializedSize)
	}

	reader := &blockReader{data: blockBytes}

	parentIDBytes, err := reader.readBytes(externalapi.BlockIDSize, "parent ID")
	if err != nil {
		return nil, err
	}
	parentID, err := externalapi.NewBlockIDFromByteSlice(parentIDBytes)
	if err != nil {
		return nil, err
	}

	timestampBytes, err := reader.readBytes(timestampSize, "timestamp")
	if err != nil {
		return nil, err
	}
	timestamp := int64(binary.BigEndian.Uint64(timestampBytes))

	boxBytes, err := reader.readBytes(generatorbox.SerializedSize, "generator box")
	if err != nil {
		return nil, err
	}
	box, err := generatorbox.DeserializeGeneratorBox(boxBytes)
	if err != nil {
		return nil, errors.Wrapf(ErrSubfieldInvalid, "generator box: %s", err)
	}

	signature, err := reader.readBytes(SignatureSize, "signature")
	if err != nil {
		return nil, err
	}

	transactionCount, err := reader.readUint32("transaction count")
	if err != nil {
		return nil, err
	}
	// Each transaction occupies at least its length prefix, which bounds the
	// plausible count by the remaining bytes. Checking upfront keeps a bogus
	// count from allocating a huge slice.
	if uint64(transactionCount)*lengthPrefixSize > uint64(reader.remaining()) {
		return nil, errors.Wrapf(ErrBlockTruncated,
			"transaction count %d does not fit in the %d remaining bytes",
			transactionCount, reader.remaining())
	}

	transactions := make([]Transaction, 0, transactionCount)
	for i := uint32(0); i < transactionCount; i++ {
		transactionLength, err := reader.readUint32("transaction length")
		if err != nil {
			return nil, err
		}
		transactionBytes, err := reader.readBytes(int(transactionLength), "transaction")
		if err != nil {
			return nil, err
		}
		transaction, err := decodeTransaction(transactionBytes)
		if err != nil {
			return nil, errors.Wrapf(ErrSubfieldInvalid, "transaction %d: %s", i, err)
		}
		transactions = append(transactions, transaction)
	}

	attachmentLength, err := reader.readUint32("attachment length")
	if err != nil {
		return nil, err
	}
	attachment, err := reader.readBytes(int(attachmentLength), "attachment")
	if err != nil {
		return nil, err
	}

	return newStakeBlock(parentID, timestamp, transactions, box, attachment, signature), nil
}

// blockReader walks the serialized block with a cursor. Returned slices
// alias the input; newStakeBlock clones everything it keeps.
type blockReader struct {
	data   []byte
	cursor int
}

func (r *blockReader) remaining() int {
	return len(r.data) - r.cursor
}

func (r *blockReader) readBytes(amount int, fieldName string) ([]byte, error) {
	if amount > r.remaining() {
		return nil, errors.Wrapf(ErrBlockTruncated, "%s needs %d bytes, only %d remain",
			fieldName, amount, r.remaining())
	}
	readBytes := r.data[r.cursor : r.cursor+amount]
	r.cursor += amount
	return readBytes, nil
}

func (r *blockReader) readUint32(fieldName string) (uint32, error) {
	lengthBytes, err := r.readBytes(lengthPrefixSize, fieldName)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(lengthBytes), nil
}
