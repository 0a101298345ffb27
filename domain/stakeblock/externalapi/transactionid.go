package externalapi

// TransactionID is the identifier of a transaction embedded in a stake
// block. It shares the byte representation of BlockID but is a distinct
// type, so the two cannot be mixed up.
type TransactionID BlockID

// NewTransactionIDFromByteSlice constructs a TransactionID from the given byte slice
func NewTransactionIDFromByteSlice(idBytes []byte) (*TransactionID, error) {
	id, err := NewBlockIDFromByteSlice(idBytes)
	return (*TransactionID)(id), err
}

// NewTransactionIDFromString constructs a TransactionID from the given hex string
func NewTransactionIDFromString(idString string) (*TransactionID, error) {
	id, err := NewBlockIDFromString(idString)
	return (*TransactionID)(id), err
}

// String returns the TransactionID as the hexadecimal string of its bytes.
// This string is also the canonical sort key for the on-wire transaction
// order inside a block.
func (id TransactionID) String() string {
	return BlockID(id).String()
}

// ByteSlice returns the bytes in this TransactionID represented as a byte slice.
// The bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *TransactionID) ByteSlice() []byte {
	return (*BlockID)(id).ByteSlice()
}

// Equal returns whether id equals to other
func (id *TransactionID) Equal(other *TransactionID) bool {
	return (*BlockID)(id).Equal((*BlockID)(other))
}
