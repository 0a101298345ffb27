package externalapi

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// BlockIDSize of array used to store block identifiers.
const BlockIDSize = 32

// BlockID is the content-addressed identifier of a stake block. It is
// read-only once constructed.
type BlockID struct {
	idArray [BlockIDSize]byte
}

// NewBlockIDFromByteArray constructs a BlockID from the given byte array
func NewBlockIDFromByteArray(idBytes *[BlockIDSize]byte) *BlockID {
	return &BlockID{
		idArray: *idBytes,
	}
}

// NewBlockIDFromByteSlice constructs a BlockID from the given byte slice
func NewBlockIDFromByteSlice(idBytes []byte) (*BlockID, error) {
	if len(idBytes) != BlockIDSize {
		return nil, errors.Errorf("invalid block ID size. Want: %d, got: %d",
			BlockIDSize, len(idBytes))
	}
	id := BlockID{
		idArray: [BlockIDSize]byte{},
	}
	copy(id.idArray[:], idBytes)
	return &id, nil
}

// NewBlockIDFromString constructs a BlockID from the given hex string
func NewBlockIDFromString(idString string) (*BlockID, error) {
	expectedLength := BlockIDSize * 2
	if len(idString) != expectedLength {
		return nil, errors.Errorf("block ID string length is %d, while it should be %d",
			len(idString), expectedLength)
	}

	idBytes, err := hex.DecodeString(idString)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewBlockIDFromByteSlice(idBytes)
}

// String returns the BlockID as the hexadecimal string of its bytes.
func (id BlockID) String() string {
	return hex.EncodeToString(id.idArray[:])
}

// ByteArray returns the bytes in this BlockID represented as a byte array.
// The bytes are cloned, therefore it is safe to modify the resulting array.
func (id *BlockID) ByteArray() *[BlockIDSize]byte {
	arrayClone := id.idArray
	return &arrayClone
}

// ByteSlice returns the bytes in this BlockID represented as a byte slice.
// The bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *BlockID) ByteSlice() []byte {
	return id.ByteArray()[:]
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal accordingly.
var _ BlockID = BlockID{idArray: [BlockIDSize]byte{}}

// Equal returns whether id equals to other
func (id *BlockID) Equal(other *BlockID) bool {
	if id == nil || other == nil {
		return id == other
	}

	return id.idArray == other.idArray
}

// CloneBlockIDs returns a clone of the given BlockID slice.
// Note: since BlockID is a read-only type, the clone is shallow
func CloneBlockIDs(ids []*BlockID) []*BlockID {
	clone := make([]*BlockID, len(ids))
	copy(clone, ids)
	return clone
}
