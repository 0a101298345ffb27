package stakeblock

// These constants identify the specific ways constructing or decoding a
// stake block can fail. Callers match against them with errors.Is.
var (
	// ErrBlockTooLarge indicates that the input to DeserializeStakeBlock
	// exceeds the serialized size cap. The input is rejected before any
	// field is parsed.
	ErrBlockTooLarge = newBlockError("ErrBlockTooLarge")

	// ErrBlockTruncated indicates that a field of the serialized block
	// claims more bytes than remain in the input.
	ErrBlockTruncated = newBlockError("ErrBlockTruncated")

	// ErrSubfieldInvalid indicates that the generator box or one of the
	// transactions failed its own decode. The collaborator's failure is
	// carried in the error text without reinterpretation.
	ErrSubfieldInvalid = newBlockError("ErrSubfieldInvalid")

	// ErrGeneratorKeyMismatch indicates that the private key given to New
	// does not derive the public key embedded in the generator box. This is
	// a caller error, not a transient condition.
	ErrGeneratorKeyMismatch = newBlockError("ErrGeneratorKeyMismatch")
)

// BlockError identifies a malformed serialized block or an invalid
// construction attempt. The caller can use errors.Is against the sentinel
// values above to determine the specific failure.
type BlockError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e BlockError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e BlockError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e BlockError) Cause() error {
	return e.inner
}

func newBlockError(message string) BlockError {
	return BlockError{message: message, inner: nil}
}
