// Package wire implements the static, non-self-describing binary codec
// that chaosrpc uses for method arguments, return payloads, and
// user-defined value types. The reader must know the expected type of
// each field; there is no type tag on the wire.
package wire

import (
	"github.com/pkg/errors"
)

// Sentinel errors the codec raises. Wrap these with pkg/errors at the
// point of failure so callers can both errors.Is against the sentinel
// and get a stack trace.
var (
	// ErrSchemaViolation is raised when a value cannot satisfy the
	// declared schema: a null written for a non-nullable field, a
	// missing override, or an unknown type.
	ErrSchemaViolation = errors.New("wire: schema violation")

	// ErrSequenceTooLong is raised when a sequence's length would
	// exceed the 16-bit length prefix's range (65535).
	ErrSequenceTooLong = errors.New("wire: sequence exceeds 65535 elements")

	// ErrTruncatedInput is raised when the stream ends before a value
	// finishes decoding.
	ErrTruncatedInput = errors.New("wire: truncated input")

	// ErrInvalidEnumUnderlyingType is raised when an enum's declared
	// underlying type is not a serializable primitive.
	ErrInvalidEnumUnderlyingType = errors.New("wire: invalid enum underlying type")
)

// MaxSeqLen is the largest number of elements a sequence may carry.
const MaxSeqLen = 65535
