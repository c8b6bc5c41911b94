package wire

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Writer accumulates a single framed message's payload, field by field,
// in declaration order. It never fails to write a primitive — only
// sequence-length and schema checks can fail, surfaced through the
// WriteSeqLen helper and by composite-type callers.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer ready for field-by-field encoding.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Bytes returns the accumulated payload. The slice is owned by the
// Writer; callers that need to retain it across further writes should
// copy it first.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Raw appends pre-encoded bytes verbatim, used when nesting one codec's
// output into another's (e.g. a composite field that encoded itself into
// a scratch Writer).
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) I8(v int8)   { w.buf = append(w.buf, byte(v)) }
func (w *Writer) U8(v uint8)  { w.buf = append(w.buf, v) }

func (w *Writer) I16(v int16) { w.U16(uint16(v)) }
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) I32(v int32) { w.U32(uint32(v)) }
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) I64(v int64) { w.U64(uint64(v)) }
func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }
func (w *Writer) F64(v float64) { w.U64(math.Float64bits(v)) }

// Decimal writes the opaque 16-byte decimal value verbatim.
func (w *Writer) Decimal(v Decimal) {
	w.buf = append(w.buf, v[:]...)
}

// Char writes a single UTF-16 code unit. Runes outside the basic
// multilingual plane are truncated to their first code unit, matching
// the two-byte wire width spec.md defines for char.
func (w *Writer) Char(v rune) {
	units := utf16.Encode([]rune{v})
	if len(units) == 0 {
		w.U16(0)
		return
	}
	w.U16(units[0])
}

// Timestamp writes v as signed 64-bit nanoseconds since the Unix epoch,
// UTC — the portable convention this module adopts in place of the
// source platform's binary date encoding (see SPEC_FULL.md §3).
func (w *Writer) Timestamp(v time.Time) {
	w.I64(v.UTC().UnixNano())
}

// Duration writes v as a signed 64-bit tick count in 100ns units, per
// spec.md's duration encoding.
func (w *Writer) Duration(v time.Duration) {
	w.I64(int64(v) / 100)
}

// String writes a 7-bit-per-byte varint byte-length followed by the
// UTF-8 payload.
func (w *Writer) String(v string) {
	w.writeVarint(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *Writer) writeVarint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WritePresence writes the 1-byte nullable presence tag. Callers write
// the payload themselves only when present is true.
func (w *Writer) WritePresence(present bool) {
	w.Bool(present)
}

// WriteSeqLen writes a sequence's 16-bit little-endian length prefix,
// failing with ErrSequenceTooLong if n exceeds MaxSeqLen.
func (w *Writer) WriteSeqLen(n int) error {
	if n < 0 || n > MaxSeqLen {
		return errors.Wrapf(ErrSequenceTooLong, "length %d", n)
	}
	w.U16(uint16(n))
	return nil
}
