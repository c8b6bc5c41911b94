package wire

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Reader decodes a message payload field by field, in the same
// declaration order the Writer used to produce it. It maintains a
// cursor into the backing slice; it never copies.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b for sequential decoding starting at offset 0.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return errors.Wrapf(ErrTruncatedInput, "need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

func (r *Reader) take(n int) []byte {
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) Bool() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	return r.take(1)[0] != 0, nil
}

func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return r.take(1)[0], nil
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.take(2)), nil
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.take(4)), nil
}

func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.take(8)), nil
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *Reader) Decimal() (Decimal, error) {
	if err := r.need(16); err != nil {
		return Decimal{}, err
	}
	var d Decimal
	copy(d[:], r.take(16))
	return d, nil
}

func (r *Reader) Char() (rune, error) {
	u, err := r.U16()
	if err != nil {
		return 0, err
	}
	runes := utf16.Decode([]uint16{u})
	if len(runes) == 0 {
		return 0, nil
	}
	return runes[0], nil
}

// Timestamp reads the signed 64-bit nanoseconds-since-epoch convention
// this module adopted (SPEC_FULL.md §3) and returns it as a UTC time.Time.
func (r *Reader) Timestamp() (time.Time, error) {
	v, err := r.I64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, v).UTC(), nil
}

// Duration reads a signed 64-bit 100ns tick count.
func (r *Reader) Duration() (time.Duration, error) {
	v, err := r.I64()
	if err != nil {
		return 0, err
	}
	return time.Duration(v) * 100, nil
}

func (r *Reader) readVarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := r.U8()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
		if shift > 63 {
			return 0, errors.Wrap(ErrTruncatedInput, "varint overflow")
		}
	}
}

// String reads a 7-bit-per-byte varint byte-length followed by that
// many UTF-8 bytes.
func (r *Reader) String() (string, error) {
	n, err := r.readVarint()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	return string(r.take(int(n))), nil
}

// ReadPresence reads the 1-byte nullable presence tag.
func (r *Reader) ReadPresence() (bool, error) {
	return r.Bool()
}

// ReadSeqLen reads a sequence's 16-bit little-endian length prefix.
func (r *Reader) ReadSeqLen() (uint16, error) {
	return r.U16()
}
