package wire_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitivesRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	w.Bool(true)
	w.I8(-5)
	w.U8(250)
	w.I16(-1000)
	w.U16(60000)
	w.I32(-70000)
	w.U32(4000000000)
	w.I64(-1 << 40)
	w.U64(1 << 40)
	w.F32(3.5)
	w.F64(-2.25)
	w.Char('λ')
	w.String("hello, wire")

	r := wire.NewReader(w.Bytes())

	b, err := r.Bool()
	require.NoError(t, err)
	assert.True(t, b)

	i8, err := r.I8()
	require.NoError(t, err)
	assert.EqualValues(t, -5, i8)

	u8, err := r.U8()
	require.NoError(t, err)
	assert.EqualValues(t, 250, u8)

	i16, err := r.I16()
	require.NoError(t, err)
	assert.EqualValues(t, -1000, i16)

	u16, err := r.U16()
	require.NoError(t, err)
	assert.EqualValues(t, 60000, u16)

	i32, err := r.I32()
	require.NoError(t, err)
	assert.EqualValues(t, -70000, i32)

	u32, err := r.U32()
	require.NoError(t, err)
	assert.EqualValues(t, 4000000000, u32)

	i64, err := r.I64()
	require.NoError(t, err)
	assert.EqualValues(t, -1<<40, i64)

	u64, err := r.U64()
	require.NoError(t, err)
	assert.EqualValues(t, 1<<40, u64)

	f32, err := r.F32()
	require.NoError(t, err)
	assert.EqualValues(t, 3.5, f32)

	f64, err := r.F64()
	require.NoError(t, err)
	assert.EqualValues(t, -2.25, f64)

	ch, err := r.Char()
	require.NoError(t, err)
	assert.Equal(t, 'λ', ch)

	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "hello, wire", s)

	assert.Zero(t, r.Remaining(), "expected no remaining bytes")
}

func TestU16IsLittleEndian(t *testing.T) {
	w := wire.NewWriter()
	w.U16(0x0102)
	assert.Equal(t, []byte{0x02, 0x01}, w.Bytes())
}

func TestTimestampRoundTripsThroughUTCNanos(t *testing.T) {
	in := time.Date(2026, 7, 31, 12, 0, 0, 123456789, time.UTC)
	w := wire.NewWriter()
	w.Timestamp(in)
	r := wire.NewReader(w.Bytes())
	out, err := r.Timestamp()
	require.NoError(t, err)
	assert.True(t, out.Equal(in), "got %v, want %v", out, in)
}

func TestDurationRoundTripsToTickPrecision(t *testing.T) {
	in := 1234500 * time.Nanosecond // exact multiple of 100ns
	w := wire.NewWriter()
	w.Duration(in)
	r := wire.NewReader(w.Bytes())
	out, err := r.Duration()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStringVarintLengthLongPayload(t *testing.T) {
	longBytes := make([]byte, 200)
	for i := range longBytes {
		longBytes[i] = 'x'
	}
	long := string(longBytes)

	w := wire.NewWriter()
	w.String(long)
	r := wire.NewReader(w.Bytes())
	out, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, long, out)
}

func TestPresenceTag(t *testing.T) {
	w := wire.NewWriter()
	w.WritePresence(false)
	w.WritePresence(true)
	r := wire.NewReader(w.Bytes())

	first, err := r.ReadPresence()
	require.NoError(t, err)
	assert.False(t, first)

	second, err := r.ReadPresence()
	require.NoError(t, err)
	assert.True(t, second)
}

func TestSeqLenRejectsOverMax(t *testing.T) {
	w := wire.NewWriter()
	err := w.WriteSeqLen(wire.MaxSeqLen + 1)
	assert.ErrorIs(t, err, wire.ErrSequenceTooLong)
	assert.NoError(t, w.WriteSeqLen(wire.MaxSeqLen), "boundary length should succeed")
}

func TestReaderReportsTruncatedInput(t *testing.T) {
	r := wire.NewReader([]byte{1, 2})
	_, err := r.U32()
	assert.ErrorIs(t, err, wire.ErrTruncatedInput)
}

func TestOptionRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	writeI32 := func(w *wire.Writer, v int32) error { w.I32(v); return nil }
	readI32 := func(r *wire.Reader) (int32, error) { return r.I32() }

	require.NoError(t, wire.WriteOption(w, wire.Some[int32](42), writeI32))
	require.NoError(t, wire.WriteOption(w, wire.None[int32](), writeI32))

	r := wire.NewReader(w.Bytes())
	some, err := wire.ReadOption(r, readI32)
	require.NoError(t, err)
	assert.True(t, some.Valid)
	assert.EqualValues(t, 42, some.Value)

	none, err := wire.ReadOption(r, readI32)
	require.NoError(t, err)
	assert.False(t, none.Valid)
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := []int32{1, -2, 3, -4}
	w := wire.NewWriter()
	require.NoError(t, wire.WriteSeq(w, seq, func(w *wire.Writer, v int32) error { w.I32(v); return nil }))

	r := wire.NewReader(w.Bytes())
	out, err := wire.ReadSeq(r, func(r *wire.Reader) (int32, error) { return r.I32() })
	require.NoError(t, err)
	assert.Equal(t, seq, out)
}

func TestDecimalRoundTrip(t *testing.T) {
	var d wire.Decimal
	for i := range d {
		d[i] = byte(i)
	}
	w := wire.NewWriter()
	w.Decimal(d)
	r := wire.NewReader(w.Bytes())
	out, err := r.Decimal()
	require.NoError(t, err)
	assert.Equal(t, d, out)
}

func TestEnumRoundTripsForEachUnderlyingIntegerKind(t *testing.T) {
	kinds := []reflect.Kind{
		reflect.Int8, reflect.Uint8,
		reflect.Int16, reflect.Uint16,
		reflect.Int32, reflect.Uint32,
		reflect.Int64, reflect.Uint64,
	}
	for _, k := range kinds {
		w := wire.NewWriter()
		require.NoError(t, wire.WriteEnum(w, 2, k))
		r := wire.NewReader(w.Bytes())
		v, err := wire.ReadEnum(r, k)
		require.NoError(t, err)
		assert.EqualValuesf(t, 2, v, "kind %s", k)
	}
}

func TestEnumRejectsInvalidUnderlyingType(t *testing.T) {
	w := wire.NewWriter()
	err := wire.WriteEnum(w, 1, reflect.String)
	assert.ErrorIs(t, err, wire.ErrInvalidEnumUnderlyingType)

	r := wire.NewReader(nil)
	_, err = wire.ReadEnum(r, reflect.String)
	assert.ErrorIs(t, err, wire.ErrInvalidEnumUnderlyingType)
}
