package future_test

import (
	"testing"

	"github.com/chaosrpc/chaosrpc/future"
	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeI32(w *wire.Writer, v int32) error { w.I32(v); return nil }
func decodeI32(r *wire.Reader) (int32, error) { return r.I32() }

func TestUnitCompleterRoundTrip(t *testing.T) {
	src := future.NewUnit()
	src.Complete()
	c := future.NewUnitCompleter(src)
	w := wire.NewWriter()
	require.NoError(t, c.WriteResult(w))
	assert.Empty(t, w.Bytes(), "unit completion should write no bytes")

	dst := future.NewUnit()
	dc := future.NewUnitCompleter(dst)
	require.NoError(t, dc.CompleteFrom(wire.NewReader(w.Bytes())))
	assert.True(t, dst.IsComplete())
}

func TestTypedCompleterRoundTrip(t *testing.T) {
	src := future.NewTyped[int32]()
	src.Complete(99)
	c := future.NewTypedCompleter(src, encodeI32, decodeI32)
	w := wire.NewWriter()
	require.NoError(t, c.WriteResult(w))

	dst := future.NewTyped[int32]()
	dc := future.NewTypedCompleter(dst, encodeI32, decodeI32)
	require.NoError(t, dc.CompleteFrom(wire.NewReader(w.Bytes())))
	v, err := dst.Result()
	require.NoError(t, err)
	assert.EqualValues(t, 99, v)
}

func TestErrUnitCompleterRoundTripSuccess(t *testing.T) {
	src := future.NewErrUnit()
	src.CompleteSuccess()
	w := wire.NewWriter()
	require.NoError(t, future.NewErrUnitCompleter(src).WriteResult(w))

	dst := future.NewErrUnit()
	require.NoError(t, future.NewErrUnitCompleter(dst).CompleteFrom(wire.NewReader(w.Bytes())))
	assert.False(t, dst.IsError(), "expected success")
}

func TestErrUnitCompleterRoundTripError(t *testing.T) {
	src := future.NewErrUnit()
	src.CompleteError("nope")
	w := wire.NewWriter()
	require.NoError(t, future.NewErrUnitCompleter(src).WriteResult(w))

	dst := future.NewErrUnit()
	require.NoError(t, future.NewErrUnitCompleter(dst).CompleteFrom(wire.NewReader(w.Bytes())))
	msg, hasErr, _ := dst.Err()
	assert.True(t, hasErr)
	assert.Equal(t, "nope", msg)
}

func TestErrTypedCompleterRoundTripBothPaths(t *testing.T) {
	okSrc := future.NewErrTyped[int32]()
	okSrc.CompleteSuccess(5)
	w1 := wire.NewWriter()
	require.NoError(t, future.NewErrTypedCompleter(okSrc, encodeI32, decodeI32).WriteResult(w1))

	okDst := future.NewErrTyped[int32]()
	require.NoError(t, future.NewErrTypedCompleter(okDst, encodeI32, decodeI32).CompleteFrom(wire.NewReader(w1.Bytes())))
	result, _, hasErr, _ := okDst.Result()
	assert.False(t, hasErr)
	assert.EqualValues(t, 5, result)

	errSrc := future.NewErrTyped[int32]()
	errSrc.CompleteError("division by zero")
	w2 := wire.NewWriter()
	require.NoError(t, future.NewErrTypedCompleter(errSrc, encodeI32, decodeI32).WriteResult(w2))

	errDst := future.NewErrTyped[int32]()
	require.NoError(t, future.NewErrTypedCompleter(errDst, encodeI32, decodeI32).CompleteFrom(wire.NewReader(w2.Bytes())))
	_, msg, hasErr, _ := errDst.Result()
	assert.True(t, hasErr)
	assert.Equal(t, "division by zero", msg)
}
