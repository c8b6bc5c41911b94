package transport_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/chaosrpc/chaosrpc/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadLoopRoundTrip(t *testing.T) {
	a, b := net.Pipe()
	ca := transport.NewConn(a)
	cb := transport.NewConn(b)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan []byte, 4)
	go cb.ReadLoop(ctx, func(buf []byte) error {
		received <- append([]byte(nil), buf...)
		return nil
	})

	messages := [][]byte{
		[]byte("hello"),
		{},
		[]byte("a slightly longer message to frame"),
	}
	for _, m := range messages {
		require.NoError(t, ca.Write(ctx, m))
	}

	for i, want := range messages {
		select {
		case got := <-received:
			assert.Equalf(t, want, got, "message %d", i)
		case <-ctx.Done():
			t.Fatalf("message %d: timed out waiting for it", i)
		}
	}
}

func TestCloseSendsCloseFrameAndReadLoopReturnsCleanly(t *testing.T) {
	a, b := net.Pipe()
	ca := transport.NewConn(a)
	cb := transport.NewConn(b)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- cb.ReadLoop(ctx, func(buf []byte) error { return nil })
	}()

	require.NoError(t, ca.Close())

	select {
	case err := <-done:
		assert.NoError(t, err, "expected ReadLoop to return nil on close frame")
	case <-ctx.Done():
		t.Fatal("timed out waiting for ReadLoop to observe the close frame")
	}
}

func TestWriteRejectsOversizedFrame(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	c := transport.NewConn(a)
	ctx := context.Background()
	err := c.Write(ctx, make([]byte, 1<<24))
	assert.ErrorIs(t, err, transport.ErrFrameTooLarge)
}
