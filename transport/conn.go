package transport

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Conn wraps a net.Conn with the 3-byte length-prefixed framing this
// package defines. Writes are serialized with a mutex the way the
// teacher's network type guards concurrent senders; reads are only
// ever driven by ReadLoop's single goroutine, matching the single
// in-order consumer an Endpoint expects on ReceiveData.
type Conn struct {
	nc  net.Conn
	wmu sync.Mutex
	Log *logrus.Logger
}

// NewConn wraps an already-established net.Conn (from Dial or from a
// Listener's Accept).
func NewConn(nc net.Conn) *Conn {
	return &Conn{nc: nc}
}

// Dial opens a new framed connection to addr.
func Dial(ctx context.Context, network, addr string) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, errors.Wrap(err, "transport: dial")
	}
	return NewConn(nc), nil
}

func (c *Conn) logger() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// RemoteAddr returns the underlying connection's remote address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nc.RemoteAddr()
}

// Write sends buf as a single frame. Concurrent Write calls are safe;
// each frame is written atomically under c.wmu so interleaved writers
// can never tear a header apart from its payload.
func (c *Conn) Write(ctx context.Context, buf []byte) error {
	if len(buf) > maxFrameLen {
		return errors.Wrapf(ErrFrameTooLarge, "frame of %d bytes", len(buf))
	}
	hdr := lengthHeader(len(buf), false)

	c.wmu.Lock()
	defer c.wmu.Unlock()
	if dl, ok := ctx.Deadline(); ok {
		c.nc.SetWriteDeadline(dl)
		defer c.nc.SetWriteDeadline(time.Time{})
	}
	if _, err := c.nc.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "transport: write frame header")
	}
	if len(buf) == 0 {
		return nil
	}
	if _, err := c.nc.Write(buf); err != nil {
		return errors.Wrap(err, "transport: write frame payload")
	}
	return nil
}

// Close sends a zero-length frame with the close-connection flag set,
// then closes the underlying socket. The peer's ReadLoop observes the
// flag and returns cleanly rather than treating the subsequent EOF as
// an error.
func (c *Conn) Close() error {
	hdr := lengthHeader(0, true)
	c.wmu.Lock()
	c.nc.Write(hdr[:])
	c.wmu.Unlock()
	return c.nc.Close()
}

// ReadLoop reads frames until the peer sends a close frame, the
// context is cancelled, or a transport error occurs, invoking
// onMessage once per payload. It mirrors the teacher's network.listen
// broadcast loop, simplified to the single in-order consumer an
// Endpoint's ReceiveData needs rather than fanning out to subscribers.
func (c *Conn) ReadLoop(ctx context.Context, onMessage func(buf []byte) error) error {
	go func() {
		<-ctx.Done()
		c.nc.Close()
	}()

	var hdr [3]byte
	for {
		if _, err := io.ReadFull(c.nc, hdr[:]); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "transport: read frame header")
		}

		closeFlag, length := parseLengthHeader(hdr)
		if closeFlag {
			return nil
		}

		buf := make([]byte, length)
		if length > 0 {
			if _, err := io.ReadFull(c.nc, buf); err != nil {
				return errors.Wrap(err, "transport: read frame payload")
			}
		}

		if err := onMessage(buf); err != nil {
			c.logger().WithError(err).Warn("transport: onMessage returned an error, closing connection")
			return err
		}
	}
}

// lengthHeader encodes n (which must fit in 23 bits) and the close
// flag into the wire's 3-byte big-endian prefix.
func lengthHeader(n int, closeConn bool) [3]byte {
	var hdr [3]byte
	hdr[0] = byte(n >> 16 & 0x7f)
	hdr[1] = byte(n >> 8)
	hdr[2] = byte(n)
	if closeConn {
		hdr[0] |= 0x80
	}
	return hdr
}

func parseLengthHeader(hdr [3]byte) (closeConn bool, length int) {
	closeConn = hdr[0]&0x80 != 0
	length = int(hdr[0]&0x7f)<<16 | int(hdr[1])<<8 | int(hdr[2])
	return
}
