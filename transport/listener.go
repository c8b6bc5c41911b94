package transport

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Listener wraps a net.Listener and hands out framed connections,
// grounded directly on the teacher's Server.Serve: a watchdog
// goroutine closes the listener on context cancellation, and each
// accepted connection is handed to its own goroutine.
type Listener struct {
	ln  net.Listener
	Log *logrus.Logger
}

// Listen opens a TCP listener on addr.
func Listen(network, addr string) (*Listener, error) {
	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, errors.Wrap(err, "transport: listen")
	}
	return &Listener{ln: ln}, nil
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}

func (l *Listener) logger() *logrus.Logger {
	if l.Log != nil {
		return l.Log
	}
	return logrus.StandardLogger()
}

// Serve accepts connections until ctx is cancelled, invoking handle in
// its own goroutine per connection, and waits for all in-flight
// handlers to return before returning itself. handle owns the
// connection for its whole lifetime; it is responsible for calling
// Conn.Close or letting ReadLoop return on its own.
func (l *Listener) Serve(ctx context.Context, handle func(ctx context.Context, c *Conn)) error {
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		l.ln.Close()
	}()

	for {
		nc, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				wg.Wait()
				return ctx.Err()
			}
			l.logger().WithError(err).Warn("transport: accept failed")
			continue
		}

		conn := NewConn(nc)
		conn.Log = l.Log
		wg.Add(1)
		go func() {
			defer wg.Done()
			handle(ctx, conn)
		}()
	}
}
