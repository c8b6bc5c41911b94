package transport

import (
	"context"

	"github.com/chaosrpc/chaosrpc"
)

// Bind wires ep's outbound messages to conn: every message ep emits
// via OnDataOut is written as one frame on conn. Write errors are
// logged and swallowed rather than propagated, since OnDataOut has no
// error return; a broken conn will also surface through Serve when
// ReadLoop next fails.
func Bind(ctx context.Context, ep *chaosrpc.Endpoint, conn *Conn) {
	ep.OnDataOut = func(buf []byte) {
		if err := conn.Write(ctx, buf); err != nil {
			conn.logger().WithError(err).Warn("transport: failed to write outbound message")
		}
	}
}

// Serve binds ep to conn and runs conn's read loop, feeding every
// decoded message to ep.ReceiveData with session as the per-connection
// session object. A protocol-level error from ReceiveData is logged
// and the connection is kept open, since one malformed message should
// not be allowed to jeopardize every other pending call on it; a
// transport-level error stops the loop and is returned.
func Serve(ctx context.Context, ep *chaosrpc.Endpoint, conn *Conn, session any) error {
	Bind(ctx, ep, conn)
	return conn.ReadLoop(ctx, func(buf []byte) error {
		if err := ep.ReceiveData(buf, session); err != nil {
			conn.logger().WithError(err).Warn("chaosrpc: receive_data reported a protocol error")
		}
		return nil
	})
}
