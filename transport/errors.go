// Package transport is the length-prefixed TCP adapter spec.md §6
// sketches for context and explicitly places outside the RPC core's
// contract: a 3-byte big-endian length prefix per message, with the
// high bit of the first byte reserved as a close-connection flag. It
// exists so the demo binary and the integration tests have a real wire
// to drive an Endpoint over; the core package never imports it.
//
// Grounded on the teacher's connection.go/framer.go/server.go/client.go
// (network read/write/listen, the tcp framer, and the per-connection
// Serve loop), generalized from Modbus' big-endian two-byte length to
// this protocol's 3-byte length-plus-flag prefix.
package transport

import "github.com/pkg/errors"

// ErrFrameTooLarge is returned by Write when buf would not fit in the
// 23-bit length field (the 24th bit of the 3-byte prefix is the close
// flag).
var ErrFrameTooLarge = errors.New("transport: frame exceeds 23-bit length limit")

// maxFrameLen is the largest payload a single frame can carry.
const maxFrameLen = 1<<23 - 1
