// Package chaosrpc implements the bidirectional, length-prefixed,
// interface-oriented RPC core described by this repository's
// specification: an Endpoint that frames outbound proxy calls, decodes
// inbound ones, dispatches them to registered handlers, and correlates
// responses with pending futures by a 7-bit call-id.
//
// Sub-packages wire (the binary codec), registry (the interface/method
// catalogue), and future (deferred results) implement the three other
// tightly coupled subsystems; transport is an out-of-core length-
// prefixed TCP adapter, and examples/calc is a hand-written stand-in for
// what a code generator would produce from an interface declaration.
package chaosrpc
