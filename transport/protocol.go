// Package transport layers a framed, schema-negotiated byte stream over
// net.Conn on top of the codec package: an 8-byte length+type header per
// message, a registry mapping message types to schemas, and a Hello/Ping
// handshake encoded with the ordinary value codec instead of reflection.
package transport

import "errors"

// MessageOverflowPolicy decides what a connection does when it receives a
// header whose declared length exceeds the server's configured maximum.
type MessageOverflowPolicy int

const (
	// MessageOverflowDiscard reads and drops the oversized payload, keeping
	// the connection open.
	MessageOverflowDiscard MessageOverflowPolicy = iota
	// MessageOverflowTerminate closes the connection instead.
	MessageOverflowTerminate
)

// ConnState tracks whether a connection has completed the Hello handshake.
type ConnState int

const (
	ConnWaitHello ConnState = iota
	ConnEstablished
)

var (
	ErrHeaderLength     = errors.New("transport: invalid header length (must be 8 bytes)")
	ErrMsgLength        = errors.New("transport: message exceeds configured limit")
	ErrUnknownMessage   = errors.New("transport: unknown message type")
	ErrBeforeHello      = errors.New("transport: message sent before Hello handshake completed")
	ErrDuplicateMessage = errors.New("transport: message type registered twice")
)

// ProtocolHeader is the fixed 8-byte frame preceding every message payload:
// a little-endian length followed by a little-endian message type ID.
type ProtocolHeader struct {
	PacketLength uint32
	MessageType  uint32
}

const headerSize = 8
