package transport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/binschema/binschema/codec"
	"github.com/binschema/binschema/value"
)

// Conn wraps one accepted net.Conn with the framing and handshake state
// machine described by the package doc.
type Conn struct {
	id     uuid.UUID
	server *Server
	conn   net.Conn
	state  ConnState
	log    zerolog.Logger
}

func newConn(s *Server, nc net.Conn) *Conn {
	id := uuid.New()
	return &Conn{
		id:     id,
		server: s,
		conn:   nc,
		state:  ConnWaitHello,
		log:    log.With().Str("conn", id.String()).Logger(),
	}
}

// ID returns the connection's identity, stable for its lifetime.
func (c *Conn) ID() uuid.UUID { return c.id }

func (c *Conn) readHeader() (ProtocolHeader, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(c.conn, raw[:]); err != nil {
		return ProtocolHeader{}, err
	}
	return ProtocolHeader{
		PacketLength: binary.LittleEndian.Uint32(raw[:4]),
		MessageType:  binary.LittleEndian.Uint32(raw[4:]),
	}, nil
}

func (c *Conn) writeHeader(h ProtocolHeader) error {
	var raw [headerSize]byte
	binary.LittleEndian.PutUint32(raw[:4], h.PacketLength)
	binary.LittleEndian.PutUint32(raw[4:], h.MessageType)
	_, err := c.conn.Write(raw[:])
	return err
}

// Send frames and writes one message of a registered type: encode v against
// the descriptor's schema, then the 8-byte header, then the payload.
func (c *Conn) Send(messageType uint32, v *value.Value) error {
	descriptor, ok := c.server.Registry.Lookup(messageType)
	if !ok {
		return fmt.Errorf("%w: type %d", ErrUnknownMessage, messageType)
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, descriptor.Schema, v); err != nil {
		c.server.metrics.encodeError(descriptor.Name)
		return err
	}

	if err := c.writeHeader(ProtocolHeader{PacketLength: uint32(buf.Len()), MessageType: messageType}); err != nil {
		return err
	}
	_, err := c.conn.Write(buf.Bytes())
	return err
}

func (c *Conn) nextMessage() error {
	header, err := c.readHeader()
	if err != nil {
		return err
	}
	c.server.metrics.read(headerSize)

	if header.PacketLength > c.server.MaxMessageSize {
		switch c.server.OverflowPolicy {
		case MessageOverflowDiscard:
			_, _ = io.CopyN(io.Discard, c.conn, int64(header.PacketLength))
			c.log.Warn().Uint32("type", header.MessageType).Msg("discarded oversized message")
			return nil
		case MessageOverflowTerminate:
			return ErrMsgLength
		}
	}

	descriptor, ok := c.server.Registry.Lookup(header.MessageType)
	if !ok {
		c.log.Warn().Uint32("type", header.MessageType).Msg("unknown message type")
		return fmt.Errorf("%w: type %d", ErrUnknownMessage, header.MessageType)
	}

	if !descriptor.internal && c.state == ConnWaitHello {
		return fmt.Errorf("%w: %q", ErrBeforeHello, descriptor.Name)
	}

	payload := make([]byte, header.PacketLength)
	c.server.metrics.read(len(payload))
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return err
	}

	if descriptor.Name == "Hello" {
		c.state = ConnEstablished
	}

	if descriptor.Handler == nil {
		return nil
	}

	v, err := codec.Decode(bytes.NewReader(payload), descriptor.Schema)
	if err != nil {
		return err
	}
	c.server.metrics.decoded(descriptor.Name)

	return descriptor.Handler(c, v)
}
