package transport

import (
	"bytes"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/binschema/binschema/codec"
	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/value"
)

// Server accepts connections, frames messages, and dispatches decoded
// values to registered handlers.
type Server struct {
	Registry       *Registry
	OverflowPolicy MessageOverflowPolicy
	MaxMessageSize uint32

	MinVersion int32
	CurrVersion int32

	listener net.Listener
	metrics  *metrics
}

// NewServer builds a Server with a fresh registry and the given limits.
func NewServer(maxMessageSize uint32, policy MessageOverflowPolicy) *Server {
	return &Server{
		Registry:       NewRegistry(),
		OverflowPolicy: policy,
		MaxMessageSize: maxMessageSize,
		MinVersion:     1,
		CurrVersion:    1,
	}
}

// UseMetrics makes the server record its counters in m, as built and
// registered by NewMetrics. A nil m leaves the server uninstrumented.
func (s *Server) UseMetrics(m *metrics) { s.metrics = m }

// ListenAndServe accepts connections on network/address until the listener
// is closed or a permanent accept error occurs.
func (s *Server) ListenAndServe(network, address string) error {
	listener, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	s.listener = listener
	defer listener.Close()

	log.Info().Str("addr", address).Msg("binschema transport listening")

	backoff := time.Second
	for {
		nc, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Warn().Err(err).Dur("backoff", backoff).Msg("temporary accept error")
				time.Sleep(backoff)
				continue
			}
			log.Error().Err(err).Msg("permanent accept error")
			return err
		}
		go s.handleConnection(nc)
	}

	log.Info().Msg("binschema transport shut down")
	return nil
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConnection(nc net.Conn) {
	c := newConn(s, nc)
	defer nc.Close()

	c.log.Info().Msg("connection opened")

	if err := s.sendHello(c); err != nil {
		c.log.Error().Err(err).Msg("hello send failed")
		return
	}

	for {
		if err := c.nextMessage(); err != nil {
			c.log.Debug().Err(err).Msg("connection loop ended")
			break
		}
	}

	c.log.Info().Msg("connection closed")
}

// sendHello builds and writes the handshake message: the server's version
// bounds, the meta-schema-encoded catalog of every schema it speaks, and the
// id/name pairs of those schemas.
func (s *Server) sendHello(c *Conn) error {
	descriptors := s.Registry.Descriptors()

	schemas := make([]*schema.Schema, len(descriptors))
	descFields := make([]*value.Value, len(descriptors))
	for i, d := range descriptors {
		schemas[i] = d.Schema
		descFields[i] = value.StructOf(
			value.F("id", value.U32(d.ID)),
			value.F("name", value.Str(d.Name)),
		)
	}

	var catalog bytes.Buffer
	if err := codec.EncodeSchema(&catalog, catalogSchema(schemas)); err != nil {
		return err
	}

	hello := value.StructOf(
		value.F("minVersion", value.I32(s.MinVersion)),
		value.F("currVersion", value.I32(s.CurrVersion)),
		value.F("catalog", value.Bytes(catalog.Bytes())),
		value.F("descriptors", value.SeqOf(descFields...)),
	)

	return c.Send(helloID, hello)
}

// catalogSchema wraps the registered message schemas in a single schema so
// they can be transmitted as one meta-schema-encoded value: an empty server
// advertises Unit, otherwise a Tuple in registration order.
func catalogSchema(schemas []*schema.Schema) *schema.Schema {
	if len(schemas) == 0 {
		return schema.Unit()
	}
	return schema.TupleOf(schemas...)
}
