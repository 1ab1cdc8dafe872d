package transport

import "github.com/binschema/binschema/schema"

// helloID and pingID are fixed: Hello must always be message type 0 and Ping
// type 1, on both sides of a connection, never renumbered.
const (
	helloID uint32 = 0
	pingID  uint32 = 1
)

// HelloSchema is the handshake message a server sends once a connection is
// accepted: its protocol version bounds, the meta-schema-encoded catalog of
// message schemas it speaks, and the ID/name pairs of those messages.
var HelloSchema = schema.StructOf(
	schema.NewField("minVersion", schema.I32()),
	schema.NewField("currVersion", schema.I32()),
	schema.NewField("catalog", schema.Bytes()),
	schema.NewField("descriptors", schema.SeqOf(schema.StructOf(
		schema.NewField("id", schema.U32()),
		schema.NewField("name", schema.Str()),
	))),
)

// PingSchema is a duplex keepalive exchanged in both directions once a
// connection is established.
var PingSchema = schema.StructOf(
	schema.NewField("timestamp", schema.I64()),
)
