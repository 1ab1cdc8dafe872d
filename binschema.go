// Package binschema is the high-level entry point for the self-describing
// binary format implemented by the schema, value, and codec packages: build
// a schema, build a conforming value, and call Encode/Decode. EncodeSchema
// and DecodeSchema transmit the schema itself, by delegating to the same
// codec against the fixed meta-schema.
package binschema

import (
	"io"

	"github.com/binschema/binschema/codec"
	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/value"
)

// Encode writes v to dst according to s.
func Encode(dst io.Writer, s *schema.Schema, v *value.Value) error {
	return codec.Encode(dst, s, v)
}

// Decode reads a value from src according to s.
func Decode(src io.Reader, s *schema.Schema) (*value.Value, error) {
	return codec.Decode(src, s)
}

// EncodeSchema writes s itself to dst, encoded against the meta-schema.
func EncodeSchema(dst io.Writer, s *schema.Schema) error {
	return codec.EncodeSchema(dst, s)
}

// DecodeSchema reads a schema from src, the inverse of EncodeSchema.
func DecodeSchema(src io.Reader) (*schema.Schema, error) {
	return codec.DecodeSchema(src)
}
