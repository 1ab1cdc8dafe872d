package codec

import "errors"

// The eight error kinds a conforming decoder/encoder distinguishes. Callers
// match against these with errors.Is; wrapping with fmt.Errorf("...: %w", ...)
// is used throughout this package to attach positional context.
var (
	// ErrEndOfStream is returned when a read runs out of bytes mid-value.
	ErrEndOfStream = errors.New("codec: unexpected end of stream")

	// ErrMalformedVarint is returned when a varint's shift exceeds the
	// 128-bit cap before a terminating byte appears.
	ErrMalformedVarint = errors.New("codec: malformed varint")

	// ErrOutOfRange is returned when a decoded integer exceeds its declared
	// width, an ordinal discriminant is >= the enum's variant count, or an
	// Option tag or Bool byte is not 0x00/0x01.
	ErrOutOfRange = errors.New("codec: ordinal out of range")

	// ErrInvalidUTF8 is returned when a Str payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("codec: invalid UTF-8 in string")

	// ErrInvalidChar is returned when a Char value, on encode or decode, is
	// not a unicode scalar (negative, >= 0x110000, or a surrogate).
	ErrInvalidChar = errors.New("codec: invalid character")

	// ErrInvalidSchema is returned when a schema fails structural validation
	// (see schema.Schema.Validate) before it is used to encode or decode, or
	// when a value would have to be encoded or decoded under a zero-variant
	// enum.
	ErrInvalidSchema = errors.New("codec: invalid schema")

	// ErrNonConforming is returned when a value's shape does not match the
	// schema driving encode (wrong Kind, wrong arity, missing field).
	ErrNonConforming = errors.New("codec: value does not conform to schema")

	// ErrIoError wraps an underlying io.Writer/io.Reader failure that is not
	// itself one of the above.
	ErrIoError = errors.New("codec: I/O error")
)
