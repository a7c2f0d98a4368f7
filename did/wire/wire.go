// Package wire reads the tagged, length-delimited binary layout embedded in
// long-form identifiers. It is a hand-rolled cursor over a byte slice: every
// reader takes an offset and reports how many bytes it consumed, and no
// reader ever advances past the end of its buffer.
package wire

import (
	"errors"
	"fmt"
)

// WireType is the low 3 bits of a field tag.
type WireType uint8

const (
	// WireVarint marks a base-128 variable-length integer field.
	WireVarint WireType = 0
	// WireLengthDelimited marks a length-prefixed byte field.
	WireLengthDelimited WireType = 2
)

// ErrTruncated is returned when a reader would run past the end of the
// buffer before completing a value.
var ErrTruncated = errors.New("truncated buffer")

// maxVarintBytes caps a varint at 10 continuation bytes (64 bits), the
// conventional limit for this encoding. Longer sequences on adversarial
// input are reported as truncation.
const maxVarintBytes = 10

// ReadVarint decodes a base-128 little-endian varint starting at off and
// returns the value and the number of bytes consumed.
func ReadVarint(buf []byte, off int) (uint64, int, error) {
	var value uint64
	var shift uint

	for n := 0; n < maxVarintBytes; n++ {
		if off+n >= len(buf) {
			return 0, 0, fmt.Errorf("%w: varint at offset %d", ErrTruncated, off)
		}
		b := buf[off+n]
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, n + 1, nil
		}
		shift += 7
	}

	return 0, 0, fmt.Errorf("%w: varint at offset %d exceeds %d bytes", ErrTruncated, off, maxVarintBytes)
}

// ReadLengthDelimited reads a varint length at off and returns a view of the
// following payload plus the total bytes consumed (length prefix included).
// The returned slice aliases buf; callers must not mutate it.
func ReadLengthDelimited(buf []byte, off int) ([]byte, int, error) {
	length, n, err := ReadVarint(buf, off)
	if err != nil {
		return nil, 0, err
	}

	start := off + n
	if length > uint64(len(buf)-start) {
		return nil, 0, fmt.Errorf("%w: field of %d bytes at offset %d", ErrTruncated, length, start)
	}

	end := start + int(length)
	return buf[start:end:end], n + int(length), nil
}

// FieldHandler receives the fields of one message scope. Nil callbacks are
// skipped, but the cursor still advances past the field.
type FieldHandler struct {
	// Bytes is invoked for each length-delimited field.
	Bytes func(fieldNumber uint64, payload []byte)
	// Varint is invoked for each varint field.
	Varint func(fieldNumber uint64, value uint64)
	// Observer, when set, is notified of every field number encountered,
	// regardless of wire type.
	Observer func(fieldNumber uint64)
}

// Walk iterates the tagged fields of one message scope. Varint and
// length-delimited fields are dispatched to the handler; any other wire type
// ends the walk without error, leaving the fields dispatched so far intact.
// A truncated tag or value ends the walk with ErrTruncated; the caller
// decides whether that is fatal for its scope.
func Walk(buf []byte, h FieldHandler) error {
	off := 0
	for off < len(buf) {
		tag, n, err := ReadVarint(buf, off)
		if err != nil {
			return err
		}
		off += n

		fieldNumber := tag >> 3
		if h.Observer != nil {
			h.Observer(fieldNumber)
		}

		switch WireType(tag & 0x7) {
		case WireVarint:
			value, n, err := ReadVarint(buf, off)
			if err != nil {
				return err
			}
			off += n
			if h.Varint != nil {
				h.Varint(fieldNumber, value)
			}
		case WireLengthDelimited:
			payload, n, err := ReadLengthDelimited(buf, off)
			if err != nil {
				return err
			}
			off += n
			if h.Bytes != nil {
				h.Bytes(fieldNumber, payload)
			}
		default:
			// Unsupported wire type: the rest of this scope cannot be
			// skipped safely, so stop here.
			return nil
		}
	}
	return nil
}
