package did

import (
	"errors"

	"github.com/pilacorp/go-longform-did/did/wire"
	"github.com/pilacorp/go-longform-did/encoding"
)

var (
	// ErrInvalidScheme is returned when the identifier does not start with
	// the expected scheme prefix.
	ErrInvalidScheme = errors.New("identifier does not use the " + Scheme + " scheme")

	// ErrNotLongForm is returned when the identifier carries no encoded
	// state segment after the commitment hash.
	ErrNotLongForm = errors.New("identifier is not in long form")

	// ErrMalformedEncoding is returned when the encoded state segment is not
	// valid base64url.
	ErrMalformedEncoding = encoding.ErrMalformedEncoding

	// ErrTruncatedBuffer is returned when the top-level structure of the
	// decoded state ends before a required field completes.
	ErrTruncatedBuffer = wire.ErrTruncated
)
