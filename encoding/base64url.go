// Package encoding provides the base64url codec used by long-form
// identifiers: URL-safe alphabet, no padding on the wire, padding restored
// before decoding.
package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEncoding is returned when a string cannot be decoded as
// unpadded base64url.
var ErrMalformedEncoding = errors.New("malformed base64url encoding")

// EncodeBase64URL encodes data as standard base64, maps the alphabet to its
// URL-safe form and strips the padding.
func EncodeBase64URL(data []byte) string {
	s := base64.StdEncoding.EncodeToString(data)
	s = strings.ReplaceAll(s, "+", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.TrimRight(s, "=")
}

// DecodeBase64URL performs the inverse substitution, re-pads the string to a
// multiple of 4 and decodes it as standard base64.
func DecodeBase64URL(s string) ([]byte, error) {
	t := strings.ReplaceAll(s, "-", "+")
	t = strings.ReplaceAll(t, "_", "/")

	switch len(t) % 4 {
	case 0:
	case 2:
		t += "=="
	case 3:
		t += "="
	default:
		// A single trailing character can never complete a base64 quantum.
		return nil, fmt.Errorf("%w: length %d is not re-paddable", ErrMalformedEncoding, len(s))
	}

	data, err := base64.StdEncoding.DecodeString(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	return data, nil
}
