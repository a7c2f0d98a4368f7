// Package did decodes long-form decentralized identifiers. A long-form
// identifier embeds its own creation state after the commitment hash:
//
//	did:prism:<commitment-hash>:<base64url-encoded-binary-state>
//
// Parse recovers the binary state, walks the nested message layout by hand
// and returns the public keys it finds, classified by curve and usage. The
// input is attacker-influenced, so every decode error is a value and nested
// problems only reduce the number of keys returned.
package did

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pilacorp/go-longform-did/encoding"
)

// Scheme is the prefix every supported identifier must start with.
const Scheme = "did:prism:"

// maxStateBytes caps the decoded state size. Real identifiers are a few
// kilobytes at most.
const maxStateBytes = 64 * 1024

// ParseOption configures a single Parse call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	log     *slog.Logger
	observe func(fieldNumber uint64)
}

// WithLogger sets the logger used for decode diagnostics. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) ParseOption {
	return func(o *parseOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithFieldObserver registers a hook that is notified of every field number
// encountered while walking the encoded state, for diagnostic consumers.
func WithFieldObserver(fn func(fieldNumber uint64)) ParseOption {
	return func(o *parseOptions) {
		o.observe = fn
	}
}

// Parse decodes a long-form identifier and extracts its public keys.
//
// Structural failures (wrong scheme, missing state segment, malformed
// base64url, truncated top-level structure) are returned as errors that
// match ErrInvalidScheme, ErrNotLongForm, ErrMalformedEncoding and
// ErrTruncatedBuffer respectively. A commitment hash that does not match the
// recomputed digest of the state is logged and flagged on the result, not
// rejected: identifiers produced under a different hash convention are still
// usable for key extraction.
func Parse(didString string, opts ...ParseOption) (*ParsedIdentifier, error) {
	o := parseOptions{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if !strings.HasPrefix(didString, Scheme) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheme, head(didString))
	}

	// The encoded state may itself contain ':'; only the first separator
	// splits hash from state.
	rest := didString[len(Scheme):]
	claimedHash, encodedState, found := strings.Cut(rest, ":")
	if !found || encodedState == "" {
		return nil, fmt.Errorf("%w: missing encoded state segment", ErrNotLongForm)
	}

	state, err := encoding.DecodeBase64URL(encodedState)
	if err != nil {
		return nil, fmt.Errorf("decode long-form state: %w", err)
	}
	if len(state) > maxStateBytes {
		return nil, fmt.Errorf("%w: state of %d bytes exceeds %d byte limit",
			ErrMalformedEncoding, len(state), maxStateBytes)
	}

	parsed := &ParsedIdentifier{
		DID:         didString,
		ClaimedHash: claimedHash,
	}

	digest := sha256.Sum256(state)
	if computed := hex.EncodeToString(digest[:]); computed != claimedHash {
		// Some identifiers in the wild commit with a different hash
		// convention; the mismatch is an anomaly, not a failure.
		o.log.Warn("commitment hash does not match decoded state",
			"claimed", claimedHash, "computed", computed)
		parsed.HashMismatch = true
	}

	d := &decoder{log: o.log, observe: o.observe}
	keys, err := d.run(state)
	if err != nil {
		return nil, fmt.Errorf("decode operation envelope: %w", err)
	}
	parsed.Keys = keys

	return parsed, nil
}

// FindKey returns the key matching both usage and curve. When no exact match
// exists it falls back to any key of the requested curve, because real-world
// identifiers sometimes mis-tag the usage of otherwise correctly typed keys.
// Curve comparison is case-insensitive. Returns nil when neither an exact
// nor a curve-only match exists.
func (p *ParsedIdentifier) FindKey(usage KeyUsage, curve string) *KeyRecord {
	curve = strings.ToLower(curve)

	for i := range p.Keys {
		if p.Keys[i].Usage == usage && strings.ToLower(p.Keys[i].Curve) == curve {
			return &p.Keys[i]
		}
	}
	for i := range p.Keys {
		if strings.ToLower(p.Keys[i].Curve) == curve {
			return &p.Keys[i]
		}
	}
	return nil
}

// ExtractKeyPairForSensitiveOperations parses the identifier and looks up
// the two keys required before an encrypted-content exchange: an
// authentication/ed25519 key and a key-agreement/x25519 key. Complete is
// true only when both are present.
func ExtractKeyPairForSensitiveOperations(didString string, opts ...ParseOption) (*SensitiveKeyPair, error) {
	parsed, err := Parse(didString, opts...)
	if err != nil {
		return nil, err
	}

	auth := parsed.FindKey(AuthenticationKey, "ed25519")
	agreement := parsed.FindKey(KeyAgreementKey, "x25519")

	return &SensitiveKeyPair{
		Authentication: auth,
		KeyAgreement:   agreement,
		Complete:       auth != nil && agreement != nil,
	}, nil
}

// head truncates an identifier for inclusion in error messages.
func head(s string) string {
	const n = 32
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
