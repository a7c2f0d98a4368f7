// Package keys materializes the raw key bytes extracted from a long-form
// identifier into usable public key types.
package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"

	"github.com/pilacorp/go-longform-did/did"
)

// Ed25519PublicKey returns the record's bytes as an ed25519 public key.
func Ed25519PublicKey(rec *did.KeyRecord) (ed25519.PublicKey, error) {
	if err := expectCurve(rec, "ed25519"); err != nil {
		return nil, err
	}
	if len(rec.PublicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("ed25519 key %q: expected %d bytes, got %d",
			rec.ID, ed25519.PublicKeySize, len(rec.PublicKey))
	}
	return ed25519.PublicKey(rec.PublicKey), nil
}

// X25519PublicKey returns the record's bytes as an x25519 public key for use
// with box-style encryption.
func X25519PublicKey(rec *did.KeyRecord) ([]byte, error) {
	if err := expectCurve(rec, "x25519"); err != nil {
		return nil, err
	}
	if len(rec.PublicKey) != 32 {
		return nil, fmt.Errorf("x25519 key %q: expected 32 bytes, got %d", rec.ID, len(rec.PublicKey))
	}
	if bytes.Equal(rec.PublicKey, make([]byte, 32)) {
		return nil, fmt.Errorf("x25519 key %q: all-zero key", rec.ID)
	}
	return rec.PublicKey, nil
}

// Secp256k1PublicKey parses the record's bytes as a secp256k1 public key.
// Supports both the 33-byte compressed form and the 65-byte uncompressed
// form assembled from legacy coordinate entries.
func Secp256k1PublicKey(rec *did.KeyRecord) (*ecdsa.PublicKey, error) {
	if err := expectCurve(rec, "secp256k1"); err != nil {
		return nil, err
	}

	data := rec.PublicKey
	switch {
	case len(data) == 33 && (data[0] == 0x02 || data[0] == 0x03):
		pub, err := ethcrypto.DecompressPubkey(data)
		if err != nil {
			return nil, fmt.Errorf("secp256k1 key %q: decompress: %w", rec.ID, err)
		}
		return pub, nil
	case len(data) == 65 && data[0] == 0x04:
		pub, err := btcec.ParsePubKey(data)
		if err != nil {
			return nil, fmt.Errorf("secp256k1 key %q: parse: %w", rec.ID, err)
		}
		return pub.ToECDSA(), nil
	default:
		return nil, fmt.Errorf("secp256k1 key %q: unsupported format, got %d bytes", rec.ID, len(data))
	}
}

// Multicodec prefixes per the did:key method table.
var multicodecPrefix = map[string][]byte{
	"ed25519": {0xed, 0x01},
	"x25519":  {0xec, 0x01},
}

// Fingerprint encodes the record as a did:key identifier: multicodec prefix
// plus key bytes in base58btc with the "z" multibase marker.
func Fingerprint(rec *did.KeyRecord) (string, error) {
	prefix, ok := multicodecPrefix[strings.ToLower(rec.Curve)]
	if !ok {
		return "", fmt.Errorf("key %q: no did:key multicodec for curve %q", rec.ID, rec.Curve)
	}
	if len(rec.PublicKey) != 32 {
		return "", fmt.Errorf("key %q: expected 32 bytes, got %d", rec.ID, len(rec.PublicKey))
	}

	buf := make([]byte, 0, len(prefix)+len(rec.PublicKey))
	buf = append(buf, prefix...)
	buf = append(buf, rec.PublicKey...)
	return "did:key:z" + base58.Encode(buf), nil
}

func expectCurve(rec *did.KeyRecord, curve string) error {
	if !strings.EqualFold(rec.Curve, curve) {
		return fmt.Errorf("key %q: curve %q, want %q", rec.ID, rec.Curve, curve)
	}
	return nil
}
