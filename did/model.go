package did

// KeyRecord is one public key extracted from an identifier's embedded state.
type KeyRecord struct {
	// ID is the key's identifier fragment within the document.
	ID string
	// Usage is the declared purpose of the key.
	Usage KeyUsage
	// Curve is the lowercase elliptic-curve family name, e.g. "ed25519" or
	// "x25519". Empty when the entry did not carry one.
	Curve string
	// PublicKey holds the raw key bytes. For secp256k1 keys recovered from
	// legacy coordinate entries this is the uncompressed 0x04||x||y point.
	PublicKey []byte
}

// ParsedIdentifier is the result of decoding one long-form identifier. It is
// read-only after construction; concurrent reads are safe.
type ParsedIdentifier struct {
	// DID is the full identifier string that was parsed.
	DID string
	// ClaimedHash is the commitment hash segment as it appeared in the
	// identifier.
	ClaimedHash string
	// HashMismatch is set when the recomputed digest of the decoded state
	// does not match ClaimedHash. The parse still succeeds; see Parse.
	HashMismatch bool
	// Keys lists the extracted public keys in wire order.
	Keys []KeyRecord
}

// ListAllKeys returns every extracted key, including entries whose usage
// value was not recognized.
func (p *ParsedIdentifier) ListAllKeys() []KeyRecord {
	return p.Keys
}

// SensitiveKeyPair reports the outcome of the dual-key check required before
// an encrypted-content exchange.
type SensitiveKeyPair struct {
	// Authentication is the authentication/ed25519 key, if present.
	Authentication *KeyRecord
	// KeyAgreement is the key-agreement/x25519 key, if present.
	KeyAgreement *KeyRecord
	// Complete is true when both keys were found.
	Complete bool
}
