package didcomm

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/pilacorp/go-longform-did/did"
)

// SharedSecretSecp256k1 derives an ECDH shared secret between an extracted
// secp256k1 key record and a local private key, for identifiers keyed on
// secp256k1 instead of x25519.
func SharedSecretSecp256k1(rec *did.KeyRecord, privKeyBytes []byte) ([]byte, error) {
	pubKey, err := secp256k1.ParsePubKey(rec.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("parse public key %q: %w", rec.ID, err)
	}

	privKey := secp256k1.PrivKeyFromBytes(privKeyBytes)
	shared := secp256k1.GenerateSharedSecret(privKey, pubKey)

	return shared, nil
}
