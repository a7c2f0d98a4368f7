// Package didcomm encrypts content for the holder of a long-form identifier
// using the keys extracted from the identifier itself. Callers are expected
// to run the dual-key check first; Seal fails when the identifier carries no
// key-agreement key.
package didcomm

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/box"

	"github.com/pilacorp/go-longform-did/did"
	"github.com/pilacorp/go-longform-did/encoding"
	"github.com/pilacorp/go-longform-did/keys"
)

// Envelope carries one sealed message. All fields are base64url encoded.
type Envelope struct {
	SenderKey  string `json:"skey"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Seal encrypts plaintext to the identifier's key-agreement x25519 key with
// an ephemeral sender key pair.
func Seal(parsed *did.ParsedIdentifier, plaintext []byte) (*Envelope, error) {
	rec := parsed.FindKey(did.KeyAgreementKey, "x25519")
	if rec == nil {
		return nil, fmt.Errorf("no x25519 key-agreement key in %s", parsed.DID)
	}

	recipientKey, err := keys.X25519PublicKey(rec)
	if err != nil {
		return nil, fmt.Errorf("unusable key-agreement key: %w", err)
	}
	var recipient [32]byte
	copy(recipient[:], recipientKey)

	senderPub, senderPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key pair: %w", err)
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := box.Seal(nil, plaintext, &nonce, &recipient, senderPriv)

	return &Envelope{
		SenderKey:  encoding.EncodeBase64URL(senderPub[:]),
		Nonce:      encoding.EncodeBase64URL(nonce[:]),
		Ciphertext: encoding.EncodeBase64URL(ciphertext),
	}, nil
}

// Open decrypts an envelope with the recipient's x25519 private key.
func Open(env *Envelope, recipientPriv *[32]byte) ([]byte, error) {
	senderKey, err := encoding.DecodeBase64URL(env.SenderKey)
	if err != nil {
		return nil, fmt.Errorf("decode sender key: %w", err)
	}
	if len(senderKey) != 32 {
		return nil, fmt.Errorf("sender key must be 32 bytes, got %d", len(senderKey))
	}

	nonceBytes, err := encoding.DecodeBase64URL(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decode nonce: %w", err)
	}
	if len(nonceBytes) != 24 {
		return nil, fmt.Errorf("nonce must be 24 bytes, got %d", len(nonceBytes))
	}

	ciphertext, err := encoding.DecodeBase64URL(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}

	var sender [32]byte
	copy(sender[:], senderKey)
	var nonce [24]byte
	copy(nonce[:], nonceBytes)

	plaintext, ok := box.Open(nil, ciphertext, &nonce, &sender, recipientPriv)
	if !ok {
		return nil, fmt.Errorf("decryption failed")
	}
	return plaintext, nil
}
