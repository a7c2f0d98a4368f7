// Package document renders a W3C DID document from the keys extracted out of
// a long-form identifier, for consumers that want a standard resolution
// result instead of raw key records.
package document

import (
	"encoding/hex"
	"strings"

	"github.com/pilacorp/go-longform-did/did"
)

// DIDDocument is the rendered W3C document.
type DIDDocument struct {
	Context              []string                  `json:"@context"`
	ID                   string                    `json:"id"`
	VerificationMethod   []VerificationMethodEntry `json:"verificationMethod"`
	Authentication       []string                  `json:"authentication,omitempty"`
	AssertionMethod      []string                  `json:"assertionMethod,omitempty"`
	KeyAgreement         []string                  `json:"keyAgreement,omitempty"`
	CapabilityInvocation []string                  `json:"capabilityInvocation,omitempty"`
	CapabilityDelegation []string                  `json:"capabilityDelegation,omitempty"`
}

// VerificationMethodEntry represents a single verification method in a DID
// document.
type VerificationMethodEntry struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Controller   string `json:"controller"`
	PublicKeyHex string `json:"publicKeyHex"`
}

// Render builds a DID document from the parsed identifier. Each key becomes
// a verification method; recognized usages are referenced from the matching
// verification relationship. Keys with unrecognized usage values still get a
// verification method entry so nothing extracted is hidden.
func Render(parsed *did.ParsedIdentifier) *DIDDocument {
	doc := &DIDDocument{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/v1",
		},
		ID: parsed.DID,
	}

	for _, key := range parsed.Keys {
		ref := parsed.DID + "#" + key.ID
		doc.VerificationMethod = append(doc.VerificationMethod, VerificationMethodEntry{
			ID:           ref,
			Type:         methodType(key.Curve),
			Controller:   parsed.DID,
			PublicKeyHex: hex.EncodeToString(key.PublicKey),
		})

		switch key.Usage {
		case did.AuthenticationKey:
			doc.Authentication = append(doc.Authentication, ref)
		case did.IssuingKey:
			doc.AssertionMethod = append(doc.AssertionMethod, ref)
		case did.KeyAgreementKey:
			doc.KeyAgreement = append(doc.KeyAgreement, ref)
		case did.CapabilityInvocationKey:
			doc.CapabilityInvocation = append(doc.CapabilityInvocation, ref)
		case did.CapabilityDelegationKey:
			doc.CapabilityDelegation = append(doc.CapabilityDelegation, ref)
		}
	}

	return doc
}

func methodType(curve string) string {
	switch strings.ToLower(curve) {
	case "ed25519":
		return "Ed25519VerificationKey2020"
	case "x25519":
		return "X25519KeyAgreementKey2020"
	case "secp256k1":
		return "EcdsaSecp256k1VerificationKey2019"
	default:
		return "Multikey"
	}
}
