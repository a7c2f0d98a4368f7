package did

import "fmt"

// KeyUsage is the enumerated purpose assigned to a public key inside an
// identifier document. Values outside the known set are preserved as-is so
// diagnostic consumers can still see them.
type KeyUsage uint64

const (
	UnknownKey KeyUsage = iota
	MasterKey
	IssuingKey
	KeyAgreementKey
	AuthenticationKey
	RevocationKey
	CapabilityInvocationKey
	CapabilityDelegationKey
)

// Recognized reports whether u is one of the known usage values.
func (u KeyUsage) Recognized() bool {
	return u <= CapabilityDelegationKey
}

func (u KeyUsage) String() string {
	switch u {
	case UnknownKey:
		return "unknown"
	case MasterKey:
		return "master"
	case IssuingKey:
		return "issuing"
	case KeyAgreementKey:
		return "keyAgreement"
	case AuthenticationKey:
		return "authentication"
	case RevocationKey:
		return "revocation"
	case CapabilityInvocationKey:
		return "capabilityInvocation"
	case CapabilityDelegationKey:
		return "capabilityDelegation"
	default:
		return fmt.Sprintf("unrecognized key usage %d", uint64(u))
	}
}
