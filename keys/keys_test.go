package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-longform-did/did"
)

func TestEd25519PublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	rec := &did.KeyRecord{ID: "auth-1", Usage: did.AuthenticationKey, Curve: "ed25519", PublicKey: pub}
	got, err := Ed25519PublicKey(rec)
	require.NoError(t, err)
	assert.Equal(t, pub, got)

	t.Run("wrong size", func(t *testing.T) {
		bad := &did.KeyRecord{ID: "auth-1", Curve: "ed25519", PublicKey: []byte{1, 2, 3}}
		_, err := Ed25519PublicKey(bad)
		assert.Error(t, err)
	})

	t.Run("wrong curve", func(t *testing.T) {
		bad := &did.KeyRecord{ID: "agree-1", Curve: "x25519", PublicKey: pub}
		_, err := Ed25519PublicKey(bad)
		assert.Error(t, err)
	})
}

func TestX25519PublicKey(t *testing.T) {
	key := make([]byte, 32)
	key[0] = 9

	rec := &did.KeyRecord{ID: "agree-1", Usage: did.KeyAgreementKey, Curve: "x25519", PublicKey: key}
	got, err := X25519PublicKey(rec)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	t.Run("all-zero key rejected", func(t *testing.T) {
		bad := &did.KeyRecord{ID: "agree-1", Curve: "x25519", PublicKey: make([]byte, 32)}
		_, err := X25519PublicKey(bad)
		assert.Error(t, err)
	})
}

func TestSecp256k1PublicKey(t *testing.T) {
	priv, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	compressed := ethcrypto.CompressPubkey(&priv.PublicKey)
	uncompressed := ethcrypto.FromECDSAPub(&priv.PublicKey)

	t.Run("compressed", func(t *testing.T) {
		rec := &did.KeyRecord{ID: "master-0", Curve: "secp256k1", PublicKey: compressed}
		pub, err := Secp256k1PublicKey(rec)
		require.NoError(t, err)
		assert.Zero(t, pub.X.Cmp(priv.PublicKey.X))
		assert.Zero(t, pub.Y.Cmp(priv.PublicKey.Y))
	})

	t.Run("uncompressed", func(t *testing.T) {
		rec := &did.KeyRecord{ID: "master-0", Curve: "secp256k1", PublicKey: uncompressed}
		pub, err := Secp256k1PublicKey(rec)
		require.NoError(t, err)
		assert.Zero(t, pub.X.Cmp(priv.PublicKey.X))
		assert.Zero(t, pub.Y.Cmp(priv.PublicKey.Y))
	})

	t.Run("garbage", func(t *testing.T) {
		rec := &did.KeyRecord{ID: "master-0", Curve: "secp256k1", PublicKey: []byte{0x05, 0x06}}
		_, err := Secp256k1PublicKey(rec)
		assert.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	rec := &did.KeyRecord{ID: "auth-1", Curve: "ed25519", PublicKey: pub}
	fp, err := Fingerprint(rec)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fp, "did:key:z"))

	t.Run("unsupported curve", func(t *testing.T) {
		rec := &did.KeyRecord{ID: "master-0", Curve: "secp256k1", PublicKey: make([]byte, 32)}
		_, err := Fingerprint(rec)
		assert.Error(t, err)
	})
}
