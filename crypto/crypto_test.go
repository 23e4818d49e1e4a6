package crypto

import (
	"encoding/hex"
	"testing"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known key and signature, as documented by the web3.js accounts package.
const (
	knownPrivKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	knownAddress = "2c7536e3605d9c16a7a3d7b1898e529396a65c23"
	knownSig     = "b91467e570a6466aa9e9876cbcd013baba02900b8979d43fe208a4a4f339f5fd" +
		"6007e74cd82e037b800186422fc2da167c747ef045e5d18a5f5d4300f8e1a0291c"
)

func fromHex(t *testing.T, enc string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(enc)
	require.NoError(t, err)
	return raw
}

func TestKeccak256(t *testing.T) {
	want := fromHex(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	assert.Equal(t, want, Keccak256())
	assert.Equal(t, Keccak256([]byte("ab")), Keccak256([]byte("a"), []byte("b")))
}

func TestPersonalHash(t *testing.T) {
	want := fromHex(t, "1da44b586eb0729ff70a73c326926f6ed5a25f5b056e7f47fbc6e58d86871655")
	assert.Equal(t, want, PersonalHash([]byte("Some data")))
}

func TestKnownKey(t *testing.T) {
	key, err := PrivKeyFromHex(knownPrivKey)
	require.NoError(t, err)
	assert.Equal(t, community.Address(fromHex(t, knownAddress)), key.Address())
	assert.Equal(t, knownPrivKey[2:], key.Hex())

	sig, err := key.SignPersonal([]byte("Some data"))
	require.NoError(t, err)
	assert.Equal(t, fromHex(t, knownSig), sig)

	signer, err := RecoverPersonal([]byte("Some data"), fromHex(t, knownSig))
	require.NoError(t, err)
	assert.Equal(t, key.Address(), signer)
}

func TestSignAndRecover(t *testing.T) {
	key, err := GenPrivKey()
	require.NoError(t, err)
	other, err := GenPrivKey()
	require.NoError(t, err)
	require.False(t, key.Address().Equals(other.Address()))

	msg := Keccak256([]byte("registry"), []byte("candidate"))

	raw, err := key.SignHash(msg)
	require.NoError(t, err)
	require.Len(t, raw, SignatureLength)
	assert.True(t, raw[recoveryIDPos] < 2)

	signer, err := RecoverHash(msg, raw)
	require.NoError(t, err)
	assert.Equal(t, key.Address(), signer)

	personal, err := key.SignPersonal(msg)
	require.NoError(t, err)
	assert.True(t, personal[recoveryIDPos] == 27 || personal[recoveryIDPos] == 28)

	signer, err = PersonalSignVerifier{}.Recover(msg, personal)
	require.NoError(t, err)
	assert.Equal(t, key.Address(), signer)

	// A signature over a different message recovers a different address.
	signer, err = PersonalSignVerifier{}.Recover(Keccak256([]byte("other")), personal)
	if err == nil {
		assert.False(t, signer.Equals(key.Address()))
	}

	// The raw hash signature is not a personal message signature.
	signer, err = RecoverPersonal(msg, raw)
	if err == nil {
		assert.False(t, signer.Equals(key.Address()))
	}
}

func TestRecoverFailures(t *testing.T) {
	key, err := PrivKeyFromHex(knownPrivKey)
	require.NoError(t, err)
	msg := Keccak256([]byte("message"))
	sig, err := key.SignHash(msg)
	require.NoError(t, err)

	badRecovery := append([]byte{}, sig...)
	badRecovery[recoveryIDPos] = 5

	// s replaced by n - s is a valid curve signature that must be rejected.
	highS := append([]byte{}, sig...)
	copy(highS[32:64], fromHex(t, "ffffffffffffffffffffffffffffffffbaaedce6af48a03bbfd25e8cd0364140"))

	zero := make([]byte, SignatureLength)

	cases := map[string]struct {
		hash []byte
		sig  []byte
	}{
		"empty signature": {hash: msg, sig: nil},
		"short signature": {hash: msg, sig: sig[:64]},
		"long signature":  {hash: msg, sig: append(append([]byte{}, sig...), 0)},
		"bad recovery id": {hash: msg, sig: badRecovery},
		"high s":          {hash: msg, sig: highS},
		"zero signature":  {hash: msg, sig: zero},
		"short hash":      {hash: msg[:31], sig: sig},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := RecoverHash(tc.hash, tc.sig)
			assert.True(t, errors.ErrInvalidSignature.Is(err), "got %+v", err)
		})
	}
}

func TestPrivKeyFromHexFailures(t *testing.T) {
	cases := map[string]string{
		"not hex":   "zz",
		"too short": "0x0102",
		"zero key":  "0000000000000000000000000000000000000000000000000000000000000000",
	}
	for testName, enc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := PrivKeyFromHex(enc)
			assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
		})
	}
}
