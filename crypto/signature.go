package crypto

import (
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// HashLength is the size of a Keccak-256 digest.
	HashLength = 32
	// SignatureLength is the size of a signature in the [R || S || V] format.
	SignatureLength = 65

	recoveryIDPos = SignatureLength - 1
)

// Keccak256 returns the legacy (pre standard) Keccak-256 digest of the
// concatenated data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		// Hash writes never fail.
		_, _ = h.Write(b)
	}
	return h.Sum(nil)
}

// PersonalHash returns the hash of given message prefixed as an ethereum
// personal message.
func PersonalHash(message []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	return Keccak256([]byte(prefix), message)
}

// RecoverHash returns the address of the key that signed given hash.
// The recovery id must be 0, 1, 27 or 28 and the signature must be in the
// lower half of the curve order.
func RecoverHash(hash, sig []byte) (community.Address, error) {
	if len(hash) != HashLength {
		return nil, errors.Wrapf(errors.ErrInvalidSignature, "hash must be %d bytes", HashLength)
	}
	if len(sig) != SignatureLength {
		return nil, errors.Wrapf(errors.ErrInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}

	norm := make([]byte, SignatureLength)
	copy(norm, sig)
	if v := norm[recoveryIDPos]; v == 27 || v == 28 {
		norm[recoveryIDPos] = v - 27
	}
	r := new(big.Int).SetBytes(norm[:32])
	s := new(big.Int).SetBytes(norm[32:64])
	if !ethcrypto.ValidateSignatureValues(norm[recoveryIDPos], r, s, true) {
		return nil, errors.Wrap(errors.ErrInvalidSignature, "invalid signature values")
	}

	pub, err := ethcrypto.SigToPub(hash, norm)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidSignature, err.Error())
	}
	return PubKeyAddress(pub), nil
}

// RecoverPersonal returns the address of the key that signed given message
// as a personal message.
func RecoverPersonal(message, sig []byte) (community.Address, error) {
	return RecoverHash(PersonalHash(message), sig)
}

// PersonalSignVerifier recovers signers of personal message signatures, as
// produced by wallets.
type PersonalSignVerifier struct{}

// Recover returns the address that signed given message.
func (PersonalSignVerifier) Recover(message, sig []byte) (community.Address, error) {
	return RecoverPersonal(message, sig)
}
