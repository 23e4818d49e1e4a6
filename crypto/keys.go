package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// PrivateKey is a secp256k1 private key.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// GenPrivKey returns a new, randomly generated private key.
func GenPrivKey() (*PrivateKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &PrivateKey{key: key}, nil
}

// PrivKeyFromHex loads a private key from its hex encoded form, optionally
// prefixed with 0x.
func PrivKeyFromHex(enc string) (*PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(enc, "0x"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
	}
	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key: %s", err)
	}
	return &PrivateKey{key: key}, nil
}

// Hex returns the hex encoded private key. It can be loaded using
// PrivKeyFromHex.
func (p *PrivateKey) Hex() string {
	return hex.EncodeToString(ethcrypto.FromECDSA(p.key))
}

// Address returns the address of the public key matching this private key.
func (p *PrivateKey) Address() community.Address {
	return PubKeyAddress(&p.key.PublicKey)
}

// SignHash signs given 32 bytes hash. The recovery id of the returned
// signature is 0 or 1.
func (p *PrivateKey) SignHash(hash []byte) ([]byte, error) {
	if len(hash) != HashLength {
		return nil, errors.Wrapf(errors.ErrInput, "hash must be %d bytes", HashLength)
	}
	sig, err := ethcrypto.Sign(hash, p.key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return sig, nil
}

// SignPersonal signs given message prefixed as a personal message, the same
// way wallets do it. The recovery id of the returned signature is 27 or 28.
func (p *PrivateKey) SignPersonal(message []byte) ([]byte, error) {
	sig, err := p.SignHash(PersonalHash(message))
	if err != nil {
		return nil, err
	}
	sig[recoveryIDPos] += 27
	return sig, nil
}

// PubKeyAddress returns the address derived from given public key.
func PubKeyAddress(pub *ecdsa.PublicKey) community.Address {
	addr := ethcrypto.PubkeyToAddress(*pub)
	return community.Address(addr.Bytes())
}
