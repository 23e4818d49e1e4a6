package sigs

import (
	"encoding/binary"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/crypto"
	"github.com/iov-one/community/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer addresses (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db community.KVStore, tx SignedTx, chainID string) ([]community.Address, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get sign bytes")
	}

	sigs := tx.GetSignatures()
	signers := make([]community.Address, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature recovers the signer of one signature over signBytes,
// checks its sequence and updates its state in the store.
func VerifySignature(db community.KVStore, sig *StdSignature, signBytes []byte, chainID string) (community.Address, error) {
	if sig == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	signer, err := crypto.RecoverHash(toSign, sig.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "cannot recover signer")
	}

	user, err := loadUser(db, signer)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := NewBucket().Put(db, signer, user); err != nil {
		return nil, errors.Wrap(err, "cannot save signer")
	}
	return signer, nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | nonce             | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

This is then hashed with Keccak-256 before fed into the secp256k1
signing/verification step.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !community.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	return crypto.Keccak256(
		SignCodeV1,
		[]byte{uint8(len(chainID))},
		[]byte(chainID),
		nonce,
		signBytes,
	), nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(key *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	toSign, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := key.SignHash(toSign)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Sequence:  seq,
		Signature: sig,
	}, nil
}
