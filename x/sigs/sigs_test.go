package sigs

import (
	"context"
	"encoding/hex"
	"testing"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/communitytest"
	"github.com/iov-one/community/communitytest/assert"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/store"
)

const testChainID = "test-chain"

type signedTx struct {
	communitytest.Tx
	bytes []byte
	sigs  []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func (s *signedTx) GetSignBytes() ([]byte, error) {
	return s.bytes, nil
}

func (s *signedTx) GetSignatures() []*StdSignature {
	return s.sigs
}

func TestBuildSignBytes(t *testing.T) {
	got, err := BuildSignBytes([]byte("foobar"), testChainID, 17)
	assert.Nil(t, err)
	assert.Equal(t, "57f5f777778dab11269fa9541df5d84e3b5f393ea72fbd58be6ed857f7367ed9", hex.EncodeToString(got))

	_, err = BuildSignBytes([]byte("foobar"), testChainID, -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes([]byte("foobar"), "bad", 1)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVerifyTxSignatures(t *testing.T) {
	db := store.MemStore()
	key := communitytest.NewKey(t)
	other := communitytest.NewKey(t)

	tx := &signedTx{bytes: []byte("request identification")}
	sign := func(k interface {
		SignHash([]byte) ([]byte, error)
	}, seq int64) *StdSignature {
		t.Helper()
		toSign, err := BuildSignBytesTx(tx, testChainID, seq)
		assert.Nil(t, err)
		sig, err := k.SignHash(toSign)
		assert.Nil(t, err)
		return &StdSignature{Sequence: seq, Signature: sig}
	}

	// No signatures returns no signers.
	signers, err := VerifyTxSignatures(db, tx, testChainID)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(signers))

	// Two signers, both in order.
	s0, err := SignTx(key, tx, testChainID, 0)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{s0, sign(other, 0)}
	signers, err = VerifyTxSignatures(db, tx, testChainID)
	assert.Nil(t, err)
	assert.Equal(t, []community.Address{key.Address(), other.Address()}, signers)

	seq, err := NextSequence(db, key.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// Replaying the same signatures is rejected.
	_, err = VerifyTxSignatures(db, tx, testChainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	// A sequence from the future is rejected as well.
	tx.sigs = []*StdSignature{sign(key, 5)}
	_, err = VerifyTxSignatures(db, tx, testChainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	tx.sigs = []*StdSignature{sign(key, 1)}
	signers, err = VerifyTxSignatures(db, tx, testChainID)
	assert.Nil(t, err)
	assert.Equal(t, []community.Address{key.Address()}, signers)

	// A signature made for another chain does not authenticate the key.
	other2 := communitytest.NewKey(t)
	toSign, err := BuildSignBytesTx(tx, "other-chain", 0)
	assert.Nil(t, err)
	raw, err := other2.SignHash(toSign)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{{Sequence: 0, Signature: raw}}
	signers, err = VerifyTxSignatures(db, tx, testChainID)
	if err == nil && signers[0].Equals(other2.Address()) {
		t.Fatal("signature accepted for a different chain")
	}

	// Malformed signatures.
	tx.sigs = []*StdSignature{{Sequence: 0, Signature: []byte{1, 2, 3}}}
	_, err = VerifyTxSignatures(db, tx, testChainID)
	assert.IsErr(t, errors.ErrInvalidSignature, err)

	tx.sigs = []*StdSignature{{Sequence: 0}}
	_, err = VerifyTxSignatures(db, tx, testChainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestDecorator(t *testing.T) {
	key := communitytest.NewKey(t)
	ctx := community.WithChainID(context.Background(), testChainID)

	cases := map[string]struct {
		decorator   Decorator
		tx          func(t *testing.T) community.Tx
		wantErr     *errors.Error
		wantSigners []community.Address
	}{
		"signed transaction": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) community.Tx {
				tx := &signedTx{bytes: []byte("data")}
				sig, err := SignTx(key, tx, testChainID, 0)
				assert.Nil(t, err)
				tx.sigs = []*StdSignature{sig}
				return tx
			},
			wantSigners: []community.Address{key.Address()},
		},
		"missing signature": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) community.Tx {
				return &signedTx{bytes: []byte("data")}
			},
			wantErr: errors.ErrUnauthorized,
		},
		"not a signed transaction": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) community.Tx {
				return &communitytest.Tx{}
			},
			wantErr: errors.ErrUnauthorized,
		},
		"missing signature allowed": {
			decorator: NewDecorator().AllowMissingSigs(),
			tx: func(t *testing.T) community.Tx {
				return &signedTx{bytes: []byte("data")}
			},
			wantSigners: nil,
		},
		"invalid sequence": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) community.Tx {
				tx := &signedTx{bytes: []byte("data")}
				sig, err := SignTx(key, tx, testChainID, 3)
				assert.Nil(t, err)
				tx.sigs = []*StdSignature{sig}
				return tx
			},
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := Authenticate{}
			checker := &signersHandler{auth: auth}

			_, err := tc.decorator.Check(ctx, store.MemStore(), tc.tx(t), checker)
			assert.IsErr(t, tc.wantErr, err)
			_, err = tc.decorator.Deliver(ctx, store.MemStore(), tc.tx(t), checker)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, len(tc.wantSigners), len(checker.signers))
			for i, s := range tc.wantSigners {
				if !s.Equals(checker.signers[i]) {
					t.Fatalf("want %s signer, got %s", s, checker.signers[i])
				}
				if !checker.authorized(s) {
					t.Fatalf("%s is not authorized", s)
				}
			}
		})
	}
}

// signersHandler records the signers found in the context.
type signersHandler struct {
	auth    Authenticate
	signers []community.Address
	ctx     community.Context
}

func (h *signersHandler) Check(ctx community.Context, db community.KVStore, tx community.Tx) (*community.CheckResult, error) {
	h.signers, h.ctx = h.auth.GetSigners(ctx), ctx
	return &community.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx community.Context, db community.KVStore, tx community.Tx) (*community.DeliverResult, error) {
	h.signers, h.ctx = h.auth.GetSigners(ctx), ctx
	return &community.DeliverResult{}, nil
}

func (h *signersHandler) authorized(addr community.Address) bool {
	return h.auth.HasAddress(h.ctx, addr)
}

func TestUserDataSequence(t *testing.T) {
	u := UserData{Metadata: &community.Metadata{Schema: 1}}
	assert.Nil(t, u.Validate())
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(1))
	assert.Nil(t, u.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), u.Sequence)

	u.Sequence = maxSequenceValue
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(maxSequenceValue))

	bad := UserData{Sequence: -1}
	err := bad.Validate()
	assert.FieldError(t, err, "Metadata", errors.ErrModel)
	assert.FieldError(t, err, "Sequence", ErrInvalidSequence)
}
