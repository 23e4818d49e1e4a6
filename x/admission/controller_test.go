package admission

import (
	"testing"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/communitytest"
	"github.com/iov-one/community/communitytest/assert"
	"github.com/iov-one/community/crypto"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/store"
)

const testChainID = "test-chain"

// fixture is a registry initialized with a set of members whose keys are
// known, so that they can vouch.
type fixture struct {
	db       community.KVStore
	ctrl     *Controller
	registry community.Address
	keys     []*crypto.PrivateKey
	members  []community.Address
}

func newFixture(t *testing.T, threshold uint32, members int) *fixture {
	t.Helper()
	keys, addrs := communitytest.NewKeys(t, members)
	f := &fixture{
		db:       store.MemStore(),
		ctrl:     NewController(crypto.PersonalSignVerifier{}),
		registry: RegistryAddress(testChainID),
		keys:     keys,
		members:  addrs,
	}
	err := f.ctrl.Registry().Initialize(f.db, threshold, addrs, f.registry)
	assert.Nil(t, err)
	return f
}

func (f *fixture) sign(t *testing.T, key *crypto.PrivateKey, candidate community.Address) []byte {
	t.Helper()
	sig, err := SignVouch(key, f.registry, candidate)
	assert.Nil(t, err)
	return sig
}

func (f *fixture) request(t *testing.T, candidate community.Address) {
	t.Helper()
	assert.Nil(t, f.ctrl.RequestIdentification(f.db, candidate, 1))
}

func (f *fixture) vouch(t *testing.T, key *crypto.PrivateKey, candidate community.Address) *Vouch {
	t.Helper()
	v, err := f.ctrl.Vouch(f.db, candidate, f.sign(t, key, candidate), 2)
	assert.Nil(t, err)
	assert.Equal(t, key.Address(), v.Endorser)
	return v
}

func (f *fixture) assertState(t *testing.T, id community.Address, member, candidate bool, votes uint32) {
	t.Helper()
	r := f.ctrl.Registry()
	isMember, err := r.IsMember(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, member, isMember)
	isCandidate, err := r.IsCandidate(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, candidate, isCandidate)
	count, err := r.VoteCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, votes, count)
}

func TestScenarioSingleAdmission(t *testing.T) {
	f := newFixture(t, 3, 3)
	a, b, c := f.keys[0], f.keys[1], f.keys[2]
	d := communitytest.NewKey(t).Address()

	f.request(t, d)
	f.assertState(t, d, false, true, 0)

	if v := f.vouch(t, a, d); v.Admitted || v.Votes != 1 {
		t.Fatalf("unexpected vouch result: %+v", v)
	}
	if v := f.vouch(t, b, d); v.Admitted || v.Votes != 2 {
		t.Fatalf("unexpected vouch result: %+v", v)
	}
	f.assertState(t, d, false, true, 2)

	v := f.vouch(t, c, d)
	if !v.Admitted || v.Votes != 3 || v.Duplicate {
		t.Fatalf("unexpected vouch result: %+v", v)
	}
	f.assertState(t, d, true, false, 3)

	endorsers, err := f.ctrl.Registry().Endorsers(f.db, d)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(endorsers))
}

func TestScenarioParallelAdmission(t *testing.T) {
	f := newFixture(t, 3, 3)
	a, b, c := f.keys[0], f.keys[1], f.keys[2]
	d := communitytest.NewKey(t).Address()
	e := communitytest.NewKey(t)

	f.request(t, d)
	f.request(t, e.Address())

	f.vouch(t, a, e.Address())
	f.vouch(t, b, e.Address())
	if v := f.vouch(t, c, e.Address()); !v.Admitted {
		t.Fatalf("E must be admitted: %+v", v)
	}
	f.assertState(t, e.Address(), true, false, 3)
	f.assertState(t, d, false, true, 0)

	f.vouch(t, a, d)
	f.vouch(t, b, d)
	// The member admitted a moment ago endorses the other candidate.
	if v := f.vouch(t, e, d); !v.Admitted || v.Votes != 3 {
		t.Fatalf("D must be admitted: %+v", v)
	}
	f.assertState(t, d, true, false, 3)

	members, err := f.ctrl.Registry().Members(f.db)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(members))
	candidates, err := f.ctrl.Registry().Candidates(f.db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(candidates))
}

func TestScenarioVouchForUnknown(t *testing.T) {
	f := newFixture(t, 2, 3)
	stranger := communitytest.NewKey(t).Address()

	_, err := f.ctrl.Vouch(f.db, stranger, f.sign(t, f.keys[0], stranger), 1)
	assert.IsErr(t, ErrCandidateNotFound, err)
	f.assertState(t, stranger, false, false, 0)

	// The candidate check happens before the signature verification.
	_, err = f.ctrl.Vouch(f.db, stranger, []byte("not a signature"), 1)
	assert.IsErr(t, ErrCandidateNotFound, err)

	// An existing member is not a candidate either.
	_, err = f.ctrl.Vouch(f.db, f.members[1], f.sign(t, f.keys[0], f.members[1]), 1)
	assert.IsErr(t, ErrCandidateNotFound, err)
}

func TestRequestIdentification(t *testing.T) {
	f := newFixture(t, 1, 2)
	candidate := communitytest.SequentialAddress(7)
	f.request(t, candidate)

	cases := map[string]struct {
		caller  community.Address
		wantErr *errors.Error
	}{
		"member": {
			caller:  f.members[0],
			wantErr: ErrAlreadyMember,
		},
		"candidate": {
			caller:  candidate,
			wantErr: ErrAlreadyCandidate,
		},
		"missing caller": {
			caller:  nil,
			wantErr: errors.ErrEmpty,
		},
		"invalid caller": {
			caller:  community.Address{1, 2, 3},
			wantErr: errors.ErrInput,
		},
		"new identity": {
			caller:  communitytest.SequentialAddress(8),
			wantErr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := f.ctrl.CanRequestIdentification(f.db, tc.caller)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
			err = f.ctrl.RequestIdentification(f.db, tc.caller, 3)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}

	// Failed requests must not create or alter candidates.
	f.assertState(t, f.members[0], true, false, 0)
	f.assertState(t, candidate, false, true, 0)
	candidates, err := f.ctrl.Registry().Candidates(f.db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(candidates))
}

func TestVouchFailures(t *testing.T) {
	f := newFixture(t, 2, 2)
	candidate := communitytest.NewKey(t).Address()
	f.request(t, candidate)
	f.vouch(t, f.keys[0], candidate)

	outsider := communitytest.NewKey(t)
	otherRegistry, err := outsider.SignPersonal(VouchMessage(communitytest.SequentialAddress(1), candidate))
	assert.Nil(t, err)

	cases := map[string]struct {
		sig     []byte
		wantErr *errors.Error
	}{
		"signed by a non member": {
			sig:     f.sign(t, outsider, candidate),
			wantErr: ErrMemberNotFound,
		},
		"signed for another candidate": {
			sig:     f.sign(t, outsider, outsider.Address()),
			wantErr: ErrMemberNotFound,
		},
		"signed for another registry": {
			sig:     otherRegistry,
			wantErr: ErrMemberNotFound,
		},
		"zero signature": {
			sig:     make([]byte, crypto.SignatureLength),
			wantErr: errors.ErrInvalidSignature,
		},
		"short signature": {
			sig:     []byte{1, 2, 3},
			wantErr: errors.ErrInvalidSignature,
		},
		"missing signature": {
			sig:     nil,
			wantErr: errors.ErrInvalidSignature,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := f.ctrl.CheckVouch(f.db, candidate, tc.sig)
			assert.IsErr(t, tc.wantErr, err)
			_, err = f.ctrl.Vouch(f.db, candidate, tc.sig, 5)
			assert.IsErr(t, tc.wantErr, err)
			f.assertState(t, candidate, false, true, 1)
		})
	}
}

func TestDuplicateVouch(t *testing.T) {
	f := newFixture(t, 2, 2)
	candidate := communitytest.NewKey(t).Address()
	f.request(t, candidate)

	first := f.vouch(t, f.keys[0], candidate)
	assert.Equal(t, false, first.Duplicate)
	assert.Equal(t, uint32(1), first.Votes)

	// Repeated endorsements of the same member are counted once.
	for i := 0; i < 3; i++ {
		v := f.vouch(t, f.keys[0], candidate)
		assert.Equal(t, true, v.Duplicate)
		assert.Equal(t, false, v.Admitted)
		assert.Equal(t, uint32(1), v.Votes)
	}
	f.assertState(t, candidate, false, true, 1)

	endorsers, err := f.ctrl.Registry().Endorsers(f.db, candidate)
	assert.Nil(t, err)
	assert.Equal(t, []community.Address{f.members[0]}, endorsers)

	if v := f.vouch(t, f.keys[1], candidate); !v.Admitted {
		t.Fatalf("candidate must be admitted: %+v", v)
	}
}

func TestCheckVouchDoesNotWrite(t *testing.T) {
	f := newFixture(t, 1, 1)
	candidate := communitytest.SequentialAddress(3)
	f.request(t, candidate)

	v, err := f.ctrl.CheckVouch(f.db, candidate, f.sign(t, f.keys[0], candidate))
	assert.Nil(t, err)
	assert.Equal(t, true, v.Admitted)
	assert.Equal(t, uint32(1), v.Votes)
	f.assertState(t, candidate, false, true, 0)

	ok, err := f.ctrl.Registry().HasEndorsed(f.db, candidate, f.members[0])
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

type verifierFunc func(message, sig []byte) (community.Address, error)

func (fn verifierFunc) Recover(message, sig []byte) (community.Address, error) {
	return fn(message, sig)
}

func TestVerifierFailure(t *testing.T) {
	f := newFixture(t, 1, 1)
	candidate := communitytest.SequentialAddress(3)
	f.request(t, candidate)

	var gotMessage []byte
	ctrl := NewController(verifierFunc(func(message, sig []byte) (community.Address, error) {
		gotMessage = message
		return nil, errors.Wrap(errors.ErrInput, "broken")
	}))
	_, err := ctrl.Vouch(f.db, candidate, []byte("sig"), 1)
	assert.IsErr(t, errors.ErrInvalidSignature, err)
	assert.Equal(t, VouchMessage(f.registry, candidate), gotMessage)

	ctrl = NewController(verifierFunc(func(message, sig []byte) (community.Address, error) {
		return nil, nil
	}))
	_, err = ctrl.Vouch(f.db, candidate, []byte("sig"), 1)
	assert.IsErr(t, errors.ErrInvalidSignature, err)

	f.assertState(t, candidate, false, true, 0)
}
