package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// Controller implements the admission rules on top of the registry.
//
// Every operation runs all of its checks before the first write, so a
// failed operation never changes the state.
type Controller struct {
	registry *Registry
	verifier Verifier
}

// NewController returns a controller recovering endorsers with given
// verifier.
func NewController(verifier Verifier) *Controller {
	return &Controller{
		registry: NewRegistry(),
		verifier: verifier,
	}
}

// Registry returns the registry this controller operates on.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// CanRequestIdentification returns an error if given identity cannot become
// a candidate.
func (c *Controller) CanRequestIdentification(db community.ReadOnlyKVStore, caller community.Address) error {
	if err := caller.Validate(); err != nil {
		return errors.Wrap(err, "caller")
	}
	switch ok, err := c.registry.IsMember(db, caller); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(ErrAlreadyMember, "%s", caller)
	}
	switch ok, err := c.registry.IsCandidate(db, caller); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(ErrAlreadyCandidate, "%s", caller)
	}
	return nil
}

// RequestIdentification registers given identity as a candidate with no
// endorsements.
func (c *Controller) RequestIdentification(db community.KVStore, caller community.Address, height int64) error {
	if err := c.CanRequestIdentification(db, caller); err != nil {
		return err
	}
	return c.registry.putCandidate(db, caller, height)
}

// Vouch is the outcome of an endorsement.
type Vouch struct {
	Candidate community.Address
	// Endorser is the member recovered from the signature.
	Endorser community.Address
	// Votes is the candidate tally after the endorsement.
	Votes uint32
	// Duplicate is true if the endorsement was already counted, in which
	// case nothing was changed.
	Duplicate bool
	// Admitted is true if this endorsement made the candidate a member.
	Admitted bool
}

// CheckVouch validates an endorsement without applying it. The returned
// result describes what Vouch would do.
func (c *Controller) CheckVouch(db community.ReadOnlyKVStore, candidate community.Address, sig []byte) (*Vouch, error) {
	// The candidate goes first, so that vouching for an unknown candidate
	// fails the same way regardless of the signature.
	switch ok, err := c.registry.IsCandidate(db, candidate); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrapf(ErrCandidateNotFound, "%s", candidate)
	}

	conf, err := c.registry.Config(db)
	if err != nil {
		return nil, err
	}
	endorser, err := c.verifier.Recover(VouchMessage(conf.Registry, candidate), sig)
	if err != nil {
		if errors.ErrInvalidSignature.Is(err) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrInvalidSignature, err.Error())
	}
	if endorser.Validate() != nil {
		return nil, errors.Wrap(errors.ErrInvalidSignature, "no signer recovered")
	}

	switch ok, err := c.registry.IsMember(db, endorser); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrapf(ErrMemberNotFound, "signer %s", endorser)
	}

	votes, err := c.registry.VoteCount(db, candidate)
	if err != nil {
		return nil, err
	}
	res := Vouch{
		Candidate: candidate,
		Endorser:  endorser,
		Votes:     votes,
	}
	switch ok, err := c.registry.HasEndorsed(db, candidate, endorser); {
	case err != nil:
		return nil, err
	case ok:
		res.Duplicate = true
		return &res, nil
	}
	res.Votes++
	res.Admitted = res.Votes >= conf.Threshold
	return &res, nil
}

// Vouch counts the endorsement of a candidate by the member that produced
// given signature. A repeated endorsement by the same member is not an
// error and does not change anything. The candidate becomes a member as
// soon as its tally reaches the threshold.
func (c *Controller) Vouch(db community.KVStore, candidate community.Address, sig []byte, height int64) (*Vouch, error) {
	res, err := c.CheckVouch(db, candidate, sig)
	if err != nil {
		return nil, err
	}
	if res.Duplicate {
		return res, nil
	}
	votes, err := c.registry.endorse(db, candidate, res.Endorser, sig)
	if err != nil {
		return nil, err
	}
	if votes != res.Votes {
		return nil, errors.Wrapf(errors.ErrHuman, "tally %d, expected %d", votes, res.Votes)
	}
	if res.Admitted {
		if err := c.registry.promote(db, candidate, height); err != nil {
			return nil, err
		}
	}
	return res, nil
}
