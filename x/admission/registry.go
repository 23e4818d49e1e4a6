package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/orm"
)

// Registry gives access to the membership state: the configuration, the
// members, the candidates, their tallies and the endorsements.
//
// Members and candidates are always disjoint sets. A candidate tally is
// always the number of its stored endorsements and stays below the
// threshold until the candidate is admitted.
type Registry struct {
	config       orm.ModelBucket
	members      orm.ModelBucket
	candidates   orm.ModelBucket
	tallies      orm.ModelBucket
	endorsements orm.ModelBucket
}

// NewRegistry returns a registry operating on the admission buckets.
func NewRegistry() *Registry {
	return &Registry{
		config:       orm.NewModelBucket(configBucket, &Configuration{}),
		members:      orm.NewModelBucket(memberBucket, &Member{}),
		candidates:   orm.NewModelBucket(candidateBucket, &Candidate{}),
		tallies:      orm.NewModelBucket(tallyBucket, &Tally{}),
		endorsements: orm.NewModelBucket(endorsementBucket, &Endorsement{}),
	}
}

// Initialize configures the registry and stores the initial members.
// Duplicated initial members are counted once. It fails with ErrQuorum if
// the threshold is zero or greater than the number of initial members. A
// registry can be initialized only once.
func (r *Registry) Initialize(db community.KVStore, threshold uint32, initialMembers []community.Address, registry community.Address) error {
	switch _, err := r.Config(db); {
	case err == nil:
		return errors.Wrap(errors.ErrState, "registry already initialized")
	case !errors.ErrNotFound.Is(err):
		return err
	}

	var members []community.Address
	for i, m := range initialMembers {
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "member #%d", i)
		}
		if !containsAddress(members, m) {
			members = append(members, m)
		}
	}
	if threshold == 0 {
		return errors.Wrap(ErrQuorum, "threshold must be positive")
	}
	if uint64(len(members)) < uint64(threshold) {
		return errors.Wrapf(ErrQuorum, "%d members cannot reach threshold %d", len(members), threshold)
	}

	conf := Configuration{
		Metadata:  &community.Metadata{Schema: 1},
		Threshold: threshold,
		Registry:  registry,
	}
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, "configuration")
	}

	if err := r.config.Put(db, configKey, &conf); err != nil {
		return errors.Wrap(err, "cannot store configuration")
	}
	for _, m := range members {
		if err := r.putMember(db, m, 0); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the registry configuration. It fails with ErrNotFound if
// the registry was not initialized.
func (r *Registry) Config(db community.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := r.config.One(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "registry configuration")
	}
	return &conf, nil
}

// IsMember returns true if given identity is a member.
func (r *Registry) IsMember(db community.ReadOnlyKVStore, id community.Address) (bool, error) {
	return has(r.members, db, id)
}

// IsCandidate returns true if given identity waits for endorsements.
func (r *Registry) IsCandidate(db community.ReadOnlyKVStore, id community.Address) (bool, error) {
	return has(r.candidates, db, id)
}

// VoteCount returns the number of distinct endorsements counted for given
// identity. The count of an admitted member is the one that reached the
// threshold. Zero is returned for any other identity.
func (r *Registry) VoteCount(db community.ReadOnlyKVStore, id community.Address) (uint32, error) {
	var t Tally
	switch err := r.tallies.One(db, id, &t); {
	case err == nil:
		return t.Votes, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load tally")
	}
}

// HasEndorsed returns true if the endorsement of given member was already
// counted for given candidate.
func (r *Registry) HasEndorsed(db community.ReadOnlyKVStore, candidate, member community.Address) (bool, error) {
	return has(r.endorsements, db, endorsementKey(candidate, member))
}

// Members returns all members, ordered by address.
func (r *Registry) Members(db community.ReadOnlyKVStore) ([]community.Address, error) {
	var m Member
	return collect(r.members, db, nil, &m, func() community.Address { return m.Address })
}

// Candidates returns all pending candidates, ordered by address.
func (r *Registry) Candidates(db community.ReadOnlyKVStore) ([]community.Address, error) {
	var c Candidate
	return collect(r.candidates, db, nil, &c, func() community.Address { return c.Address })
}

// Endorsers returns the members whose endorsement of given candidate was
// counted, ordered by address.
func (r *Registry) Endorsers(db community.ReadOnlyKVStore, candidate community.Address) ([]community.Address, error) {
	if len(candidate) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "candidate")
	}
	var e Endorsement
	return collect(r.endorsements, db, candidate, &e, func() community.Address { return e.Endorser })
}

func (r *Registry) putMember(db community.KVStore, id community.Address, height int64) error {
	m := Member{
		Metadata:   &community.Metadata{Schema: 1},
		Address:    id,
		AdmittedAt: height,
	}
	if err := r.members.Put(db, id, &m); err != nil {
		return errors.Wrap(err, "cannot store member")
	}
	return nil
}

func (r *Registry) putCandidate(db community.KVStore, id community.Address, height int64) error {
	c := Candidate{
		Metadata:    &community.Metadata{Schema: 1},
		Address:     id,
		RequestedAt: height,
	}
	if err := r.candidates.Put(db, id, &c); err != nil {
		return errors.Wrap(err, "cannot store candidate")
	}
	t := Tally{Metadata: &community.Metadata{Schema: 1}}
	if err := r.tallies.Put(db, id, &t); err != nil {
		return errors.Wrap(err, "cannot store tally")
	}
	return nil
}

// endorse stores the endorsement and returns the incremented tally.
func (r *Registry) endorse(db community.KVStore, candidate, member community.Address, sig []byte) (uint32, error) {
	votes, err := r.VoteCount(db, candidate)
	if err != nil {
		return 0, err
	}
	e := Endorsement{
		Metadata:  &community.Metadata{Schema: 1},
		Candidate: candidate,
		Endorser:  member,
		Signature: sig,
	}
	if err := r.endorsements.Put(db, endorsementKey(candidate, member), &e); err != nil {
		return 0, errors.Wrap(err, "cannot store endorsement")
	}
	votes++
	t := Tally{Metadata: &community.Metadata{Schema: 1}, Votes: votes}
	if err := r.tallies.Put(db, candidate, &t); err != nil {
		return 0, errors.Wrap(err, "cannot store tally")
	}
	return votes, nil
}

// promote moves a candidate to the members.
func (r *Registry) promote(db community.KVStore, candidate community.Address, height int64) error {
	if err := r.candidates.Delete(db, candidate); err != nil {
		return errors.Wrap(err, "cannot delete candidate")
	}
	return r.putMember(db, candidate, height)
}

func has(b orm.ModelBucket, db community.ReadOnlyKVStore, key []byte) (bool, error) {
	switch err := b.Has(db, key); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// collect iterates over all models with given key prefix. The model is
// loaded into dest and then addr is called to extract the address.
func collect(b orm.ModelBucket, db community.ReadOnlyKVStore, prefix []byte, dest orm.Model, addr func() community.Address) ([]community.Address, error) {
	it, err := b.PrefixScan(db, prefix, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []community.Address
	for {
		switch _, err := it.LoadNext(dest); {
		case err == nil:
			res = append(res, addr())
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

func containsAddress(addrs []community.Address, a community.Address) bool {
	for _, x := range addrs {
		if x.Equals(a) {
			return true
		}
	}
	return false
}
