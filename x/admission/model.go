package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/orm"
)

const (
	configBucket      = "admission"
	memberBucket      = "members"
	candidateBucket   = "candidates"
	tallyBucket       = "tallies"
	endorsementBucket = "endorsements"
)

// configKey is the only key of the configuration bucket.
var configKey = []byte("config")

// Configuration is created once, by the genesis initializer.
type Configuration struct {
	Metadata *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Threshold is the number of distinct member endorsements required to
	// admit a candidate.
	Threshold uint32 `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold,omitempty"`
	// Registry identifies this registry in vouch messages.
	Registry community.Address `protobuf:"bytes,3,opt,name=registry,proto3,casttype=github.com/iov-one/community.Address" json:"registry,omitempty"`
}

var _ orm.Model = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if c.Threshold == 0 {
		errs = errors.Append(errs, errors.Field("Threshold", ErrQuorum, "must be positive"))
	}
	errs = errors.AppendField(errs, "Registry", c.Registry.Validate())
	return errs
}

// Member is an identity that was either present in the genesis file or
// collected enough endorsements.
type Member struct {
	Metadata *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  community.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/community.Address" json:"address,omitempty"`
	// AdmittedAt is the block height of the admission. Zero for the
	// genesis members.
	AdmittedAt int64 `protobuf:"varint,3,opt,name=admitted_at,json=admittedAt,proto3" json:"admitted_at,omitempty"`
}

var _ orm.Model = (*Member)(nil)

func (m *Member) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	if m.AdmittedAt < 0 {
		errs = errors.Append(errs, errors.Field("AdmittedAt", errors.ErrModel, "negative height"))
	}
	return errs
}

// Candidate is an identity waiting for endorsements.
type Candidate struct {
	Metadata    *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address     community.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/community.Address" json:"address,omitempty"`
	RequestedAt int64               `protobuf:"varint,3,opt,name=requested_at,json=requestedAt,proto3" json:"requested_at,omitempty"`
}

var _ orm.Model = (*Candidate)(nil)

func (c *Candidate) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", c.Address.Validate())
	if c.RequestedAt < 0 {
		errs = errors.Append(errs, errors.Field("RequestedAt", errors.ErrModel, "negative height"))
	}
	return errs
}

// Tally counts distinct endorsements of a candidate. It is kept after the
// candidate is admitted.
type Tally struct {
	Metadata *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Votes    uint32              `protobuf:"varint,2,opt,name=votes,proto3" json:"votes,omitempty"`
}

var _ orm.Model = (*Tally)(nil)

func (t *Tally) Validate() error {
	return errors.AppendField(nil, "Metadata", t.Metadata.Validate())
}

// Endorsement records that a member vouched for a candidate. Only the
// first endorsement of each member is counted and stored.
type Endorsement struct {
	Metadata  *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Candidate community.Address   `protobuf:"bytes,2,opt,name=candidate,proto3,casttype=github.com/iov-one/community.Address" json:"candidate,omitempty"`
	Endorser  community.Address   `protobuf:"bytes,3,opt,name=endorser,proto3,casttype=github.com/iov-one/community.Address" json:"endorser,omitempty"`
	Signature []byte              `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

var _ orm.Model = (*Endorsement)(nil)

func (en *Endorsement) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", en.Metadata.Validate())
	errs = errors.AppendField(errs, "Candidate", en.Candidate.Validate())
	errs = errors.AppendField(errs, "Endorser", en.Endorser.Validate())
	if len(en.Signature) == 0 {
		errs = errors.Append(errs, errors.Field("Signature", errors.ErrEmpty, "required"))
	}
	return errs
}

// endorsementKey is the candidate address followed by the endorser
// address, so that all endorsements of a candidate share a prefix.
func endorsementKey(candidate, endorser community.Address) []byte {
	key := make([]byte, 0, len(candidate)+len(endorser))
	key = append(key, candidate...)
	return append(key, endorser...)
}

