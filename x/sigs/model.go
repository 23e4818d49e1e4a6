package sigs

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the replay protection state kept for every signer.
type UserData struct {
	Metadata *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Sequence is the sequence the next signature of this signer must
	// use.
	Sequence int64 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	if u.Sequence < 0 {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "negative"))
	}
	return errs
}

// maxSequenceValue is limited by javascript clients, whose greatest safe
// integer is 2^53 - 1.
const maxSequenceValue = (1 << 53) - 1

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns the bucket keeping the state of every signer, keyed by
// its address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadUser returns the state of given signer. A signer that never signed
// anything starts with sequence zero.
func loadUser(db community.ReadOnlyKVStore, addr community.Address) (*UserData, error) {
	var user UserData
	err := NewBucket().One(db, addr, &user)
	switch {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Metadata: &community.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load signer")
	}
}

// NextSequence returns the sequence the next signature of given address
// must use.
func NextSequence(db community.ReadOnlyKVStore, addr community.Address) (int64, error) {
	user, err := loadUser(db, addr)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
