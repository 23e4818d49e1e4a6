package app

import (
	"github.com/gogo/protobuf/proto"
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// ResultSet is the encoding of query results. The keys and the values of a
// query are two result sets of the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (r *ResultSet) Reset()         { *r = ResultSet{} }
func (r *ResultSet) String() string { return proto.CompactTextString(r) }
func (*ResultSet) ProtoMessage()    {}

// Marshal keeps empty results, so that keys and values stay aligned.
func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetWire)(r))
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetWire)(r))
}

type resultSetWire ResultSet

func (r *resultSetWire) Reset()         { *r = resultSetWire{} }
func (r *resultSetWire) String() string { return proto.CompactTextString(r) }
func (*resultSetWire) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []community.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []community.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]community.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]community.Model, len(kref))
	for i := range mods {
		mods[i] = community.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o.
// ErrNotFound is returned for an empty result set.
func UnmarshalOneResult(bz []byte, o community.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(err, "cannot unmarshal result set")
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return o.Unmarshal(res.Results[0])
}
