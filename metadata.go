package community

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/community/errors"
)

// Metadata is carried by every stored model. Schema is the version of the
// model serialization and starts at 1, which also guarantees that a stored
// model never serializes to an empty value.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if the metadata is missing or declares no
// schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrModel, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrModel, "schema must be at least 1")
	}
	return nil
}

// Copy returns a deep copy of the metadata.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataWire)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*metadataWire)(m))
}

// metadataWire has the fields of Metadata but no Marshal method, so that
// the protobuf library serializes it using the field tags.
type metadataWire Metadata

func (m *metadataWire) Reset()         { *m = metadataWire{} }
func (m *metadataWire) String() string { return proto.CompactTextString(m) }
func (*metadataWire) ProtoMessage()    {}
