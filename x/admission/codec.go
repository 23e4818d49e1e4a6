package admission

import (
	"github.com/gogo/protobuf/proto"
)

// Models and messages are serialized by the protobuf library, following
// the declarations of codec.proto. Each type has a wire twin without the
// Marshal and Unmarshal methods, which the library encodes using the
// field tags.

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationWire)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationWire)(c))
}

type configurationWire Configuration

func (c *configurationWire) Reset()         { *c = configurationWire{} }
func (c *configurationWire) String() string { return proto.CompactTextString(c) }
func (*configurationWire) ProtoMessage()    {}

func (m *Member) Reset()         { *m = Member{} }
func (m *Member) String() string { return proto.CompactTextString(m) }
func (*Member) ProtoMessage()    {}

func (m *Member) Marshal() ([]byte, error) {
	return proto.Marshal((*memberWire)(m))
}

func (m *Member) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*memberWire)(m))
}

type memberWire Member

func (m *memberWire) Reset()         { *m = memberWire{} }
func (m *memberWire) String() string { return proto.CompactTextString(m) }
func (*memberWire) ProtoMessage()    {}

func (c *Candidate) Reset()         { *c = Candidate{} }
func (c *Candidate) String() string { return proto.CompactTextString(c) }
func (*Candidate) ProtoMessage()    {}

func (c *Candidate) Marshal() ([]byte, error) {
	return proto.Marshal((*candidateWire)(c))
}

func (c *Candidate) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*candidateWire)(c))
}

type candidateWire Candidate

func (c *candidateWire) Reset()         { *c = candidateWire{} }
func (c *candidateWire) String() string { return proto.CompactTextString(c) }
func (*candidateWire) ProtoMessage()    {}

func (t *Tally) Reset()         { *t = Tally{} }
func (t *Tally) String() string { return proto.CompactTextString(t) }
func (*Tally) ProtoMessage()    {}

func (t *Tally) Marshal() ([]byte, error) {
	return proto.Marshal((*tallyWire)(t))
}

func (t *Tally) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*tallyWire)(t))
}

type tallyWire Tally

func (t *tallyWire) Reset()         { *t = tallyWire{} }
func (t *tallyWire) String() string { return proto.CompactTextString(t) }
func (*tallyWire) ProtoMessage()    {}

func (en *Endorsement) Reset()         { *en = Endorsement{} }
func (en *Endorsement) String() string { return proto.CompactTextString(en) }
func (*Endorsement) ProtoMessage()     {}

func (en *Endorsement) Marshal() ([]byte, error) {
	return proto.Marshal((*endorsementWire)(en))
}

func (en *Endorsement) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*endorsementWire)(en))
}

type endorsementWire Endorsement

func (en *endorsementWire) Reset()         { *en = endorsementWire{} }
func (en *endorsementWire) String() string { return proto.CompactTextString(en) }
func (*endorsementWire) ProtoMessage()     {}

func (m *RequestIdentificationMsg) Reset()         { *m = RequestIdentificationMsg{} }
func (m *RequestIdentificationMsg) String() string { return proto.CompactTextString(m) }
func (*RequestIdentificationMsg) ProtoMessage()    {}

func (m *RequestIdentificationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*requestIdentificationMsgWire)(m))
}

func (m *RequestIdentificationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*requestIdentificationMsgWire)(m))
}

type requestIdentificationMsgWire RequestIdentificationMsg

func (m *requestIdentificationMsgWire) Reset()         { *m = requestIdentificationMsgWire{} }
func (m *requestIdentificationMsgWire) String() string { return proto.CompactTextString(m) }
func (*requestIdentificationMsgWire) ProtoMessage()    {}

func (m *VouchMsg) Reset()         { *m = VouchMsg{} }
func (m *VouchMsg) String() string { return proto.CompactTextString(m) }
func (*VouchMsg) ProtoMessage()    {}

func (m *VouchMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*vouchMsgWire)(m))
}

func (m *VouchMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*vouchMsgWire)(m))
}

type vouchMsgWire VouchMsg

func (m *vouchMsgWire) Reset()         { *m = vouchMsgWire{} }
func (m *vouchMsgWire) String() string { return proto.CompactTextString(m) }
func (*vouchMsgWire) ProtoMessage()    {}
