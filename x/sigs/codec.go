package sigs

import (
	"github.com/gogo/protobuf/proto"
)

func (u *UserData) Reset()         { *u = UserData{} }
func (u *UserData) String() string { return proto.CompactTextString(u) }
func (*UserData) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataWire)(u))
}

func (u *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userDataWire)(u))
}

// userDataWire is serialized by the protobuf library using the field tags.
type userDataWire UserData

func (u *userDataWire) Reset()         { *u = userDataWire{} }
func (u *userDataWire) String() string { return proto.CompactTextString(u) }
func (*userDataWire) ProtoMessage()    {}

func (s *StdSignature) Reset()         { *s = StdSignature{} }
func (s *StdSignature) String() string { return proto.CompactTextString(s) }
func (*StdSignature) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignatureWire)(s))
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignatureWire)(s))
}

// stdSignatureWire is serialized by the protobuf library using the field tags.
type stdSignatureWire StdSignature

func (s *stdSignatureWire) Reset()         { *s = stdSignatureWire{} }
func (s *stdSignatureWire) String() string { return proto.CompactTextString(s) }
func (*stdSignatureWire) ProtoMessage()    {}
