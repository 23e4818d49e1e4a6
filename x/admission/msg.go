package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

const (
	pathRequestIdentificationMsg = "admission/request"
	pathVouchMsg                 = "admission/vouch"
)

// RequestIdentificationMsg registers the main signer of the transaction
// as a candidate.
type RequestIdentificationMsg struct {
	Metadata *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

var _ community.Msg = (*RequestIdentificationMsg)(nil)

// Path returns the routing path for this message.
func (RequestIdentificationMsg) Path() string {
	return pathRequestIdentificationMsg
}

func (m *RequestIdentificationMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// VouchMsg endorses a candidate. The endorsing member is the signer of
// Signature, whoever submits the transaction.
type VouchMsg struct {
	Metadata  *community.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Candidate community.Address   `protobuf:"bytes,2,opt,name=candidate,proto3,casttype=github.com/iov-one/community.Address" json:"candidate,omitempty"`
	// Signature is created using SignVouch. It is verified only after the
	// candidate is found.
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

var _ community.Msg = (*VouchMsg)(nil)

// Path returns the routing path for this message.
func (VouchMsg) Path() string {
	return pathVouchMsg
}

func (m *VouchMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Candidate", m.Candidate.Validate())
	return errs
}
