package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	requestIdentificationCost = 100
	vouchCost                 = 300
)

// Notification tag keys. The value of each tag is the candidate address.
const (
	TagIdentificationRequested = "admission/identification_requested"
	TagIdentified              = "admission/identified"
)

// RegisterRoutes registers handlers for admission message processing.
func RegisterRoutes(r community.Registry, auth x.Authenticator, verifier Verifier) {
	ctrl := NewController(verifier)
	r.Handle(pathRequestIdentificationMsg, &requestIdentificationHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathVouchMsg, &vouchHandler{ctrl: ctrl})
}

// RegisterQuery registers admission buckets for querying.
func RegisterQuery(qr community.QueryRouter) {
	r := NewRegistry()
	r.config.Register("", qr)
	r.members.Register("", qr)
	r.candidates.Register("", qr)
	r.tallies.Register("", qr)
	r.endorsements.Register("", qr)
}

type requestIdentificationHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ community.Handler = (*requestIdentificationHandler)(nil)

func (h *requestIdentificationHandler) Check(ctx community.Context, db community.KVStore, tx community.Tx) (*community.CheckResult, error) {
	caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CanRequestIdentification(db, caller); err != nil {
		return nil, err
	}
	return &community.CheckResult{GasAllocated: requestIdentificationCost}, nil
}

func (h *requestIdentificationHandler) Deliver(ctx community.Context, db community.KVStore, tx community.Tx) (*community.DeliverResult, error) {
	caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, _ := community.GetHeight(ctx)
	if err := h.ctrl.RequestIdentification(db, caller, height); err != nil {
		return nil, err
	}
	return &community.DeliverResult{
		Data: caller,
		Tags: []common.KVPair{tag(TagIdentificationRequested, caller)},
	}, nil
}

// validate returns the identity requesting identification, which is the
// main signer of the transaction.
func (h *requestIdentificationHandler) validate(ctx community.Context, tx community.Tx) (community.Address, error) {
	var msg RequestIdentificationMsg
	if err := community.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return caller, nil
}

type vouchHandler struct {
	ctrl *Controller
}

var _ community.Handler = (*vouchHandler)(nil)

func (h *vouchHandler) Check(ctx community.Context, db community.KVStore, tx community.Tx) (*community.CheckResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.CheckVouch(db, msg.Candidate, msg.Signature); err != nil {
		return nil, err
	}
	return &community.CheckResult{GasAllocated: vouchCost}, nil
}

func (h *vouchHandler) Deliver(ctx community.Context, db community.KVStore, tx community.Tx) (*community.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	height, _ := community.GetHeight(ctx)
	v, err := h.ctrl.Vouch(db, msg.Candidate, msg.Signature, height)
	if err != nil {
		return nil, err
	}

	res := &community.DeliverResult{Data: v.Candidate}
	switch {
	case v.Duplicate:
		res.Log = "endorsement already counted"
	case v.Admitted:
		community.GetLogger(ctx).Info("candidate identified",
			"candidate", v.Candidate.String(),
			"votes", v.Votes)
		res.Tags = []common.KVPair{tag(TagIdentified, v.Candidate)}
	}
	return res, nil
}

func (h *vouchHandler) validate(tx community.Tx) (*VouchMsg, error) {
	var msg VouchMsg
	if err := community.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

func tag(key string, addr community.Address) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(addr.String())}
}
