package communitytest

import (
	community "github.com/iov-one/community"
)

// Handler is a mock implementation of the community.Handler interface.
//
// Each method call is counted. Results and errors are returned as set.
// When Key is set, the handler writes Key and Value to the store before
// returning, so that rollbacks can be tested.
type Handler struct {
	Key   []byte
	Value []byte

	checkCall   int
	CheckResult community.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult community.DeliverResult
	DeliverErr    error
}

var _ community.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx community.Context, db community.KVStore, tx community.Tx) (*community.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	// Return a copy to not allow modifications of the template.
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx community.Context, db community.KVStore, tx community.Tx) (*community.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db community.KVStore) error {
	if h.Key == nil {
		return nil
	}
	return db.Set(h.Key, h.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ community.Handler = PanicHandler{}

func (p PanicHandler) Check(community.Context, community.KVStore, community.Tx) (*community.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(community.Context, community.KVStore, community.Tx) (*community.DeliverResult, error) {
	panic(p.Msg)
}
