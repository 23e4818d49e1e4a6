package utils

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// Recovery is a decorator that turns a panic raised by a handler into an
// ErrPanic result. The panic is written to the context logger together with
// the message path, so a crashing handler does not stop the node.
type Recovery struct{}

var _ community.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx community.Context, store community.KVStore, tx community.Tx, next community.Checker) (_ *community.CheckResult, err error) {
	defer logPanic(ctx, tx, "check", &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx community.Context, store community.KVStore, tx community.Tx, next community.Deliverer) (_ *community.DeliverResult, err error) {
	defer logPanic(ctx, tx, "deliver", &err)
	return next.Deliver(ctx, store, tx)
}

// logPanic must be deferred directly, because recover only works in a
// function called by the deferred call itself.
func logPanic(ctx community.Context, tx community.Tx, phase string, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		community.GetLogger(ctx).Error("handler panic",
			"phase", phase,
			"path", community.GetPath(tx),
			"err", *err)
	}
}
