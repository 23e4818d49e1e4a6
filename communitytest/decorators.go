package communitytest

import (
	community "github.com/iov-one/community"
)

// Decorator is a mock implementation of the community.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ community.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx community.Context, db community.KVStore, tx community.Tx, next community.Checker) (*community.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx community.Context, db community.KVStore, tx community.Tx, next community.Deliverer) (*community.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps given handler with a decorator.
func Decorate(h community.Handler, d community.Decorator) community.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn community.Handler
	dc community.Decorator
}

var _ community.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx community.Context, db community.KVStore, tx community.Tx) (*community.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx community.Context, db community.KVStore, tx community.Tx) (*community.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
