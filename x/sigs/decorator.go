/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.
*/
package sigs

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

const (
	signatureVerifyCost = 500
)

// RegisterQuery will register this bucket as "/sigs"
func RegisterQuery(qr community.QueryRouter) {
	NewBucket().Register("", qr)
}

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ community.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx community.Context, store community.KVStore, tx community.Tx, next community.Checker) (*community.CheckResult, error) {
	ctx, signers, err := d.withSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// Signature recovery is the most expensive operation, so gas is charged
	// for every signer.
	res.GasPayment += int64(len(signers) * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx community.Context, store community.KVStore, tx community.Tx, next community.Deliverer) (*community.DeliverResult, error) {
	ctx, _, err := d.withSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withSigners(ctx community.Context, store community.KVStore, tx community.Tx) (community.Context, []community.Address, error) {
	var signers []community.Address
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(store, stx, community.GetChainID(ctx))
		if err != nil {
			return nil, nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), signers, nil
}
