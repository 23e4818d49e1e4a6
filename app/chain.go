package app

import (
	"reflect"

	community "github.com/iov-one/community"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []community.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    app.NewRouter(),
  )

Nil decorators are skipped, which allows optional decorators to be
declared inline.
*/
func ChainDecorators(chain ...community.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of this chain, extended with given decorators.
func (d Decorators) Chain(chain ...community.Decorator) Decorators {
	next := make([]community.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d community.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h community.Handler) community.Handler {
	// The first decorator of the chain is the outermost one.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step executes a decorator around a specific Handler.
type step struct {
	d    community.Decorator
	next community.Handler
}

var _ community.Handler = step{}

func (s step) Check(ctx community.Context, store community.KVStore, tx community.Tx) (*community.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx community.Context, store community.KVStore, tx community.Tx) (*community.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
