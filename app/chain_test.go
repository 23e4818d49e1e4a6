package app

import (
	"context"
	"testing"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/communitytest"
	"github.com/iov-one/community/communitytest/assert"
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/store"
	"github.com/iov-one/community/x/utils"
)

func TestChain(t *testing.T) {
	c1 := &communitytest.Decorator{}
	c2 := &communitytest.Decorator{}
	c3 := &communitytest.Decorator{}
	h := &communitytest.Handler{}

	var missing *communitytest.Decorator
	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nil,
		missing,
		utils.NewRecovery(),
		c2,
	).Chain(c3).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &communitytest.Tx{}

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	for _, c := range []*communitytest.Decorator{c1, c2, c3} {
		assert.Equal(t, 2, c.CallCount())
	}
	assert.Equal(t, 2, h.CallCount())

	// A failing decorator stops the chain, the outer decorators are still
	// called.
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// Panics are handled by the recovery decorator.
	panicking := ChainDecorators(utils.NewRecovery()).WithHandler(communitytest.PanicHandler{Msg: "boom"})
	_, err = panicking.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestChainDoesNotShareDecorators(t *testing.T) {
	base := ChainDecorators(&communitytest.Decorator{})
	a := base.Chain(&communitytest.Decorator{})
	b := base.Chain(&communitytest.Decorator{}, &communitytest.Decorator{})

	assert.Equal(t, 1, len(base.chain))
	assert.Equal(t, 2, len(a.chain))
	assert.Equal(t, 3, len(b.chain))
	if a.chain[1] == b.chain[1] {
		t.Fatal("extended chains must not share decorators")
	}
	var _ community.Handler = a.WithHandler(&communitytest.Handler{})
}
