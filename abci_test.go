package community

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/community/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err       error
		debug     bool
		wantCode  uint32
		wantInLog string
	}{
		"registered error": {
			err:       errors.Wrap(errors.ErrUnauthorized, "nonce"),
			wantCode:  errors.ErrUnauthorized.ABCICode(),
			wantInLog: "nonce",
		},
		"unregistered error is redacted": {
			err:       fmt.Errorf("base"),
			wantCode:  1,
			wantInLog: "internal error",
		},
		"unregistered error in debug mode": {
			err:       fmt.Errorf("base"),
			debug:     true,
			wantCode:  1,
			wantInLog: "base",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := DeliverTxError(tc.err, tc.debug)
			assert.True(t, dres.IsErr())
			assert.Equal(t, tc.wantCode, dres.Code)
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx"))
			assert.Contains(t, dres.Log, tc.wantInLog)

			cres := CheckTxError(tc.err, tc.debug)
			assert.True(t, cres.IsErr())
			assert.Equal(t, tc.wantCode, cres.Code)
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx"))
			assert.Contains(t, cres.Log, tc.wantInLog)
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	tags := []common.KVPair{{Key: []byte("admission/identified"), Value: []byte("ABCD")}}
	dres := DeliverResult{Data: d, Log: msg, Tags: tags}
	ad := dres.ToABCI()
	assert.False(t, ad.IsErr())
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Equal(t, tags, ad.Tags)

	c, gas := "aok", int64(12345)
	cres := CheckResult{Log: c, GasAllocated: gas, GasPayment: 7}
	ac := cres.ToABCI()
	assert.False(t, ac.IsErr())
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)
}

func TestResultOrError(t *testing.T) {
	res := DeliverOrError(nil, errors.Wrap(errors.ErrNotFound, "candidate"), false)
	assert.True(t, res.IsErr())
	assert.True(t, errors.ErrNotFound.Is(errors.ABCIError(res.Code, res.Log)))

	ok := DeliverOrError(&DeliverResult{Log: "fine"}, nil, false)
	assert.False(t, ok.IsErr())
	assert.Equal(t, "fine", ok.Log)

	check := CheckOrError(nil, errors.ErrUnauthorized, false)
	assert.True(t, check.IsErr())
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), check.Code)

	passed := CheckOrError(&CheckResult{GasAllocated: 3}, nil, false)
	assert.False(t, passed.IsErr())
	assert.Equal(t, int64(3), passed.GasWanted)
}
