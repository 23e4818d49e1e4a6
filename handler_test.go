package community

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/community/communitytest/assert"
	"github.com/iov-one/community/errors"
)

func TestReadOptions(t *testing.T) {
	type conf struct {
		Threshold uint32 `json:"threshold"`
	}

	cases := map[string]struct {
		json    string
		want    conf
		wantErr *errors.Error
	}{
		"happy path": {
			json: `{"admission": {"threshold": 3}}`,
			want: conf{Threshold: 3},
		},
		"missing key is not an error": {
			json: `{"other": {"threshold": 3}}`,
		},
		"wrong value": {
			json:    `{"admission": {"threshold": "three"}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))
			var got conf
			err := o.ReadOptions("admission", &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

type recordingInit struct {
	calls *[]string
	name  string
	err   error
}

func (r recordingInit) FromGenesis(opts Options, params GenesisParams, kv KVStore) error {
	*r.calls = append(*r.calls, r.name+"@"+params.ChainID)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	params := GenesisParams{ChainID: "test-chain"}

	ok := ChainInitializers(
		recordingInit{calls: &calls, name: "a"},
		recordingInit{calls: &calls, name: "b"},
	)
	assert.Nil(t, ok.FromGenesis(Options{}, params, nil))
	assert.Equal(t, []string{"a@test-chain", "b@test-chain"}, calls)

	calls = nil
	failing := ChainInitializers(
		recordingInit{calls: &calls, name: "a", err: errors.ErrState},
		recordingInit{calls: &calls, name: "b"},
	)
	assert.IsErr(t, errors.ErrState, failing.FromGenesis(Options{}, params, nil))
	assert.Equal(t, []string{"a@test-chain"}, calls)
}
