package community

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/community/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(Address{1, 2, 3}.Validate()))
	assert.NoError(t, NewAddress([]byte("anything")).Validate())
	assert.Nil(t, NewAddress(nil))
}

func TestAddressString(t *testing.T) {
	addr := Address{0xab, 0xcd, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 0xff}
	assert.Equal(t, "ABCD0102030405060708090A0B0C0D0E0F1011FF", addr.String())
	assert.Equal(t, "(nil)", Address(nil).String())

	cpy := addr.Clone()
	assert.True(t, addr.Equals(cpy))
	cpy[0] = 0
	assert.False(t, addr.Equals(cpy))
}

func TestParseAddress(t *testing.T) {
	const hexAddr = "ABCD0102030405060708090A0B0C0D0E0F1011FF"
	want := Address{0xab, 0xcd, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 0xff}
	bech, err := want.Bech32("iov")
	require.NoError(t, err)

	cases := map[string]struct {
		enc     string
		want    Address
		wantErr *errors.Error
	}{
		"empty":            {enc: "", want: nil},
		"hex":              {enc: hexAddr, want: want},
		"lower case hex":   {enc: "abcd0102030405060708090a0b0c0d0e0f1011ff", want: want},
		"0x prefixed":      {enc: "0x" + hexAddr, want: want},
		"bech32":           {enc: "bech32:" + bech, want: want},
		"invalid hex":      {enc: "zz", wantErr: errors.ErrInput},
		"too short":        {enc: "0xABCD", wantErr: errors.ErrInput},
		"malformed bech32": {enc: "bech32:iov1nope", wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := NewAddress([]byte("json"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	assert.Error(t, json.Unmarshal([]byte(`"0x1234"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`12`), &got))
}
