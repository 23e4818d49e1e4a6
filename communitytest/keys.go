package communitytest

import (
	"testing"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/crypto"
)

// NewKey returns a new, randomly generated private key.
func NewKey(t testing.TB) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.GenPrivKey()
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return key
}

// NewKeys returns count new private keys along with their addresses.
func NewKeys(t testing.TB, count int) ([]*crypto.PrivateKey, []community.Address) {
	t.Helper()
	keys := make([]*crypto.PrivateKey, count)
	addrs := make([]community.Address, count)
	for i := range keys {
		keys[i] = NewKey(t)
		addrs[i] = keys[i].Address()
	}
	return keys, addrs
}

// SequentialAddress returns a valid address whose last byte is n. Use it
// for participants that never sign anything.
func SequentialAddress(n byte) community.Address {
	addr := make(community.Address, community.AddressLength)
	addr[len(addr)-1] = n
	return addr
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encoded string) community.Address {
	t.Helper()
	addr, err := community.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}
