package x

import (
	community "github.com/iov-one/community"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners returns all addresses that authorized the current
	// transaction.
	GetSigners(community.Context) []community.Address
	// HasAddress checks if any signer matches this address
	HasAddress(community.Context, community.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators, in order.
// Duplicates are removed.
func (m MultiAuth) GetSigners(ctx community.Context) []community.Address {
	var res []community.Address
	for _, impl := range m.impls {
		for _, addr := range impl.GetSigners(ctx) {
			if !containsAddress(res, addr) {
				res = append(res, addr)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx community.Context, addr community.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx community.Context, auth Authenticator) community.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx community.Context, auth Authenticator, required []community.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

func containsAddress(addrs []community.Address, addr community.Address) bool {
	for _, a := range addrs {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
