package communitytest

import (
	"context"
	"fmt"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/x"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses. You can use
// either Signer or Signers (or both) attributes to reference addresses.
// Each time all signers (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. It is
	// returned first.
	Signer community.Address

	// Signers represents an authentication of multiple signers.
	Signers []community.Address
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetSigners(community.Context) []community.Address {
	if a.Signer != nil {
		return append([]community.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx community.Context, addr community.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

var _ x.Authenticator = (*CtxAuth)(nil)

// SetSigners returns a context authenticating given addresses.
func (a *CtxAuth) SetSigners(ctx community.Context, signers ...community.Address) community.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx community.Context) []community.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]community.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []community.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx community.Context, addr community.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
