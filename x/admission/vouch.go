package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/crypto"
)

// Verifier recovers the identity that signed a message.
//
// An implementation must fail with ErrInvalidSignature when the signature
// is malformed or does not recover to a valid identity.
type Verifier interface {
	Recover(message, signature []byte) (community.Address, error)
}

var _ Verifier = crypto.PersonalSignVerifier{}

// VouchMessage returns the message a member signs to endorse a candidate
// of given registry. It is keccak256(registry || candidate), the same as
// solidity keccak256(abi.encodePacked(registry, candidate)).
//
// Including the registry prevents an endorsement from being replayed
// against another registry.
func VouchMessage(registry, candidate community.Address) []byte {
	return crypto.Keccak256(registry, candidate)
}

// SignVouch returns the endorsement of a candidate by the owner of given
// key, signed as a personal message.
func SignVouch(key *crypto.PrivateKey, registry, candidate community.Address) ([]byte, error) {
	return key.SignPersonal(VouchMessage(registry, candidate))
}

// RegistryAddress returns the registry identity used when the genesis file
// does not declare one. It is unique per chain.
func RegistryAddress(chainID string) community.Address {
	return community.NewAddress([]byte("admission/registry/" + chainID))
}
