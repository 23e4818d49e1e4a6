/*
Package crypto provides secp256k1 keys and the signature recovery used to
authenticate community participants.

Addresses are derived from public keys the way ethereum does it, so that
any ethereum wallet can act as a member: the address is the last 20 bytes of
the Keccak-256 hash of the uncompressed public key. Signatures are 65 bytes
long (r, s and the recovery id v), and the signer is recovered from the
signature and the signed hash instead of being sent on the wire.
*/
package crypto
