/*
Package admission implements a quorum gated membership registry.

A fixed set of members is created from the genesis file. Any other
identity can request identification and become a candidate. Members
vouch for a candidate by signing

	keccak256(registry || candidate)

as a personal message. A candidate becomes a member with the same
vouch that brings its tally of distinct endorsements to the threshold.
Vouching twice for the same candidate is not an error and is counted
once.

Requests and admissions are notified using the
admission/identification_requested and admission/identified tags,
carrying the candidate address.
*/
package admission
