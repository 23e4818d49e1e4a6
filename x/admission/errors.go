package admission

import (
	"github.com/iov-one/community/errors"
)

// Error codes
// x/admission reserves 1100 ~ 1109.

var (
	// ErrQuorum is returned when the registry cannot be configured,
	// because the threshold is zero or cannot be reached by the initial
	// members.
	ErrQuorum = errors.Register(1100, "quorum cannot be reached")

	// ErrAlreadyMember is returned when a member requests identification.
	ErrAlreadyMember = errors.Register(1101, "already a member")

	// ErrAlreadyCandidate is returned when a pending candidate requests
	// identification again.
	ErrAlreadyCandidate = errors.Register(1102, "already a candidate")

	// ErrCandidateNotFound is returned when vouching for an address that
	// never requested identification, or that was already admitted.
	ErrCandidateNotFound = errors.Register(1103, "candidate not found")

	// ErrMemberNotFound is returned when a vouch is signed by anyone but
	// a member.
	ErrMemberNotFound = errors.Register(1104, "member not found")
)
