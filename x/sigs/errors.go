package sigs

import "github.com/iov-one/community/errors"

// ErrInvalidSequence is returned when a signature sequence does not match
// the next sequence expected for the signer.
var ErrInvalidSequence = errors.Register(1120, "invalid sequence number")
