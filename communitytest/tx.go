package communitytest

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// Tx represents a community transaction. Its only content is the message.
// Serialization is not supported.
type Tx struct {
	community.Tx

	Msg community.Msg
	// Err if set is returned by GetMsg instead of the message.
	Err error
}

var _ community.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (community.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Msg represents a community message. Serialization is not supported.
type Msg struct {
	community.Msg

	// RoutePath is returned by Path. Use it to route the message.
	RoutePath string

	// Err if set is returned by Validate.
	Err error
}

var _ community.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

// ErrMsg can be used to signal an invalid message in tests.
var ErrMsg = errors.Wrap(errors.ErrMsg, "test message")
