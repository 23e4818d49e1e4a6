package utils

import (
	"time"

	community "github.com/iov-one/community"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ community.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx community.Context, store community.KVStore, tx community.Tx, next community.Checker) (*community.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx community.Context, store community.KVStore, tx community.Tx, next community.Deliverer) (*community.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx community.Context, tx community.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := community.GetLogger(ctx).With(
		"duration", delta/time.Microsecond,
		"path", community.GetPath(tx),
	)

	// The entry is emitted even for an empty message, because it carries
	// the duration and the path.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
