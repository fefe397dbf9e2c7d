package utils

import (
	"time"

	"github.com/remitwise/splitledger"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ splitledger.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx, next splitledger.Checker) (*splitledger.CheckResult, error) {
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
func (Logging) Deliver(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx, next splitledger.Deliverer) (*splitledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes the handled path, time taken and result to the logger
func logDuration(ctx splitledger.Context, tx splitledger.Tx, start time.Time, msg string, err error, check bool) {
	logger := splitledger.GetLogger(ctx).With(
		"path", splitledger.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	// an empty message is still logged, the fields carry the information
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
