package utils

import (
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ splitledger.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx, next splitledger.Checker) (_ *splitledger.CheckResult, err error) {
	defer recoverTo(ctx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx, next splitledger.Deliverer) (_ *splitledger.DeliverResult, err error) {
	defer recoverTo(ctx, &err)
	return next.Deliver(ctx, store, tx)
}

func recoverTo(ctx splitledger.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		splitledger.GetLogger(ctx).Error("recovered from panic", "panic", r)
	}
}
