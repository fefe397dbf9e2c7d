package utils

import (
	"github.com/remitwise/splitledger"
)

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ splitledger.Handler = writeHandler{}

func (h writeHandler) Check(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx) (*splitledger.CheckResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &splitledger.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx) (*splitledger.DeliverResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &splitledger.DeliverResult{}, nil
}
