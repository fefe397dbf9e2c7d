package utils

import (
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

// Savepoint isolates all writes done inside of the call. They are kept if
// the call succeeds and dropped if it returns an error.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ splitledger.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a savepoint
func (s Savepoint) Check(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx, next splitledger.Checker) (*splitledger.CheckResult, error) {
	cache, ok := s.cache(store, s.onCheck)
	if !ok {
		return next.Check(ctx, store, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a savepoint
func (s Savepoint) Deliver(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx, next splitledger.Deliverer) (*splitledger.DeliverResult, error) {
	cache, ok := s.cache(store, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (Savepoint) cache(store splitledger.KVStore, enabled bool) (splitledger.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cstore, ok := store.(splitledger.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

// finish writes the cache if the call succeeded, otherwise drops it and
// returns the call error.
func finish(cache splitledger.KVCacheWrap, err error) error {
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
