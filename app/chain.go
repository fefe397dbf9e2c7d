package app

import (
	"reflect"

	"github.com/remitwise/splitledger"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []splitledger.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    utils.NewSavepoint().OnCheck(),
  ).WithHandler(
    myapp.Router(),
  )
*/
func ChainDecorators(chain ...splitledger.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain.
// Nil decorators are skipped.
func (d Decorators) Chain(chain ...splitledger.Decorator) Decorators {
	next := make([]splitledger.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dc := range chain {
		if !isNil(dc) {
			next = append(next, dc)
		}
	}
	return Decorators{chain: next}
}

func isNil(dc splitledger.Decorator) bool {
	if dc == nil {
		return true
	}
	v := reflect.ValueOf(dc)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h splitledger.Handler) splitledger.Handler {
	// the first decorator of the chain is the outermost one
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    splitledger.Decorator
	next splitledger.Handler
}

var _ splitledger.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx) (*splitledger.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx) (*splitledger.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
