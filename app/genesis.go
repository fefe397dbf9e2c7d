package app

import (
	"github.com/remitwise/splitledger"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...splitledger.Initializer) splitledger.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []splitledger.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts splitledger.Options, kv splitledger.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
