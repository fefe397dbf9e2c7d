package split

import (
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/gconf"
)

const optKey = "split"

// Initializer fulfils the Initializer interface to load the split from the
// genesis file
type Initializer struct{}

var _ splitledger.Initializer = (*Initializer)(nil)

// FromGenesis stores the "split" section of the genesis file, if present.
// A genesis split must sum to 100.
//
//   "split": {"spending": 40, "savings": 30, "bills": 20, "insurance": 10}
func (*Initializer) FromGenesis(opts splitledger.Options, db splitledger.KVStore) error {
	err := gconf.InitConfig(db, opts, optKey, splitKey, &Config{})
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
