package splitd

import (
	"io"
	"math/big"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/x/split"
)

// Ledger runs split operations directly against the configured store,
// outside of consensus. Each accepted initialize commits a new version.
type Ledger struct {
	kv splitledger.CommitKVStore
}

// OpenLedger opens the store described by conf and loads its latest
// version.
func OpenLedger(conf config.Config, home string) (*Ledger, error) {
	kv, err := CommitKVStore(conf.Store.Backend, conf.DataDir(home))
	if err != nil {
		return nil, err
	}
	return NewLedger(kv)
}

// NewLedger wraps an already opened store.
func NewLedger(kv splitledger.CommitKVStore) (*Ledger, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &Ledger{kv: kv}, nil
}

// Initialize stores a new split. Nothing is written or committed when the
// percentages do not sum to 100.
func (l *Ledger) Initialize(conf split.Config) (bool, splitledger.CommitID, error) {
	db := l.kv.CacheWrap()
	ok, err := split.InitializeSplit(db, conf.Spending, conf.Savings, conf.Bills, conf.Insurance)
	if err != nil || !ok {
		db.Discard()
		return false, splitledger.CommitID{}, err
	}
	if err := db.Write(); err != nil {
		return false, splitledger.CommitID{}, err
	}
	id, err := l.kv.Commit()
	if err != nil {
		return false, splitledger.CommitID{}, errors.Wrap(err, "commit")
	}
	return true, id, nil
}

// Split returns the committed split percentages.
func (l *Ledger) Split() ([]uint32, error) {
	db := l.kv.CacheWrap()
	defer db.Discard()
	return split.GetSplit(db)
}

// Calculate divides total by the committed split.
func (l *Ledger) Calculate(total *big.Int) ([]*big.Int, error) {
	db := l.kv.CacheWrap()
	defer db.Discard()
	return split.CalculateSplit(db, total)
}

// Version returns the latest committed version.
func (l *Ledger) Version() (splitledger.CommitID, error) {
	return l.kv.LatestVersion()
}

// Close releases the store if it holds any resources.
func (l *Ledger) Close() error {
	if c, ok := l.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
