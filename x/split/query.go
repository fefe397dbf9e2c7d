package split

import (
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

const (
	// QueryPath returns the current split configuration.
	QueryPath = "/split"
	// CalculateQueryPath splits the decimal amount given as query data.
	CalculateQueryPath = "/split/calculate"
)

// RegisterQuery registers split query handlers.
func RegisterQuery(qr splitledger.QueryRouter) {
	qr.Register(QueryPath, configQuery{})
	qr.Register(CalculateQueryPath, calculateQuery{})
}

type configQuery struct{}

var _ splitledger.QueryHandler = configQuery{}

// Query returns the stored split, or the default one, under the SPLIT key.
// Query data is ignored.
func (configQuery) Query(db splitledger.ReadOnlyKVStore, mod string, data []byte) ([]splitledger.Model, error) {
	if mod != splitledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	raw, err := conf.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal split")
	}
	return []splitledger.Model{splitledger.Pair(splitKey, raw)}, nil
}

type calculateQuery struct{}

var _ splitledger.QueryHandler = calculateQuery{}

// Query expects data to be a base 10 amount. The result key is the amount,
// the value is the SplitAmounts message.
func (calculateQuery) Query(db splitledger.ReadOnlyKVStore, mod string, data []byte) ([]splitledger.Model, error) {
	if mod != splitledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	total, err := ParseAmount(string(data))
	if err != nil {
		return nil, err
	}
	amounts, err := CalculateSplit(db, total)
	if err != nil {
		return nil, err
	}
	res, err := NewSplitAmounts(amounts)
	if err != nil {
		return nil, err
	}
	raw, err := res.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal amounts")
	}
	return []splitledger.Model{splitledger.Pair(data, raw)}, nil
}
