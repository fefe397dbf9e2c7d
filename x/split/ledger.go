package split

import (
	"math/big"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/gconf"
)

var splitKey = []byte("SPLIT")

var (
	hundred   = big.NewInt(100)
	maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minAmount = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// DefaultConfig is used until a split is initialized.
func DefaultConfig() Config {
	return Config{
		Spending:  50,
		Savings:   30,
		Bills:     15,
		Insurance: 5,
	}
}

// InitializeSplit stores the given split if the percentages add up to 100,
// replacing any previous one. It returns false, and writes nothing, for any
// other sum. An error is only returned when the store fails.
func InitializeSplit(db splitledger.KVStore, spending, savings, bills, insurance uint32) (bool, error) {
	conf := Config{
		Spending:  spending,
		Savings:   savings,
		Bills:     bills,
		Insurance: insurance,
	}
	if conf.total() != 100 {
		return false, nil
	}
	if err := gconf.Save(db, splitKey, &conf); err != nil {
		return false, errors.Wrap(err, "save split")
	}
	return true, nil
}

// LoadConfig returns the stored split, or the default one if none was
// initialized. The stored record is not validated again.
func LoadConfig(db splitledger.ReadOnlyKVStore) (*Config, error) {
	var conf Config
	switch err := gconf.Load(db, splitKey, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfig()
		return &conf, nil
	default:
		return nil, errors.Wrap(err, "load split")
	}
}

// GetSplit returns the current percentages in bucket order:
// spending, savings, bills, insurance.
func GetSplit(db splitledger.ReadOnlyKVStore) ([]uint32, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	return conf.Percentages(), nil
}

// CalculateSplit divides total according to the current split. The first
// three amounts are truncated toward zero and insurance receives the
// remainder, so the result always adds up to total.
//
// total must fit a signed 128 bit integer.
func CalculateSplit(db splitledger.ReadOnlyKVStore, total *big.Int) ([]*big.Int, error) {
	if err := checkAmount(total); err != nil {
		return nil, err
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	return applySplit(conf, total), nil
}

func applySplit(conf *Config, total *big.Int) []*big.Int {
	share := func(percent uint32) *big.Int {
		v := new(big.Int).Mul(total, new(big.Int).SetUint64(uint64(percent)))
		// Quo truncates toward zero
		return v.Quo(v, hundred)
	}
	spending := share(conf.Spending)
	savings := share(conf.Savings)
	bills := share(conf.Bills)

	insurance := new(big.Int).Set(total)
	insurance.Sub(insurance, spending)
	insurance.Sub(insurance, savings)
	insurance.Sub(insurance, bills)

	return []*big.Int{spending, savings, bills, insurance}
}

// ParseAmount reads a base 10 amount in the signed 128 bit range.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "not a decimal integer: %q", s)
	}
	if err := checkAmount(v); err != nil {
		return nil, err
	}
	return v, nil
}

func checkAmount(v *big.Int) error {
	if v == nil {
		return errors.Wrap(ErrInvalidAmount, "missing amount")
	}
	if v.Cmp(minAmount) < 0 || v.Cmp(maxAmount) > 0 {
		return errors.Wrapf(ErrInvalidAmount, "%s does not fit 128 bits", v)
	}
	return nil
}
