package splitd

import (
	"encoding/json"
	"strconv"

	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/commands/server"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/x/split"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// GenInitOptions produces the genesis app_state. With no arguments the
// default split is used, otherwise four percentages are expected:
//
//   spending savings bills insurance
func GenInitOptions(args []string) (json.RawMessage, error) {
	conf := split.DefaultConfig()
	if len(args) > 0 {
		c, err := ParsePercentages(args)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		conf = c
	}
	state := map[string]interface{}{
		"split": conf,
	}
	bz, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// ParsePercentages reads the four split percentages in bucket order. The
// sum is not checked.
func ParsePercentages(args []string) (split.Config, error) {
	if len(args) != 4 {
		return split.Config{}, errors.Wrapf(errors.ErrInput, "expected 4 percentages, got %d", len(args))
	}
	var vals [4]uint32
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return split.Config{}, errors.Wrapf(errors.ErrInput, "percentage %q: %s", a, err)
		}
		vals[i] = uint32(v)
	}
	return split.Config{
		Spending:  vals[0],
		Savings:   vals[1],
		Bills:     vals[2],
		Insurance: vals[3],
	}, nil
}

// GenerateApp returns the generator used by the start command. The store
// is opened as described by conf.
func GenerateApp(conf config.Config) server.AppGenerator {
	return func(home string, logger log.Logger, debug bool) (abci.Application, error) {
		kv, err := CommitKVStore(conf.Store.Backend, conf.DataDir(home))
		if err != nil {
			return nil, err
		}
		application, err := Application(Name, Stack(), TxDecoder, kv, debug)
		if err != nil {
			return nil, err
		}
		application.WithLogger(logger)
		return application, nil
	}
}

// InitializeSplitTx builds a transaction carrying an InitializeSplitMsg.
func InitializeSplitTx(conf split.Config) *Tx {
	msg := split.InitializeSplitMsg(conf)
	return &Tx{InitializeSplitMsg: &msg}
}
