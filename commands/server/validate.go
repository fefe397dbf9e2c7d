package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/store"
	tmtypes "github.com/tendermint/tendermint/types"
)

// ValidateGenesis checks every genesis file and returns the chain id of
// each, in order. Failures are reported as follows:
//
//   - ErrInput if the file is not a tendermint genesis document
//   - ErrState if it carries no app_state
//   - the initializer's error as is if app_state is rejected, so a bad split
//     stays a split error
//
// The initializer runs against a throwaway store.
func ValidateGenesis(ini splitledger.Initializer, genesisPaths []string) ([]string, error) {
	chains := make([]string, 0, len(genesisPaths))
	for _, path := range genesisPaths {
		chainID, err := validateGenesis(ini, path)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		chains = append(chains, chainID)
	}
	return chains, nil
}

func validateGenesis(ini splitledger.Initializer, genesisPath string) (string, error) {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}
	doc, err := tmtypes.GenesisDocFromJSON(b)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "genesis document: %s", err)
	}
	if len(doc.AppState) == 0 {
		return "", errors.Wrap(errors.ErrState, "app_state not set")
	}

	var opts splitledger.Options
	if err := json.Unmarshal(doc.AppState, &opts); err != nil {
		return "", errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := ini.FromGenesis(opts, store.MemStore()); err != nil {
		return "", errors.Wrap(err, "app_state")
	}
	return doc.ChainID, nil
}
