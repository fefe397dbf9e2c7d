package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/remitwise/splitledger/errors"
	cfg "github.com/tendermint/tendermint/config"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/privval"
	tmtypes "github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

const appStateKey = "app_state"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will initialize all files for tendermint,
// along with proper app_state.
// The application can pass in a function to generate
// proper options.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	config := cfg.DefaultConfig().SetRoot(home)
	if err := initTendermintFiles(config, logger); err != nil {
		return err
	}

	// no app_state, leave like tendermint
	if gen == nil {
		return nil
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	genFile := config.GenesisFile()
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

// initTendermintFiles creates the private validator and a single
// validator genesis file unless they already exist, the same way
// `tendermint init` does.
func initTendermintFiles(config *cfg.Config, logger log.Logger) error {
	cfg.EnsureRoot(config.RootDir)

	keyFile := config.PrivValidatorKeyFile()
	stateFile := config.PrivValidatorStateFile()
	var pv *privval.FilePV
	if fileExists(keyFile) {
		pv = privval.LoadFilePV(keyFile, stateFile)
		logger.Info("Found private validator", "keyFile", keyFile, "stateFile", stateFile)
	} else {
		pv = privval.GenFilePV(keyFile, stateFile)
		pv.Save()
		logger.Info("Generated private validator", "keyFile", keyFile, "stateFile", stateFile)
	}

	genFile := config.GenesisFile()
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return nil
	}
	pubKey := pv.GetPubKey()
	genDoc := tmtypes.GenesisDoc{
		ChainID:         fmt.Sprintf("split-chain-%v", cmn.RandStr(6)),
		GenesisTime:     tmtime.Now(),
		ConsensusParams: tmtypes.DefaultConsensusParams(),
		Validators: []tmtypes.GenesisValidator{{
			Address: pubKey.Address(),
			PubKey:  pubKey,
			Power:   10,
		}},
	}
	if err := genDoc.SaveAs(genFile); err != nil {
		return errors.Wrap(err, "cannot save genesis")
	}
	logger.Info("Generated genesis file", "path", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	return ioutil.WriteFile(filename, out, 0600)
}
