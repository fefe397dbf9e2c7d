package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const flagHome = "home"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "splitd",
		Short:        "Remittance split ledger",
		Long:         "Stores how incoming remittances are divided into spending, savings, bills and insurance, and runs the ABCI node serving it.",
		SilenceUsage: true,
	}

	homeDir, _ := os.UserHomeDir()
	defaultHome := filepath.Join(homeDir, ".splitd")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")

	root.AddCommand(
		newInitCmd(),
		newStartCmd(),
		newSplitCmd(),
		newValidateCmd(),
		newTestGenCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads splitd.toml from the --home directory.
func loadConfig(cmd *cobra.Command) (string, config.Config, error) {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil {
		return "", config.Config{}, err
	}
	conf, err := config.Load(home)
	return home, conf, err
}

// newLogger builds the tendermint logger filtered to the configured level.
func newLogger(out io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(out)).With("module", "splitd")
	if level == "none" {
		return log.NewFilter(logger, log.AllowNone()), nil
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
