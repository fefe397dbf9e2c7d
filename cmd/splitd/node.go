package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/app"
	splitd "github.com/remitwise/splitledger/cmd/splitd/app"
	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/commands"
	"github.com/remitwise/splitledger/commands/server"
	"github.com/remitwise/splitledger/x/split"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [spending savings bills insurance]",
		Short: "Write the node config and the genesis app_state",
		Long:  "Creates splitd.toml if missing, the tendermint validator and genesis files if missing, and sets the genesis split (50 30 15 5 by default).",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return fmt.Errorf("expected 0 or 4 percentages, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			home, conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(config.Path(home)); os.IsNotExist(err) {
				if err := config.Save(home, conf); err != nil {
					return err
				}
			}
			logger, err := newLogger(cmd.ErrOrStderr(), conf.Log.Level)
			if err != nil {
				return err
			}
			return server.InitCmd(splitd.GenInitOptions, logger, home, args)
		},
	}
}

func newStartCmd() *cobra.Command {
	var (
		bind  string
		debug bool
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the ABCI server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bind") {
				conf.Server.Bind = bind
			}
			if cmd.Flags().Changed("debug") {
				conf.Server.Debug = debug
			}
			logger, err := newLogger(cmd.OutOrStdout(), conf.Log.Level)
			if err != nil {
				return err
			}
			return server.StartCmd(splitd.GenerateApp(conf), logger, home, conf.Server.Bind, conf.Server.Debug)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "address server listens on (overrides config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "call stack returned on error (overrides config)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis.json...]",
		Short: "Check that genesis files load",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{filepath.Join(home, "config", "genesis.json")}
			}
			ini := app.ChainInitializers(&split.Initializer{})
			chains, err := server.ValidateGenesis(ini, args)
			if err != nil {
				return err
			}
			for i, chainID := range chains {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: chain %s ok\n", args[i], chainID)
			}
			return nil
		},
	}
}

func newTestGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "testgen [dir]",
		Short: "Write sample json and protobuf encodings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.TestGenCmd(splitd.Examples(), args)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), splitledger.Version())
		},
	}
}
