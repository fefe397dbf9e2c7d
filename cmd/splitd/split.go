package main

import (
	"encoding/json"
	"fmt"

	splitd "github.com/remitwise/splitledger/cmd/splitd/app"
	"github.com/remitwise/splitledger/x/split"
	"github.com/spf13/cobra"
)

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Read and change the split directly in the local store",
		Long:  "Operates on the configured store without a running node. The store must not be in use by `splitd start`.",
	}
	cmd.AddCommand(
		newSplitInitCmd(),
		newSplitGetCmd(),
		newSplitCalculateCmd(),
	)
	return cmd
}

// withLedger opens the configured ledger for the duration of fn.
func withLedger(cmd *cobra.Command, fn func(*splitd.Ledger) error) error {
	home, conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, err := splitd.OpenLedger(conf, home)
	if err != nil {
		return err
	}
	defer l.Close()
	return fn(l)
}

func newSplitInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <spending> <savings> <bills> <insurance>",
		Short: "Store a new split, prints false if it does not sum to 100",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := splitd.ParsePercentages(args)
			if err != nil {
				return err
			}
			return withLedger(cmd, func(l *splitd.Ledger) error {
				ok, id, err := l.Initialize(conf)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintf(cmd.OutOrStdout(), "true\nversion %d\n", id.Version)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "false")
				}
				return nil
			})
		},
	}
}

func newSplitGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current split percentages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, func(l *splitd.Ledger) error {
				p, err := l.Split()
				if err != nil {
					return err
				}
				conf := split.Config{Spending: p[0], Savings: p[1], Bills: p[2], Insurance: p[3]}
				return printJSON(cmd, conf)
			})
		},
	}
}

func newSplitCalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculate <amount>",
		Short: "Divide an amount by the current split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := split.ParseAmount(args[0])
			if err != nil {
				return err
			}
			return withLedger(cmd, func(l *splitd.Ledger) error {
				amounts, err := l.Calculate(total)
				if err != nil {
					return err
				}
				res, err := split.NewSplitAmounts(amounts)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return nil
}
