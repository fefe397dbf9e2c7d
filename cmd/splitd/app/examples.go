package splitd

import (
	"github.com/remitwise/splitledger/commands"
	"github.com/remitwise/splitledger/x/split"
)

// Examples returns fixed samples of every message and query result, for
// clients to check their encoding against.
func Examples() []commands.Example {
	conf := split.DefaultConfig()
	msg := split.InitializeSplitMsg{
		Spending:  40,
		Savings:   30,
		Bills:     20,
		Insurance: 10,
	}
	amounts := split.SplitAmounts{
		Spending:  "500",
		Savings:   "300",
		Bills:     "150",
		Insurance: "50",
	}
	return []commands.Example{
		{Filename: "split_config", Obj: &conf},
		{Filename: "initialize_split_msg", Obj: &msg},
		{Filename: "split_amounts", Obj: &amounts},
		{Filename: "tx_initialize_split", Obj: &Tx{InitializeSplitMsg: &msg}},
	}
}
