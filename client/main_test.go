package client

import (
	"fmt"
	"os"
	"testing"

	splitd "github.com/remitwise/splitledger/cmd/splitd/app"
	"github.com/remitwise/splitledger/cmd/splitd/config"
	abci "github.com/tendermint/tendermint/abci/types"
	nm "github.com/tendermint/tendermint/node"
)

// node is the in-process tendermint running the split ledger
var node *nm.Node

// genesisApp provides the app_state the test genesis file lacks
type genesisApp struct {
	abci.Application
	state []byte
}

func (g genesisApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	req.AppStateBytes = g.state
	return g.Application.InitChain(req)
}

func TestMain(m *testing.M) {
	kv, err := splitd.CommitKVStore(config.BackendMemory, "")
	if err != nil {
		fmt.Printf("Cannot create store: %s\n", err)
		os.Exit(1)
	}
	myApp, err := splitd.Application(splitd.Name, splitd.Stack(), splitd.TxDecoder, kv, false)
	if err != nil {
		fmt.Printf("Cannot create app: %s\n", err)
		os.Exit(1)
	}
	app := genesisApp{Application: myApp, state: []byte(`{}`)}

	code := TestWithTendermint(app, func(n *nm.Node) { node = n }, m)
	os.Exit(code)
}
