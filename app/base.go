package app

import (
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder splitledger.TxDecoder
	handler splitledger.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder splitledger.TxDecoder,
	handler splitledger.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return splitledger.DeliverTxError(err, b.debug)
	}

	ctx := splitledger.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", splitledger.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return splitledger.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return splitledger.CheckTxError(err, b.debug)
	}

	ctx := splitledger.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", splitledger.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return splitledger.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx splitledger.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
