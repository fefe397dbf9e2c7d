package server

import (
	"github.com/remitwise/splitledger/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// Serve generates the application and starts an ABCI socket server for it
// on addr. The caller must stop the returned service.
func Serve(gen AppGenerator, logger log.Logger, home, addr string, debug bool) (cmn.Service, error) {
	app, err := gen(home, logger, debug)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrap(err, "cannot start server")
	}
	return svr, nil
}

// StartCmd runs the ABCI server until the process receives a termination
// signal.
func StartCmd(gen AppGenerator, logger log.Logger, home, addr string, debug bool) error {
	svr, err := Serve(gen, logger, home, addr, debug)
	if err != nil {
		return err
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})

	// Wait forever
	select {}
}
