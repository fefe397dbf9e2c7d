/*
Package splitd links together all the various components
to construct the splitd app.
*/
package splitd

import (
	"context"
	"path/filepath"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/app"
	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/store/iavl"
	"github.com/remitwise/splitledger/store/pebbledb"
	"github.com/remitwise/splitledger/x/split"
	"github.com/remitwise/splitledger/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Name is reported by the ABCI Info call.
const Name = "splitd"

// Chain returns a chain of decorators, to handle logging,
// recovery and state rollback of failed transactions.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching all split messages.
func Router() *app.Router {
	r := app.NewRouter()
	split.RegisterRoutes(r)
	return r
}

// QueryRouter returns a query router allowing access to "/split" and
// "/split/calculate".
func QueryRouter() splitledger.QueryRouter {
	r := splitledger.NewQueryRouter()
	r.RegisterAll(split.RegisterQuery)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() splitledger.Handler {
	return Chain().WithHandler(Router())
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h splitledger.Handler, tx splitledger.TxDecoder,
	kv splitledger.CommitKVStore, debug bool) (app.BaseApp, error) {
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(app.ChainInitializers(&split.Initializer{}))
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore opens the store configured by backend under dir. The
// memory backend keeps nothing between runs.
func CommitKVStore(backend, dir string) (splitledger.CommitKVStore, error) {
	switch backend {
	case config.BackendMemory:
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	case config.BackendIavl:
		path, err := filepath.Abs(dir)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "invalid database dir: %s", dir)
		}
		kv, err := iavl.NewCommitStore(path, "split")
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.BackendPebble:
		kv, err := pebbledb.NewCommitStore(dir)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown store backend %q", backend)
	}
}
