package app

import (
	"context"
	"testing"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/splittest"
	"github.com/remitwise/splitledger/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// keyQuery returns the raw value stored under the query data
type keyQuery struct{}

func (keyQuery) Query(db splitledger.ReadOnlyKVStore, mod string, data []byte) ([]splitledger.Model, error) {
	v, err := db.Get(data)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return []splitledger.Model{splitledger.Pair(data, v)}, nil
}

// writeTxHandler stores the message bytes under the "tx" key
type writeTxHandler struct{}

func (writeTxHandler) Check(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx) (*splitledger.CheckResult, error) {
	return &splitledger.CheckResult{}, nil
}

func (writeTxHandler) Deliver(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx) (*splitledger.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, _ := msg.Marshal()
	if err := db.Set([]byte("tx"), raw); err != nil {
		return nil, err
	}
	return &splitledger.DeliverResult{Data: []byte{1}}, nil
}

func testDecoder(raw []byte) (splitledger.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.ErrInput.New("empty tx")
	}
	if raw[0] == 0xff {
		panic("cannot decode")
	}
	return &splittest.Tx{Msg: &splittest.Msg{RoutePath: "test/write", Serialized: raw}}, nil
}

func newTestApp(t *testing.T, kv splitledger.CommitKVStore) BaseApp {
	t.Helper()
	qr := splitledger.NewQueryRouter()
	qr.Register("/", keyQuery{})

	r := NewRouter()
	r.Handle(&splittest.Msg{RoutePath: "test/write"}, writeTxHandler{})

	s, err := NewStoreApp("test", kv, qr, context.Background())
	require.NoError(t, err)
	s.WithInit(ChainInitializers())
	return NewBaseApp(s, testDecoder, r, false)
}

func TestStoreAppLifecycle(t *testing.T) {
	db := dbm.NewMemDB()
	myApp := newTestApp(t, iavl.NewCommitStoreFromDB(db))

	myApp.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{}`)})
	assert.Equal(t, "test-chain-1", myApp.GetChainID())

	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	chk := myApp.CheckTx([]byte("hello"))
	require.Equal(t, uint32(0), chk.Code, chk.Log)

	dres := myApp.DeliverTx([]byte("hello"))
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, []byte{1}, dres.Data)

	// nothing is visible before commit
	qres := myApp.Query(abci.RequestQuery{Path: "/", Data: []byte("tx")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(qres.Value))
	assert.Empty(t, values.Results)

	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.NotEmpty(t, cres.Data)

	qres = myApp.Query(abci.RequestQuery{Path: "/", Data: []byte("tx")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	assert.Equal(t, int64(1), qres.Height)
	var got splittest.Msg
	require.NoError(t, UnmarshalOneResult(qres.Value, &got))
	assert.Equal(t, []byte("hello"), got.Serialized)

	info := myApp.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)
	assert.Equal(t, "test", info.Data)

	// chain id survives a restart
	restarted := newTestApp(t, iavl.NewCommitStoreFromDB(db))
	assert.Equal(t, "test-chain-1", restarted.GetChainID())
	assert.Panics(t, func() {
		restarted.InitChain(abci.RequestInitChain{ChainId: "test-chain-2", AppStateBytes: []byte(`{}`)})
	})
}

func TestBaseAppErrors(t *testing.T) {
	myApp := newTestApp(t, iavl.NewCommitStoreFromDB(dbm.NewMemDB()))

	// decoding errors and panics are reported, not raised
	res := myApp.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
	res = myApp.DeliverTx([]byte{0xff})
	assert.Equal(t, errors.ErrPanic.ABCICode(), res.Code)

	qres := myApp.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)

	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "test-chain-1"})
	})
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "bad", AppStateBytes: []byte(`{}`)})
	})
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/split?prefix")
	assert.Equal(t, "/split", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/split/calculate")
	assert.Equal(t, "/split/calculate", path)
	assert.Equal(t, "", mod)
}
