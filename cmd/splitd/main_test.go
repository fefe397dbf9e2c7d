package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/x/split"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs(append([]string{"--home", home}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0-dev\n", out)
}

func TestInitAndValidate(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "init", "40", "30", "20", "10")
	require.NoError(t, err)

	assert.FileExists(t, config.Path(home))
	bz, err := ioutil.ReadFile(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	var genesis struct {
		ChainID string `json:"chain_id"`
		State   struct {
			Split split.Config `json:"split"`
		} `json:"app_state"`
	}
	require.NoError(t, json.Unmarshal(bz, &genesis))
	assert.Equal(t, split.Config{Spending: 40, Savings: 30, Bills: 20, Insurance: 10}, genesis.State.Split)

	out, err := run(t, home, "validate")
	require.NoError(t, err)
	genesisPath := filepath.Join(home, "config", "genesis.json")
	assert.Equal(t, genesisPath+": chain "+genesis.ChainID+" ok\n", out)
	assert.Contains(t, genesis.ChainID, "split-chain-")
}

func TestValidateRejectsBadSplit(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "genesis.json")
	genesis := `{"chain_id": "split-chain-test", "app_state": {"split": {"spending": 60, "savings": 60}}}`
	require.NoError(t, ioutil.WriteFile(path, []byte(genesis), 0600))

	_, err := run(t, home, "validate", path)
	require.Error(t, err)
	assert.True(t, split.ErrInvalidSplit.Is(err), "unexpected error: %+v", err)
}

func TestInitRejectsBadSplit(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "init", "40", "30", "20", "20")
	assert.True(t, split.ErrInvalidSplit.Is(err), "unexpected error: %+v", err)

	_, err = run(t, home, "init", "40", "30")
	assert.Error(t, err)
}

func TestSplitCommands(t *testing.T) {
	home := t.TempDir()
	conf := config.DefaultConfig()
	conf.Store.Backend = config.BackendPebble
	require.NoError(t, config.Save(home, conf))

	out, err := run(t, home, "split", "get")
	require.NoError(t, err)
	assert.JSONEq(t, `{"spending": 50, "savings": 30, "bills": 15, "insurance": 5}`, out)

	out, err = run(t, home, "split", "init", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, home, "split", "init", "40", "30", "20", "10")
	require.NoError(t, err)
	assert.Equal(t, "true\nversion 1\n", out)

	out, err = run(t, home, "split", "get")
	require.NoError(t, err)
	assert.JSONEq(t, `{"spending": 40, "savings": 30, "bills": 20, "insurance": 10}`, out)

	out, err = run(t, home, "split", "calculate", "--", "-1001")
	require.NoError(t, err)
	assert.JSONEq(t, `{"spending": "-400", "savings": "-300", "bills": "-200", "insurance": "-101"}`, out)

	_, err = run(t, home, "split", "calculate", "170141183460469231731687303715884105728")
	assert.True(t, split.ErrInvalidAmount.Is(err), "unexpected error: %+v", err)
}

func TestTestGen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "testdata")
	_, err := run(t, t.TempDir(), "testgen", dir)
	require.NoError(t, err)

	for _, name := range []string{"split_config", "initialize_split_msg", "split_amounts", "tx_initialize_split"} {
		assert.FileExists(t, filepath.Join(dir, name+".json"))
		assert.FileExists(t, filepath.Join(dir, name+".bin"))
	}
}

func TestBadLogLevel(t *testing.T) {
	_, err := newLogger(ioutil.Discard, "loud")
	assert.Error(t, err)
}
