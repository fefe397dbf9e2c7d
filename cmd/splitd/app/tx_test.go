package splitd

import (
	"testing"

	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/x/split"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxDecoding(t *testing.T) {
	tx := InitializeSplitTx(split.Config{Spending: 70, Savings: 10, Bills: 10, Insurance: 10})
	bz, err := tx.Marshal()
	require.NoError(t, err)

	got, err := TxDecoder(bz)
	require.NoError(t, err)
	msg, err := got.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, tx.InitializeSplitMsg, msg)
	assert.Equal(t, "split/initialize", msg.Path())
}

func TestZeroSplitStillCarriesMessage(t *testing.T) {
	bz, err := InitializeSplitTx(split.Config{}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x00}, bz)

	got, err := TxDecoder(bz)
	require.NoError(t, err)
	msg, err := got.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, &split.InitializeSplitMsg{}, msg)
}

func TestTxDecoderErrors(t *testing.T) {
	cases := map[string]struct {
		raw     []byte
		wantErr *errors.Error
	}{
		"truncated": {
			raw:     []byte{0x0a, 0x05, 0x08},
			wantErr: errors.ErrInput,
		},
		"unknown field": {
			raw:     []byte{0x10, 0x01},
			wantErr: errors.ErrInput,
		},
		"wrong wire type": {
			raw:     []byte{0x08, 0x01},
			wantErr: errors.ErrInput,
		},
		"truncated message": {
			raw:     []byte{0x0a, 0x01, 0x08},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := TxDecoder(tc.raw)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestEmptyTxHasNoMsg(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))
}
