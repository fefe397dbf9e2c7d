package splitledger_test

import (
	"testing"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/splittest"
	"github.com/remitwise/splitledger/splittest/assert"
)

type otherMsg struct {
	splittest.Msg
}

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      splitledger.Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"success": {
			tx:   &splittest.Tx{Msg: &splittest.Msg{RoutePath: "a/b", Serialized: []byte("x")}},
			dest: &splittest.Msg{},
		},
		"tx error": {
			tx:      &splittest.Tx{Err: errors.ErrInput},
			dest:    &splittest.Msg{},
			wantErr: errors.ErrInput,
		},
		"no message": {
			tx:      &splittest.Tx{},
			dest:    &splittest.Msg{},
			wantErr: errors.ErrMsg,
		},
		"destination not a pointer": {
			tx:      &splittest.Tx{Msg: &splittest.Msg{}},
			dest:    splittest.Msg{},
			wantErr: errors.ErrType,
		},
		"type mismatch": {
			tx:      &splittest.Tx{Msg: &splittest.Msg{}},
			dest:    &otherMsg{},
			wantErr: errors.ErrType,
		},
		"invalid message": {
			tx:      &splittest.Tx{Msg: &splittest.Msg{Err: errors.ErrEmpty}},
			dest:    &splittest.Msg{},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := splitledger.LoadMsg(tc.tx, tc.dest)
			if tc.wantErr == nil {
				assert.Nil(t, err)
				assert.Equal(t, tc.tx.(*splittest.Tx).Msg, tc.dest)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "a/b", splitledger.GetPath(&splittest.Tx{Msg: &splittest.Msg{RoutePath: "a/b"}}))
	assert.Equal(t, "(missing)", splitledger.GetPath(&splittest.Tx{}))
	assert.Equal(t, "(missing)", splitledger.GetPath(&splittest.Tx{Err: errors.ErrMsg}))
}
