package splitd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/x/split"
)

// Tx is the transaction accepted by splitd. Exactly one message field is
// set.
type Tx struct {
	InitializeSplitMsg *split.InitializeSplitMsg `protobuf:"bytes,1,opt,name=initialize_split_msg,json=initializeSplitMsg,proto3" json:"initialize_split_msg,omitempty"`
	XXX_unrecognized   []byte                    `json:"-"`
}

var _ splitledger.Tx = (*Tx)(nil)

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txWire)(tx))
}

// Unmarshal rejects any field other than the known messages.
func (tx *Tx) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*txWire)(tx)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(tx.XXX_unrecognized) != 0 {
		return errors.Wrapf(errors.ErrInput, "%d bytes of unknown tx fields", len(tx.XXX_unrecognized))
	}
	return nil
}

type txWire Tx

func (tx *txWire) Reset()         { *tx = txWire{} }
func (tx *txWire) String() string { return proto.CompactTextString(tx) }
func (*txWire) ProtoMessage()     {}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (splitledger.Msg, error) {
	if tx.InitializeSplitMsg != nil {
		return tx.InitializeSplitMsg, nil
	}
	return nil, errors.Wrap(errors.ErrMsg, "empty transaction")
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (splitledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}
