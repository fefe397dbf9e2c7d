package split

import (
	"fmt"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

const initializeSplitCost = 0

var (
	// ResultAccepted is the DeliverTx data of a stored split.
	ResultAccepted = []byte{1}
	// ResultRejected is the DeliverTx data of a split that does not sum
	// to 100.
	ResultRejected = []byte{0}
)

// RegisterRoutes registers handlers for split message processing.
func RegisterRoutes(r splitledger.Registry) {
	r.Handle(&InitializeSplitMsg{}, &initializeHandler{})
}

type initializeHandler struct{}

var _ splitledger.Handler = (*initializeHandler)(nil)

func (h *initializeHandler) Check(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx) (*splitledger.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &splitledger.CheckResult{GasAllocated: initializeSplitCost}, nil
}

// Deliver stores the split. A sum other than 100 is still a successful
// transaction, its result data is ResultRejected.
func (h *initializeHandler) Deliver(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx) (*splitledger.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	ok, err := InitializeSplit(db, msg.Spending, msg.Savings, msg.Bills, msg.Insurance)
	if err != nil {
		return nil, err
	}

	conf := msg.config()
	if !ok {
		splitledger.GetLogger(ctx).Debug("split rejected", "total", conf.total())
		return &splitledger.DeliverResult{
			Data: ResultRejected,
			Log:  fmt.Sprintf("percentages must sum to 100, got %d", conf.total()),
		}, nil
	}
	splitledger.GetLogger(ctx).Info("split initialized", "split", conf.Percentages())
	return &splitledger.DeliverResult{
		Data: ResultAccepted,
		Log:  "split initialized",
	}, nil
}

func (h *initializeHandler) validate(tx splitledger.Tx) (*InitializeSplitMsg, error) {
	var msg InitializeSplitMsg
	if err := splitledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}
