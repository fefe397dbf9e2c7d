package splittest

import "github.com/remitwise/splitledger"

// Handler returns the configured results and counts its calls.
type Handler struct {
	checkCall   int
	CheckResult splitledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult splitledger.DeliverResult
	DeliverErr    error
	// Panic if set makes Deliver panic with this value.
	Panic interface{}
}

var _ splitledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx) (*splitledger.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx) (*splitledger.DeliverResult, error) {
	h.deliverCall++
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
