package splittest

import "github.com/remitwise/splitledger"

// Decorator records the message route of every transaction that reaches it,
// separately for check and deliver. Transactions without a readable message
// are recorded with an empty route.
//
// Set CheckErr or DeliverErr to stop the chain at this decorator.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checked   []string
	delivered []string
}

var _ splitledger.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx, next splitledger.Checker) (*splitledger.CheckResult, error) {
	d.checked = append(d.checked, route(tx))
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx splitledger.Context, db splitledger.KVStore, tx splitledger.Tx, next splitledger.Deliverer) (*splitledger.DeliverResult, error) {
	d.delivered = append(d.delivered, route(tx))
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Checked returns the routes seen by Check, in call order.
func (d *Decorator) Checked() []string {
	return d.checked
}

// Delivered returns the routes seen by Deliver, in call order.
func (d *Decorator) Delivered() []string {
	return d.delivered
}

func (d *Decorator) CheckCallCount() int {
	return len(d.checked)
}

func (d *Decorator) DeliverCallCount() int {
	return len(d.delivered)
}

func (d *Decorator) CallCount() int {
	return len(d.checked) + len(d.delivered)
}

func route(tx splitledger.Tx) string {
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
