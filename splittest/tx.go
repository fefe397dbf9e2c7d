package splittest

import "github.com/remitwise/splitledger"

// Tx carries a single message. Marshal and Unmarshal are not supported, use
// the application transaction for anything that goes over the wire.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg splitledger.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ splitledger.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (splitledger.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a message with a configurable route.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ splitledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}
