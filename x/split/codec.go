package split

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

// Config is the stored split configuration.
type Config struct {
	Spending  uint32 `protobuf:"varint,1,opt,name=spending,proto3" json:"spending"`
	Savings   uint32 `protobuf:"varint,2,opt,name=savings,proto3" json:"savings"`
	Bills     uint32 `protobuf:"varint,3,opt,name=bills,proto3" json:"bills"`
	Insurance uint32 `protobuf:"varint,4,opt,name=insurance,proto3" json:"insurance"`
}

var _ proto.Message = (*Config)(nil)

func (m *Config) Reset()         { *m = Config{} }
func (m *Config) String() string { return proto.CompactTextString(m) }
func (*Config) ProtoMessage()    {}

// Marshal encodes the configuration in protobuf wire format.
func (m *Config) Marshal() ([]byte, error) {
	return proto.Marshal((*configWire)(m))
}

// Unmarshal decodes a configuration. Malformed input is reported as
// ErrInvalidSplit.
func (m *Config) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*configWire)(m)); err != nil {
		return errors.Wrap(ErrInvalidSplit, err.Error())
	}
	return nil
}

// configWire is Config without its codec methods, so proto encodes it
// from the struct tags.
type configWire Config

func (m *configWire) Reset()         { *m = configWire{} }
func (m *configWire) String() string { return proto.CompactTextString(m) }
func (*configWire) ProtoMessage()    {}

// Validate ensures the percentages add up to exactly 100.
func (m *Config) Validate() error {
	if total := m.total(); total != 100 {
		return errors.Wrapf(ErrInvalidSplit, "percentages must sum to 100, got %d", total)
	}
	return nil
}

// total can never overflow, every percentage is at most 2^32-1
func (m *Config) total() uint64 {
	return uint64(m.Spending) + uint64(m.Savings) + uint64(m.Bills) + uint64(m.Insurance)
}

// Percentages returns the split in bucket order:
// spending, savings, bills, insurance.
func (m *Config) Percentages() []uint32 {
	return []uint32{m.Spending, m.Savings, m.Bills, m.Insurance}
}

// InitializeSplitMsg requests a new split configuration.
type InitializeSplitMsg struct {
	Spending  uint32 `protobuf:"varint,1,opt,name=spending,proto3" json:"spending"`
	Savings   uint32 `protobuf:"varint,2,opt,name=savings,proto3" json:"savings"`
	Bills     uint32 `protobuf:"varint,3,opt,name=bills,proto3" json:"bills"`
	Insurance uint32 `protobuf:"varint,4,opt,name=insurance,proto3" json:"insurance"`
}

var _ splitledger.Msg = (*InitializeSplitMsg)(nil)

func (m *InitializeSplitMsg) Reset()         { *m = InitializeSplitMsg{} }
func (m *InitializeSplitMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeSplitMsg) ProtoMessage()    {}

func (m *InitializeSplitMsg) Marshal() ([]byte, error) {
	c := m.config()
	return c.Marshal()
}

func (m *InitializeSplitMsg) Unmarshal(raw []byte) error {
	var c Config
	if err := c.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	*m = InitializeSplitMsg(c)
	return nil
}

func (m *InitializeSplitMsg) config() Config {
	return Config(*m)
}

// SplitAmounts is the result of a split calculation. Amounts are decimal
// strings as they may exceed 64 bits.
type SplitAmounts struct {
	Spending  string `protobuf:"bytes,1,opt,name=spending,proto3" json:"spending"`
	Savings   string `protobuf:"bytes,2,opt,name=savings,proto3" json:"savings"`
	Bills     string `protobuf:"bytes,3,opt,name=bills,proto3" json:"bills"`
	Insurance string `protobuf:"bytes,4,opt,name=insurance,proto3" json:"insurance"`
}

func (m *SplitAmounts) Reset()         { *m = SplitAmounts{} }
func (m *SplitAmounts) String() string { return proto.CompactTextString(m) }
func (*SplitAmounts) ProtoMessage()    {}

// NewSplitAmounts converts calculated amounts in bucket order.
func NewSplitAmounts(amounts []*big.Int) (*SplitAmounts, error) {
	if len(amounts) != 4 {
		return nil, errors.Wrapf(errors.ErrInput, "want 4 amounts, got %d", len(amounts))
	}
	return &SplitAmounts{
		Spending:  amounts[0].String(),
		Savings:   amounts[1].String(),
		Bills:     amounts[2].String(),
		Insurance: amounts[3].String(),
	}, nil
}

// Amounts parses the decimal amounts back in bucket order.
func (m *SplitAmounts) Amounts() ([]*big.Int, error) {
	res := make([]*big.Int, 0, 4)
	for _, s := range []string{m.Spending, m.Savings, m.Bills, m.Insurance} {
		if s == "" {
			s = "0"
		}
		v, err := ParseAmount(s)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (m *SplitAmounts) Marshal() ([]byte, error) {
	return proto.Marshal((*splitAmountsWire)(m))
}

func (m *SplitAmounts) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*splitAmountsWire)(m))
}

type splitAmountsWire SplitAmounts

func (m *splitAmountsWire) Reset()         { *m = splitAmountsWire{} }
func (m *splitAmountsWire) String() string { return proto.CompactTextString(m) }
func (*splitAmountsWire) ProtoMessage()    {}
