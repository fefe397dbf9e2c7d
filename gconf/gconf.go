package gconf

import (
	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

// ReadStore is a subset of splitledger.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of splitledger.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Save will Validate the object, before writing it under the given
// singleton key. Any previous value is overwritten.
func Save(db Store, key []byte, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// ValidMarshaler is implemented by object that can serialize itself to a binary
// representation. Marshal is implemented by all protobuf messages.
// You must add your own Validate method
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Load reads the singleton stored under key into dst. Returns
// errors.ErrNotFound when nothing was saved yet. The loaded value is not
// validated.
func Load(db ReadStore, key []byte, dst Unmarshaler) error {
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// Unmarshaler is implemented by object that can load their state from given
// binary representation. This interface is implemented by all protobuf
// messages.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// InitConfig will take opts[name], parse it into the given Configuration
// object, validate it, and store it under key.
// Returns errors.ErrNotFound if the genesis has no such section.
func InitConfig(db Store, opts splitledger.Options, name string, key []byte, conf Configuration) error {
	if opts[name] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q", name)
	}
	if err := opts.ReadOptions(name, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", name)
	}
	if err := Save(db, key, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", name)
	}
	return nil
}
