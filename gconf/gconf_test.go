package gconf

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/splittest/assert"
	"github.com/remitwise/splitledger/store"
)

// counter is a minimal Configuration, stored as a decimal string
type counter struct {
	Value int `json:"value"`
}

func (c *counter) Validate() error {
	if c.Value < 0 {
		return errors.Wrap(errors.ErrInput, "negative")
	}
	return nil
}

func (c *counter) Marshal() ([]byte, error) {
	return []byte(strconv.Itoa(c.Value)), nil
}

func (c *counter) Unmarshal(raw []byte) error {
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c.Value = n
	return nil
}

func TestSaveLoad(t *testing.T) {
	key := []byte("COUNTER")

	cases := map[string]struct {
		Conf        *counter
		Want        int
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"valid value": {
			Conf: &counter{Value: 42},
			Want: 42,
		},
		"zero value": {
			Conf: &counter{Value: 0},
			Want: 0,
		},
		"invalid value cannot be saved": {
			Conf:        &counter{Value: -1},
			WantSaveErr: errors.ErrInput,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, key, tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			var got counter
			if err := Load(db, key, &got); !tc.WantLoadErr.Is(err) {
				t.Fatalf("unexpected load error: %s", err)
			}
			if tc.WantLoadErr == nil {
				assert.Equal(t, tc.Want, got.Value)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	db := store.MemStore()
	key := []byte("COUNTER")
	assert.Nil(t, Save(db, key, &counter{Value: 1}))
	assert.Nil(t, Save(db, key, &counter{Value: 2}))

	var got counter
	assert.Nil(t, Load(db, key, &got))
	assert.Equal(t, 2, got.Value)
}

func TestInitConfig(t *testing.T) {
	key := []byte("COUNTER")

	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    int
	}{
		"present": {
			Genesis: `{"counter": {"value": 7}}`,
			Want:    7,
		},
		"missing section": {
			Genesis: `{"other": {}}`,
			WantErr: errors.ErrNotFound,
		},
		"malformed section": {
			Genesis: `{"counter": {"value": "seven"}}`,
			WantErr: errors.ErrInput,
		},
		"invalid section": {
			Genesis: `{"counter": {"value": -3}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts splitledger.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			err := InitConfig(db, opts, "counter", key, &counter{})
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got counter
			assert.Nil(t, Load(db, key, &got))
			assert.Equal(t, tc.Want, got.Value)
		})
	}
}
