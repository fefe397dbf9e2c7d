package app

import (
	"testing"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsJoin(t *testing.T) {
	models := []splitledger.Model{
		splitledger.Pair([]byte("SPLIT"), []byte{0x08, 50}),
		splitledger.Pair([]byte("1000"), []byte{}),
	}

	kraw, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	vraw, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(kraw))
	require.NoError(t, values.Unmarshal(vraw))

	// an empty value still keeps its slot
	require.Len(t, values.Results, 2)

	got, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []byte("SPLIT"), got[0].Key)
	assert.Equal(t, []byte{0x08, 50}, got[0].Value)
	assert.Equal(t, []byte("1000"), got[1].Key)
	assert.Empty(t, got[1].Value)

	_, err = JoinResults(&keys, &ResultSet{})
	assert.True(t, errors.ErrState.Is(err))
}

func TestUnmarshalOneResultEmpty(t *testing.T) {
	raw, err := (&ResultSet{}).Marshal()
	require.NoError(t, err)
	// nothing to unmarshal, destination untouched
	var dst ResultSet
	assert.NoError(t, UnmarshalOneResult(raw, &dst))
	assert.Empty(t, dst.Results)
}
