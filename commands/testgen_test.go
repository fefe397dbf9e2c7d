package commands

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
}

func (s sample) Marshal() ([]byte, error) {
	return append([]byte{0x0a, byte(len(s.Name))}, s.Name...), nil
}

func TestTestGenCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen")
	examples := []Example{
		{Filename: "sample", Obj: sample{Name: "abc"}},
	}
	require.NoError(t, TestGenCmd(examples, []string{out}))

	js, err := ioutil.ReadFile(filepath.Join(out, "sample.json"))
	require.NoError(t, err)
	var got sample
	require.NoError(t, json.Unmarshal(js, &got))
	assert.Equal(t, "abc", got.Name)

	bin, err := ioutil.ReadFile(filepath.Join(out, "sample.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x03, 'a', 'b', 'c'}, bin)
}
