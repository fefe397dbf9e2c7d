package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      splitledger.Marshaller
}

// TestGenCmd generates sample protobuf and json encodings
// of various objects for clients to test against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "cannot create output dir")
	}

	for _, ex := range examples {
		js, err := json.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		if err := writeExample(outdir, ex.Filename+".json", js); err != nil {
			return err
		}

		pb, err := ex.Obj.Marshal()
		if err != nil {
			return errors.Wrapf(err, "marshal %s", ex.Filename)
		}
		if err := writeExample(outdir, ex.Filename+".bin", pb); err != nil {
			return err
		}
	}
	return nil
}

func writeExample(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
