package splitd

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/remitwise/splitledger/cmd/splitd/config"
	"github.com/remitwise/splitledger/x/split"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLedger(t *testing.T) {
	backends := []string{config.BackendMemory, config.BackendIavl, config.BackendPebble}
	for _, backend := range backends {
		backend := backend
		Convey("Given a fresh "+backend+" ledger", t, func() {
			conf := config.DefaultConfig()
			conf.Store.Backend = backend
			home := t.TempDir()

			l, err := OpenLedger(conf, home)
			So(err, ShouldBeNil)
			Reset(func() { l.Close() })

			Convey("The default split is used", func() {
				got, err := l.Split()
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []uint32{50, 30, 15, 5})

				id, err := l.Version()
				So(err, ShouldBeNil)
				So(id.Version, ShouldEqual, int64(0))
			})

			Convey("A split not summing to 100 is rejected without a commit", func() {
				ok, _, err := l.Initialize(split.Config{Spending: 50, Savings: 50, Bills: 1})
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)

				id, err := l.Version()
				So(err, ShouldBeNil)
				So(id.Version, ShouldEqual, int64(0))
			})

			Convey("An accepted split is committed and used", func() {
				ok, id, err := l.Initialize(split.Config{Spending: 70, Savings: 10, Bills: 10, Insurance: 10})
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(id.Version, ShouldEqual, int64(1))

				amounts, err := l.Calculate(big.NewInt(999))
				So(err, ShouldBeNil)
				So(decimals(amounts), ShouldResemble, []string{"699", "99", "99", "102"})

				if backend != config.BackendMemory {
					Convey("It survives a reopen", func() {
						So(l.Close(), ShouldBeNil)
						l, err = OpenLedger(conf, home)
						So(err, ShouldBeNil)

						got, err := l.Split()
						So(err, ShouldBeNil)
						So(got, ShouldResemble, []uint32{70, 10, 10, 10})
					})
				}
			})
		})
	}
}

func TestOpenLedgerResolvesDataDir(t *testing.T) {
	Convey("A relative data dir lives under home", t, func() {
		conf := config.DefaultConfig()
		conf.Store.Backend = config.BackendPebble
		home := t.TempDir()
		So(conf.DataDir(home), ShouldEqual, filepath.Join(home, "data"))

		l, err := OpenLedger(conf, home)
		So(err, ShouldBeNil)
		So(l.Close(), ShouldBeNil)
	})
}

func decimals(vals []*big.Int) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}
