package split

import (
	"math/big"
	"testing"

	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/splittest/assert"
	"github.com/remitwise/splitledger/store"
	. "github.com/smartystreets/goconvey/convey"
)

// amounts returns the decimal form of the values. big.Int values are
// compared as strings, their internal representation of zero varies.
func amounts(values ...int64) []string {
	res := make([]string, len(values))
	for i, v := range values {
		res[i] = big.NewInt(v).String()
	}
	return res
}

func decimals(values []*big.Int) []string {
	res := make([]string, len(values))
	for i, v := range values {
		res[i] = v.String()
	}
	return res
}

func sum(values []*big.Int) *big.Int {
	total := new(big.Int)
	for _, v := range values {
		total.Add(total, v)
	}
	return total
}

func TestLedgerScenarios(t *testing.T) {
	Convey("Given an empty store", t, func() {
		db := store.MemStore()

		Convey("The default split applies", func() {
			got, err := GetSplit(db)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []uint32{50, 30, 15, 5})

			res, err := CalculateSplit(db, big.NewInt(1000))
			So(err, ShouldBeNil)
			So(decimals(res), ShouldResemble, amounts(500, 300, 150, 50))
		})

		Convey("A split summing to 100 is stored", func() {
			ok, err := InitializeSplit(db, 40, 30, 20, 10)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			got, err := GetSplit(db)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []uint32{40, 30, 20, 10})

			res, err := CalculateSplit(db, big.NewInt(1000))
			So(err, ShouldBeNil)
			So(decimals(res), ShouldResemble, amounts(400, 300, 200, 100))

			Convey("And a later invalid split leaves it untouched", func() {
				ok, err := InitializeSplit(db, 60, 30, 20, 10)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)

				got, err := GetSplit(db)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []uint32{40, 30, 20, 10})
			})

			Convey("And a later valid split replaces it", func() {
				ok, err := InitializeSplit(db, 25, 25, 25, 25)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)

				got, err := GetSplit(db)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []uint32{25, 25, 25, 25})
			})
		})

		Convey("An invalid split is rejected without writing", func() {
			ok, err := InitializeSplit(db, 50, 30, 15, 10)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			raw, err := db.Get(splitKey)
			So(err, ShouldBeNil)
			So(raw, ShouldBeNil)

			got, err := GetSplit(db)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []uint32{50, 30, 15, 5})
		})

		Convey("The remainder goes to insurance", func() {
			ok, err := InitializeSplit(db, 33, 33, 33, 1)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			res, err := CalculateSplit(db, big.NewInt(10))
			So(err, ShouldBeNil)
			So(decimals(res), ShouldResemble, amounts(3, 3, 3, 1))
		})
	})
}

func TestInitializeSplitSums(t *testing.T) {
	cases := map[string]struct {
		split  [4]uint32
		wantOk bool
	}{
		"exactly 100":           {split: [4]uint32{50, 30, 15, 5}, wantOk: true},
		"all in one bucket":     {split: [4]uint32{0, 0, 0, 100}, wantOk: true},
		"all zero":              {split: [4]uint32{0, 0, 0, 0}, wantOk: false},
		"above 100":             {split: [4]uint32{50, 30, 15, 6}, wantOk: false},
		"below 100":             {split: [4]uint32{50, 30, 15, 4}, wantOk: false},
		"single value over 100": {split: [4]uint32{101, 0, 0, 0}, wantOk: false},
		// with 32 bit arithmetic this would wrap around to 100
		"wrapping sum": {split: [4]uint32{1<<32 - 1, 101, 0, 0}, wantOk: false},
		"all max":      {split: [4]uint32{1<<32 - 1, 1<<32 - 1, 1<<32 - 1, 1<<32 - 1}, wantOk: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ok, err := InitializeSplit(db, tc.split[0], tc.split[1], tc.split[2], tc.split[3])
			assert.Nil(t, err)
			assert.Equal(t, tc.wantOk, ok)

			got, err := GetSplit(db)
			assert.Nil(t, err)
			if tc.wantOk {
				assert.Equal(t, tc.split[:], got)
			} else {
				assert.Equal(t, []uint32{50, 30, 15, 5}, got)
			}
		})
	}
}

func TestCalculateSplit(t *testing.T) {
	maxI128, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	minI128, _ := new(big.Int).SetString("-170141183460469231731687303715884105728", 10)

	cases := map[string]struct {
		split   []uint32
		total   *big.Int
		want    []string
		wantErr *errors.Error
	}{
		"zero total": {
			total: big.NewInt(0),
			want:  amounts(0, 0, 0, 0),
		},
		"one unit goes to insurance": {
			total: big.NewInt(1),
			want:  amounts(0, 0, 0, 1),
		},
		"truncation remainder": {
			total: big.NewInt(99),
			// 49.5 29.7 14.85 -> 49 29 14, insurance 7
			want: amounts(49, 29, 14, 7),
		},
		"default split of 101": {
			total: big.NewInt(101),
			want:  amounts(50, 30, 15, 6),
		},
		"default split of -101": {
			total: big.NewInt(-101),
			want:  amounts(-50, -30, -15, -6),
		},
		"negative truncates toward zero": {
			total: big.NewInt(-99),
			want:  amounts(-49, -29, -14, -7),
		},
		"all to spending": {
			split: []uint32{100, 0, 0, 0},
			total: big.NewInt(12345),
			want:  amounts(12345, 0, 0, 0),
		},
		"maximum amount does not overflow": {
			total: maxI128,
		},
		"minimum amount does not overflow": {
			total: minI128,
		},
		"above 128 bits": {
			total:   new(big.Int).Add(maxI128, big.NewInt(1)),
			wantErr: ErrInvalidAmount,
		},
		"below 128 bits": {
			total:   new(big.Int).Sub(minI128, big.NewInt(1)),
			wantErr: ErrInvalidAmount,
		},
		"missing amount": {
			total:   nil,
			wantErr: ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.split != nil {
				ok, err := InitializeSplit(db, tc.split[0], tc.split[1], tc.split[2], tc.split[3])
				assert.Nil(t, err)
				assert.Equal(t, true, ok)
			}

			got, err := CalculateSplit(db, tc.total)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, 4, len(got))
			if got := sum(got); got.Cmp(tc.total) != 0 {
				t.Fatalf("amounts sum to %s, want %s", got, tc.total)
			}
			if tc.want != nil {
				assert.Equal(t, tc.want, decimals(got))
			}
		})
	}
}

func TestCalculateSplitShares(t *testing.T) {
	splits := [][]uint32{
		{50, 30, 15, 5},
		{33, 33, 33, 1},
		{1, 1, 1, 97},
		{0, 0, 0, 100},
		{99, 1, 0, 0},
	}
	totals := []int64{-1001, -7, -1, 0, 1, 3, 7, 99, 101, 1000, 123456789}

	for _, s := range splits {
		db := store.MemStore()
		ok, err := InitializeSplit(db, s[0], s[1], s[2], s[3])
		assert.Nil(t, err)
		assert.Equal(t, true, ok)

		for _, total := range totals {
			got, err := CalculateSplit(db, big.NewInt(total))
			assert.Nil(t, err)
			if sum(got).Int64() != total {
				t.Fatalf("split %v of %d sums to %s", s, total, sum(got))
			}
			// the first three shares are total*percent/100 truncated toward zero
			for i, share := range got[:3] {
				want := new(big.Int).Mul(big.NewInt(total), big.NewInt(int64(s[i])))
				want.Quo(want, big.NewInt(100))
				if share.Cmp(want) != 0 {
					t.Fatalf("split %v of %d: share %d is %s, want %s", s, total, i, share, want)
				}
			}
		}
	}
}

func TestGetSplitDoesNotRevalidate(t *testing.T) {
	db := store.MemStore()
	// a record that would never pass InitializeSplit
	conf := Config{Spending: 70, Savings: 70}
	raw, err := conf.Marshal()
	assert.Nil(t, err)
	assert.Nil(t, db.Set(splitKey, raw))

	got, err := GetSplit(db)
	assert.Nil(t, err)
	assert.Equal(t, []uint32{70, 70, 0, 0}, got)

	// remainder correction still holds
	res, err := CalculateSplit(db, big.NewInt(100))
	assert.Nil(t, err)
	assert.Equal(t, amounts(70, 70, 0, -40), decimals(res))
}

func TestGetSplitMalformedRecord(t *testing.T) {
	db := store.MemStore()
	// varint cut short
	assert.Nil(t, db.Set(splitKey, []byte{0x08, 0x80}))

	_, err := GetSplit(db)
	assert.IsErr(t, ErrInvalidSplit, err)

	_, err = CalculateSplit(db, big.NewInt(10))
	assert.IsErr(t, ErrInvalidSplit, err)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    string
		wantErr *errors.Error
	}{
		"positive":   {in: "1000", want: "1000"},
		"negative":   {in: "-25", want: "-25"},
		"max":        {in: "170141183460469231731687303715884105727", want: "170141183460469231731687303715884105727"},
		"too big":    {in: "170141183460469231731687303715884105728", wantErr: ErrInvalidAmount},
		"too small":  {in: "-170141183460469231731687303715884105729", wantErr: ErrInvalidAmount},
		"not number": {in: "ten", wantErr: ErrInvalidAmount},
		"empty":      {in: "", wantErr: ErrInvalidAmount},
		"fraction":   {in: "1.5", wantErr: ErrInvalidAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}
