package split

import "github.com/remitwise/splitledger/errors"

var (
	// ErrInvalidSplit is returned when a split configuration is malformed or
	// its percentages do not add up to 100.
	ErrInvalidSplit = errors.Register(1100, "invalid split")

	// ErrInvalidAmount is returned for an amount that is not a valid
	// signed 128 bit integer.
	ErrInvalidAmount = errors.Register(1101, "amount out of range")
)
