package domain

import "errors"

var (
	// Position engine errors
	ErrZeroPositionSell = errors.New("cannot sell from a zero position")
	ErrNegativeQuantity = errors.New("negative quantity after sell")

	// Ledger document errors
	ErrNoLedgerDocument = errors.New("no ledger document available")
)
