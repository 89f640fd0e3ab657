package chain

import "errors"

var (
	// ErrReverted is returned when a mined transaction has status 0.
	ErrReverted = errors.New("transaction reverted")

	// ErrReceiptTimeout is returned when no receipt shows up in time.
	ErrReceiptTimeout = errors.New("timed out waiting for receipt")

	// ErrChainIDMismatch means the endpoint serves a different chain than configured.
	ErrChainIDMismatch = errors.New("chain id mismatch")

	// ErrReadOnly is returned when a transactor without a signer is asked to send.
	ErrReadOnly = errors.New("read-only transactor: no signer")
)
