package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMnemonic ...
	ErrEmptyMnemonic = errors.New("seed phrase must not be empty")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("seed phrase is not a valid BIP39 mnemonic")
	// ErrInvalidCount ...
	ErrInvalidCount = errors.New("address count must be a positive number")
	// ErrUnsupportedNetwork ...
	ErrUnsupportedNetwork = errors.New("network is not supported by this chain")
	// ErrNotSupported marks an optional capability the chain backend does
	// not provide. Callers degrade gracefully on it instead of failing.
	ErrNotSupported = errors.New("operation not supported for this chain")
)

// BroadcastError is returned when the chain explicitly rejected a signed
// transaction. It distinguishes the "failed" transfer outcome from local
// signing or connectivity errors.
type BroadcastError struct {
	Reason string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast rejected: %s", e.Reason)
}

// IsBroadcastRejected reports whether err wraps a chain-side rejection.
func IsBroadcastRejected(err error) bool {
	var be *BroadcastError
	return errors.As(err, &be)
}
