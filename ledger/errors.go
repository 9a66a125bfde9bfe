package ledger

import (
	"errors"
)

var (
	// ErrSigning is returned for malformed or unusable key material.
	ErrSigning = errors.New("signing error")
	// ErrValidation is returned when submission is attempted before a
	// completed proof exists. Checked before any network contact.
	ErrValidation = errors.New("route has no completed proof")
	// ErrNetwork is returned when the ledger endpoint is unreachable
	// or rejects the payload. Never retried here; retry policy belongs
	// to the caller.
	ErrNetwork = errors.New("ledger network error")
)
