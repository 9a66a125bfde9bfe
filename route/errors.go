package route

import (
	"errors"
)

var (
	// ErrInvalidTimestamp is returned when a point's timestamp falls
	// outside the skew tolerance window around the validator's clock.
	ErrInvalidTimestamp = errors.New("point timestamp outside skew tolerance")
	// ErrPointOutOfBounds is returned when a point's reported accuracy
	// exceeds the configured maximum error, or when it deviates from
	// the previous accepted point by more than the tolerance radius.
	ErrPointOutOfBounds = errors.New("point out of bounds")
	// ErrRouteIncomplete is returned when a proof is requested before
	// at least two points have been accepted.
	ErrRouteIncomplete = errors.New("route incomplete")
	// ErrRouteClosed is returned when a point arrives after the route
	// has reached a terminal status.
	ErrRouteClosed = errors.New("route closed")
	// ErrRouteExists is returned when a contract already has an active
	// validator in the table.
	ErrRouteExists = errors.New("route already exists for contract")
	// ErrRouteNotFound is returned when no validator is registered for
	// a contract.
	ErrRouteNotFound = errors.New("no route for contract")
)
