package route

import (
	"time"

	"github.com/google/uuid"

	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/signature"
	"github.com/caiorlm/logichain/timestamp"
)

// TimestampSkewTolerance is the maximum allowed difference between a
// reported point timestamp and the validator's clock.
const TimestampSkewTolerance = 5 * time.Second

// minProofPoints is the minimum accepted sequence length for a proof.
const minProofPoints = 2

// RouteValidator owns the accepted point sequence and status for one
// contract. The sequence only grows, in acceptance order; the proof
// hash is derived from the sequence alone.
//
// A RouteValidator is not safe for concurrent use. Callers must hold
// the per-contract lock (see Table) across every mutation.
type RouteValidator struct {
	id        string
	config    RouteConfig
	points    []*geo.GeoPoint
	status    ValidationStatus
	proofHash string
}

// NewRouteValidator builds a validator for a contract.
func NewRouteValidator(config RouteConfig) (*RouteValidator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &RouteValidator{
		id:     uuid.NewString(),
		config: config,
		status: StatusStarted,
	}, nil
}

// RestoreRouteValidator rebuilds a validator from persisted state.
func RestoreRouteValidator(
	id string,
	config RouteConfig,
	points []*geo.GeoPoint,
	status ValidationStatus,
	proofHash string,
) *RouteValidator {
	return &RouteValidator{
		id:        id,
		config:    config,
		points:    points,
		status:    status,
		proofHash: proofHash,
	}
}

// AddPoint validates a point and appends it to the sequence.
// Checks run in order: terminal-status guard, timestamp skew, reported
// accuracy, displacement from the previous accepted point. A rejected
// point mutates nothing; the sequence and status are exactly as before
// the call.
func (v *RouteValidator) AddPoint(point *geo.GeoPoint, now time.Time) (ValidationStatus, error) {
	if v.status.Terminal() {
		return v.status, ErrRouteClosed
	}

	if !timestamp.WithinSkew(point.Timestamp, now, TimestampSkewTolerance) {
		return v.status, ErrInvalidTimestamp
	}

	if point.Accuracy != nil && *point.Accuracy > v.config.MaxError {
		return v.status, ErrPointOutOfBounds
	}

	// Displacement check runs against the previous accepted point only;
	// the first point has no predecessor and is exempt.
	if v.config.ToleranceRadius > 0 && len(v.points) > 0 {
		prev := v.points[len(v.points)-1]
		if geo.Distance(prev, point) > v.config.ToleranceRadius {
			return v.status, ErrPointOutOfBounds
		}
	}

	v.points = append(v.points, point)
	if v.status == StatusStarted {
		v.status = StatusInProgress
	}

	return v.status, nil
}

// GenerateProof folds the accepted sequence into the proof hash and
// completes the route. Requires at least two accepted points. Once the
// route is completed the stored hash is returned unchanged on every
// subsequent call.
func (v *RouteValidator) GenerateProof() (string, error) {
	if v.status == StatusCompleted {
		return v.proofHash, nil
	}
	if v.status == StatusFailed {
		return "", ErrRouteClosed
	}

	if len(v.points) < minProofPoints {
		return "", ErrRouteIncomplete
	}

	var buf []byte
	for _, point := range v.points {
		buf = point.AppendCanonical(buf)
	}

	v.proofHash = signature.HashDataHex(buf)
	v.status = StatusCompleted

	return v.proofHash, nil
}

// Abort drives the route to Failed. This is the only path to Failed;
// rejected points never change status.
func (v *RouteValidator) Abort() {
	if v.status == StatusCompleted {
		return
	}
	v.status = StatusFailed
}

// ID returns the route record id.
func (v *RouteValidator) ID() string {
	return v.id
}

// ContractID returns the owning contract's id.
func (v *RouteValidator) ContractID() string {
	return v.config.ContractID
}

// Config returns the route's validation parameters.
func (v *RouteValidator) Config() RouteConfig {
	return v.config
}

// Status returns the current validation status.
func (v *RouteValidator) Status() ValidationStatus {
	return v.status
}

// ProofHash returns the stored proof hash, empty until completed.
func (v *RouteValidator) ProofHash() string {
	return v.proofHash
}

// Points returns a copy of the accepted point sequence.
func (v *RouteValidator) Points() []*geo.GeoPoint {
	points := make([]*geo.GeoPoint, len(v.points))
	copy(points, v.points)
	return points
}

// PointCount returns the accepted sequence length.
func (v *RouteValidator) PointCount() int {
	return len(v.points)
}
