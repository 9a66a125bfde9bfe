package ingest

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/timestamp"
)

// SimSource emits fixes walking away from a base coordinate. It stands
// in for a GPS device during development and load testing.
type SimSource struct {
	lat      float64
	lon      float64
	stepDeg  float64
	accuracy float64
}

// NewSimSource builds a simulated source starting at a base coordinate.
// stepDeg is the per-read coordinate drift in degrees.
func NewSimSource(lat, lon, stepDeg, accuracy float64) *SimSource {
	return &SimSource{
		lat:      lat,
		lon:      lon,
		stepDeg:  stepDeg,
		accuracy: accuracy,
	}
}

// ReadPoint implements Source.
func (s *SimSource) ReadPoint(ctx context.Context) (*geo.GeoPoint, error) {
	s.lat += s.stepDeg * (rand.Float64() - 0.5)
	s.lon += s.stepDeg * (rand.Float64() - 0.5)

	acc := s.accuracy
	return &geo.GeoPoint{
		Latitude:  s.lat,
		Longitude: s.lon,
		Timestamp: timestamp.Now(),
		Accuracy:  &acc,
	}, nil
}

// Description implements Source.
func (s *SimSource) Description() string {
	return fmt.Sprintf("sim:%v,%v", s.lat, s.lon)
}
