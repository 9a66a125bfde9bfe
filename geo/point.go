package geo

import (
	"fmt"
	"strconv"
)

// GeoPoint is a single GPS location report. Points are treated as
// immutable once accepted into a route.
type GeoPoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Timestamp int64    `json:"timestamp"`
	Speed     *float64 `json:"speed,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Validate checks the coordinate ranges.
func (p *GeoPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90,90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180,180]", p.Longitude)
	}
	return nil
}

// AccuracyOrZero returns the reported accuracy, or zero when absent.
func (p *GeoPoint) AccuracyOrZero() float64 {
	if p.Accuracy == nil {
		return 0
	}
	return *p.Accuracy
}

// SpeedOrZero returns the reported speed, or zero when absent.
func (p *GeoPoint) SpeedOrZero() float64 {
	if p.Speed == nil {
		return 0
	}
	return *p.Speed
}

// AppendCanonical appends the canonical proof encoding of the point.
// The encoding is lat,lon,timestamp,accuracy-or-zero terminated by a
// newline, floats in shortest round-trip form. Speed is intentionally
// not part of the encoding; changing the field set would invalidate
// every previously generated proof.
func (p *GeoPoint) AppendCanonical(buf []byte) []byte {
	buf = strconv.AppendFloat(buf, p.Latitude, 'g', -1, 64)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, p.Longitude, 'g', -1, 64)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, p.Timestamp, 10)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, p.AccuracyOrZero(), 'g', -1, 64)
	buf = append(buf, '\n')
	return buf
}

// Canonical returns the canonical proof encoding of the point.
func (p *GeoPoint) Canonical() []byte {
	return p.AppendCanonical(nil)
}
