package ingest

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/caiorlm/logichain/geo"
)

// Source produces raw location readings. Delivery is best-effort: a
// failed read yields no point for that interval and is never surfaced
// to the validator.
type Source interface {
	// ReadPoint reads one location fix.
	ReadPoint(ctx context.Context) (*geo.GeoPoint, error)
	// Description returns a human-readable description of this source.
	Description() string
}

// Collector polls a Source at a fixed interval and feeds accepted
// readings into a bounded channel. When the consumer lags, the oldest
// queued reading is dropped in favor of the new one: a delivery
// tracker wants the freshest fix, and blocking the producer would
// stall the read loop.
type Collector struct {
	source   Source
	interval time.Duration
	out      chan *geo.GeoPoint
	log      *log.Entry
}

// NewCollector builds a collector with a queue of the given capacity.
func NewCollector(source Source, interval time.Duration, capacity int) *Collector {
	if capacity < 1 {
		capacity = 1
	}

	return &Collector{
		source:   source,
		interval: interval,
		out:      make(chan *geo.GeoPoint, capacity),
		log:      log.WithField("ingest", source.Description()),
	}
}

// Points returns the channel of collected readings.
func (c *Collector) Points() <-chan *geo.GeoPoint {
	return c.out
}

// CollectWorker polls the source until the context ends.
func (c *Collector) CollectWorker(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case <-ticker.C:
		}

		point, err := c.source.ReadPoint(ctx)
		if err != nil {
			c.log.WithError(err).Warn("Dropped failed location read")
			continue
		}
		if err := point.Validate(); err != nil {
			c.log.WithError(err).Warn("Dropped invalid location read")
			continue
		}

		c.offer(point)
	}
}

// offer enqueues a point, evicting the oldest queued point when full.
func (c *Collector) offer(point *geo.GeoPoint) {
	for {
		select {
		case c.out <- point:
			return
		default:
		}

		select {
		case dropped := <-c.out:
			c.log.WithField("timestamp", dropped.Timestamp).
				Debug("Dropped oldest queued point")
		default:
		}
	}
}
