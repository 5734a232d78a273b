// Package driver runs the scheduling loop that advances every registered
// Ticker once per tick.
package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Millisecond * 250
)

// Ticker is advanced once per tick. The definition loader, the metrics
// state tracker and the catalog service are all Tickers. A returned error is
// fatal to the driver.
type Ticker interface {
	Tick(context.Context) error
}

// Driver is the service worker that schedules every Ticker of the bestiary.
// Tickers must not block.
type Driver struct {
	tickLength time.Duration
	tickers    []Ticker
}

func NewDriver(tickers []Ticker, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks until ctx is cancelled or a Ticker fails.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick calls every ticker in registration order, stopping at the first error.
func (d *Driver) Tick(ctx context.Context) error {
	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
