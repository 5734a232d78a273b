package driver

import "time"

type DriverOpt func(*Driver)

// WithTickLength sets how often the tickers are advanced. It defaults to
// DefaultTickLength.
func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}
