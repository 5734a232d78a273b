package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string        `json:"tick_interval"`
	Defs         DefsConfig    `json:"defs"`
	Nats         NatsConfig    `json:"nats"`
	Metrics      MetricsConfig `json:"metrics"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	el.Add(c.Defs.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Metrics.validate())

	return el.Err()
}

func (c *Config) tickInterval() (time.Duration, bool) {
	if c.TickInterval == "" {
		return 0, false
	}
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, false
	}
	return d, true
}
