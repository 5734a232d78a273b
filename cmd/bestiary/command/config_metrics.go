package command

import (
	"fmt"
	"net"

	"github.com/pixil98/go-errors"
)

type MetricsConfig struct {
	Addr string `json:"addr,omitempty"`
}

func (c *MetricsConfig) validate() error {
	el := errors.NewErrorList()

	if c.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Addr); err != nil {
			el.Add(fmt.Errorf("metrics: invalid addr %q: %w", c.Addr, err))
		}
	}

	return el.Err()
}
