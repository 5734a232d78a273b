package command

import (
	"fmt"

	"github.com/pixil98/go-bestiary/internal/defdb"
	"github.com/pixil98/go-bestiary/internal/driver"
	"github.com/pixil98/go-bestiary/internal/messaging"
	"github.com/pixil98/go-bestiary/internal/metrics"
	"github.com/pixil98/go-service"
	"github.com/prometheus/client_golang/prometheus"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Export the schema before any data file is read.
	if err := cfg.Defs.exportSchema(); err != nil {
		return nil, err
	}

	workers := service.WorkerList{}

	var opts []defdb.LoaderOpt
	var m *metrics.Metrics
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		opts = append(opts, defdb.WithReadyHook(m.ObserveReport))
		workers["metrics"] = metrics.NewServer(cfg.Metrics.Addr, reg)
	}

	loader, err := cfg.Defs.buildLoader(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating definition loader: %w", err)
	}

	tickers := []driver.Ticker{loader}
	if m != nil {
		tickers = append(tickers, metrics.NewStateTracker(m, loader))
	}

	if cfg.Nats.Enabled {
		nats, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = nats
		tickers = append(tickers, messaging.NewCatalogService(nats, loader))
	}

	var driverOpts []driver.DriverOpt
	if d, ok := cfg.tickInterval(); ok {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	workers["driver"] = driver.NewDriver(tickers, driverOpts...)

	return workers, nil
}
