// Package defdb drives loading of the definition catalog, from reading the
// data folder to publishing the linked catalog.
package defdb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-bestiary/internal/defs"
	"github.com/pixil98/go-bestiary/internal/storage"
)

type State int

const (
	StateFetchingRawData State = iota
	StateLinking
	StateReady
)

func (s State) String() string {
	switch s {
	case StateFetchingRawData:
		return "fetching_raw_data"
	case StateLinking:
		return "linking"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Source loads data files in the background. storage.FolderLoader is the
// production implementation.
type Source interface {
	RequestFolder(ctx context.Context, path string) ([]storage.Handle, error)
	State(h storage.Handle) storage.LoadState
	GroupState(hs []storage.Handle) storage.LoadState
	Asset(h storage.Handle) (*storage.Asset[*defs.RawDef], error)
	Path(h storage.Handle) string
}

// ReadyHook is called once, from Tick, when the catalog becomes ready.
type ReadyHook func(context.Context, *defs.Catalog, *defs.Report)

// Loader is the lifecycle of the definition catalog. It is advanced by the
// driver calling Tick, and never blocks waiting for files.
type Loader struct {
	path   string
	source Source
	hooks  []ReadyHook

	stallWarning time.Duration
	fetchStart   time.Time
	stallLogged  bool

	requested bool
	handles   []storage.Handle
	raws      []*defs.RawDef
	failures  []defs.FetchFailure

	mu      sync.RWMutex
	state   State
	catalog *defs.Catalog
	report  *defs.Report
}

func NewLoader(path string, source Source, opts ...LoaderOpt) *Loader {
	l := &Loader{
		path:   path,
		source: source,
		state:  StateFetchingRawData,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Catalog returns the linked catalog, or nil until the loader is ready.
func (l *Loader) Catalog() *defs.Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

// Report returns the build report, or nil until the loader is ready.
func (l *Loader) Report() *defs.Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.report
}

func (l *Loader) setState(ctx context.Context, s State) {
	l.mu.Lock()
	prev := l.state
	l.state = s
	l.mu.Unlock()

	slog.InfoContext(ctx, "definition database state changed", "from", prev, "to", s)
}

// Tick advances the lifecycle by at most one step.
func (l *Loader) Tick(ctx context.Context) error {
	switch l.State() {
	case StateFetchingRawData:
		return l.fetch(ctx)
	case StateLinking:
		l.link(ctx)
		return nil
	default:
		return nil
	}
}

func (l *Loader) fetch(ctx context.Context) error {
	if !l.requested {
		hs, err := l.source.RequestFolder(ctx, l.path)
		if err != nil {
			return fmt.Errorf("requesting definitions folder: %w", err)
		}
		l.requested = true
		l.handles = hs
		l.fetchStart = time.Now()
		slog.InfoContext(ctx, "loading definition files", "path", l.path, "files", len(hs))
	}

	if l.source.GroupState(l.handles) == storage.LoadPending {
		if l.stallWarning > 0 && !l.stallLogged && time.Since(l.fetchStart) > l.stallWarning {
			l.stallLogged = true
			slog.WarnContext(ctx, "definition files are taking a long time to load", "path", l.path, "waited", time.Since(l.fetchStart))
		}
		return nil
	}

	for _, h := range l.handles {
		asset, err := l.source.Asset(h)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load definition file", "path", l.source.Path(h), "error", err)
			l.failures = append(l.failures, defs.FetchFailure{Path: l.source.Path(h), Error: err.Error()})
			continue
		}
		l.raws = append(l.raws, asset.Defs...)
	}

	slog.InfoContext(ctx, "all definition files loaded", "files", len(l.handles), "failed", len(l.failures))
	l.setState(ctx, StateLinking)
	return nil
}

func (l *Loader) link(ctx context.Context) {
	catalog, report := defs.BuildCatalog(l.raws)
	report.FetchFailures = l.failures
	l.raws = nil

	report.Log(ctx)

	l.mu.Lock()
	l.catalog = catalog
	l.report = report
	l.mu.Unlock()

	l.setState(ctx, StateReady)

	for _, hook := range l.hooks {
		hook(ctx, catalog, report)
	}
}
