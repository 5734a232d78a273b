package defdb

import "time"

type LoaderOpt func(*Loader)

// WithReadyHook registers a function to run once the catalog is ready.
func WithReadyHook(h ReadyHook) LoaderOpt {
	return func(l *Loader) {
		l.hooks = append(l.hooks, h)
	}
}

// WithStallWarning logs a warning once if files are still loading after d.
// Loading is never abandoned.
func WithStallWarning(d time.Duration) LoaderOpt {
	return func(l *Loader) {
		l.stallWarning = d
	}
}
