package defs

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-bestiary/internal/storage"
)

// Duplicate is a record that was shadowed by a later record of the same name.
type Duplicate struct {
	Category storage.Category `json:"category"`
	Name     string           `json:"name"`
}

// FetchFailure is a data file that could not be loaded. Its records are not
// part of the build.
type FetchFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report describes the outcome of one build.
type Report struct {
	BuildId       string                   `json:"build_id"`
	Counts        map[storage.Category]int `json:"counts"`
	LinkErrors    []*storage.LinkError     `json:"link_errors,omitempty"`
	Duplicates    []Duplicate              `json:"duplicates,omitempty"`
	FetchFailures []FetchFailure           `json:"fetch_failures,omitempty"`
	Duration      time.Duration            `json:"duration"`
}

// Clean reports whether every file loaded and every record linked.
func (r *Report) Clean() bool {
	return len(r.LinkErrors) == 0 && len(r.FetchFailures) == 0
}

// LinkErrorsFor returns the number of link errors raised by category.
func (r *Report) LinkErrorsFor(category storage.Category) int {
	n := 0
	for _, e := range r.LinkErrors {
		if e.Category == category {
			n++
		}
	}
	return n
}

// Log writes the report to the operator log.
func (r *Report) Log(ctx context.Context) {
	for _, ff := range r.FetchFailures {
		slog.ErrorContext(ctx, "failed to load definition file", "path", ff.Path, "error", ff.Error)
	}

	for _, d := range r.Duplicates {
		slog.WarnContext(ctx, "duplicate definition name, later definition wins", "category", d.Category, "name", d.Name)
	}

	for _, e := range r.LinkErrors {
		slog.ErrorContext(ctx, "unresolved definition reference",
			"category", e.Category,
			"record", e.Record,
			"slot", e.Slot,
			"target", e.Target,
			"missing", e.Missing,
		)
	}

	for _, category := range Categories {
		slog.InfoContext(ctx, "definitions loaded", "category", category, "count", r.Counts[category])
	}

	if r.Clean() {
		slog.InfoContext(ctx, "all definitions loaded without errors", "build_id", r.BuildId, "duration", r.Duration)
	} else {
		slog.ErrorContext(ctx, "failed to load some definitions",
			"build_id", r.BuildId,
			"link_errors", len(r.LinkErrors),
			"fetch_failures", len(r.FetchFailures),
		)
	}
}
