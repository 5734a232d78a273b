package command

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pixil98/go-bestiary/internal/defdb"
	"github.com/pixil98/go-bestiary/internal/defs"
	"github.com/pixil98/go-bestiary/internal/storage"
	"github.com/pixil98/go-errors"
)

type DefsConfig struct {
	Path               string `json:"path"`
	SchemaPath         string `json:"schema_path,omitempty"`
	MaxConcurrentReads int    `json:"max_concurrent_reads,omitempty"`
	StallWarning       string `json:"stall_warning,omitempty"`
}

func (c *DefsConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("defs: path is required"))
	} else if _, err := os.Stat(c.Path); err != nil {
		el.Add(fmt.Errorf("defs: invalid path %q: %w", c.Path, err))
	}

	if c.MaxConcurrentReads < 0 {
		el.Add(fmt.Errorf("defs: max_concurrent_reads must not be negative"))
	}

	if c.StallWarning != "" {
		if _, err := time.ParseDuration(c.StallWarning); err != nil {
			el.Add(fmt.Errorf("defs: parsing stall_warning: %w", err))
		}
	}

	return el.Err()
}

// exportSchema writes the data file schema when a schema_path is configured.
func (c *DefsConfig) exportSchema() error {
	if c.SchemaPath == "" {
		return nil
	}
	if err := defs.ExportSchema(c.SchemaPath); err != nil {
		return fmt.Errorf("exporting definition schema: %w", err)
	}
	slog.Info("definition schema exported", "path", c.SchemaPath)
	return nil
}

func (c *DefsConfig) buildLoader(opts ...defdb.LoaderOpt) (*defdb.Loader, error) {
	if c.StallWarning != "" {
		d, err := time.ParseDuration(c.StallWarning)
		if err != nil {
			return nil, fmt.Errorf("parsing stall_warning: %w", err)
		}
		opts = append(opts, defdb.WithStallWarning(d))
	}

	source := storage.NewFolderLoader[*defs.RawDef](c.MaxConcurrentReads)
	return defdb.NewLoader(c.Path, source, opts...), nil
}
