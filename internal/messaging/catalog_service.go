package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-bestiary/internal/defs"
	"github.com/pixil98/go-bestiary/internal/storage"
)

const (
	SubjectReady        = "bestiary.ready"
	SubjectLookupPrefix = "bestiary.lookup."
)

// Bus is the subset of NatsServer the catalog service needs.
type Bus interface {
	Ready() bool
	Publish(subject string, data []byte) error
	Handle(subject string, handler func(data []byte) []byte) (func(), error)
}

// CatalogSource provides the catalog once it has been built.
type CatalogSource interface {
	Catalog() *defs.Catalog
	Report() *defs.Report
}

type lookupError struct {
	Error string `json:"error"`
}

// CatalogService announces the catalog on the bus once it is ready and then
// answers lookups by name.
type CatalogService struct {
	bus    Bus
	source CatalogSource

	started bool
	unsubs  []func()
}

func NewCatalogService(bus Bus, source CatalogSource) *CatalogService {
	return &CatalogService{bus: bus, source: source}
}

// Tick starts serving once both the catalog and the bus are ready. Later
// calls do nothing.
func (s *CatalogService) Tick(ctx context.Context) error {
	if s.started || !s.bus.Ready() {
		return nil
	}

	c := s.source.Catalog()
	if c == nil {
		return nil
	}

	for _, category := range defs.Categories {
		unsub, err := s.bus.Handle(LookupSubject(category), s.lookupHandler(c, category))
		if err != nil {
			s.Close()
			return fmt.Errorf("subscribing to %s lookups: %w", category, err)
		}
		s.unsubs = append(s.unsubs, unsub)
	}
	s.started = true

	data, err := json.Marshal(s.source.Report())
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	if err := s.bus.Publish(SubjectReady, data); err != nil {
		slog.WarnContext(ctx, "failed to publish catalog ready", "error", err)
	}

	slog.InfoContext(ctx, "serving definition lookups", "prefix", SubjectLookupPrefix)
	return nil
}

// Close removes every lookup subscription.
func (s *CatalogService) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

func (s *CatalogService) lookupHandler(c *defs.Catalog, category storage.Category) func([]byte) []byte {
	return func(data []byte) []byte {
		name := strings.TrimSpace(string(data))

		var out any
		if def, ok := c.Export(category, name); ok {
			out = def
		} else {
			out = lookupError{Error: fmt.Sprintf("%s %q not found", category, name)}
		}

		resp, err := json.Marshal(out)
		if err != nil {
			resp, _ = json.Marshal(lookupError{Error: err.Error()})
		}
		return resp
	}
}

// LookupSubject is the request subject for lookups in category.
func LookupSubject(category storage.Category) string {
	return SubjectLookupPrefix + category.String()
}
