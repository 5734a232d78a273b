package defs

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/pixil98/go-bestiary/internal/storage"
)

const schemaDialect = "https://json-schema.org/draft/2020-12/schema"

// Schema describes the data file format for authoring tools.
func Schema() (*jsonschema.Schema, error) {
	var variants []*jsonschema.Schema
	for _, c := range Categories {
		s, err := categorySchema(c)
		if err != nil {
			return nil, fmt.Errorf("%s schema: %w", c, err)
		}
		variants = append(variants, s)
	}

	return &jsonschema.Schema{
		Schema: schemaDialect,
		Title:  "Definitions file",
		Type:   "object",
		Properties: map[string]*jsonschema.Schema{
			"version": {Type: "integer"},
			"defs": {
				Type:  "array",
				Items: &jsonschema.Schema{OneOf: variants},
			},
		},
		Required: []string{"version", "defs"},
	}, nil
}

func categorySchema(c storage.Category) (*jsonschema.Schema, error) {
	var s *jsonschema.Schema
	var err error
	switch c {
	case CategoryBiome:
		s, err = jsonschema.For[RawBiome](nil)
	case CategoryMonsterType:
		s, err = jsonschema.For[RawMonsterType](nil)
	case CategoryMonsterMove:
		s, err = jsonschema.For[RawMonsterMove](nil)
	case CategoryMonster:
		s, err = jsonschema.For[RawMonster](nil)
	default:
		return nil, fmt.Errorf("unknown category %q", c)
	}
	if err != nil {
		return nil, err
	}

	if s.Properties == nil {
		s.Properties = map[string]*jsonschema.Schema{}
	}
	s.Title = c.String()
	s.Properties["type"] = &jsonschema.Schema{Type: "string", Enum: []any{c.String()}}
	s.Required = append(s.Required, "type")

	if c == CategoryMonsterMove {
		if p, ok := s.Properties["category"]; ok {
			p.Enum = []any{string(MovePhysical), string(MoveMagical)}
		}
	}

	return s, nil
}

// ExportSchema writes the data file schema to path as indented JSON.
func ExportSchema(path string) error {
	s, err := Schema()
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling schema: %w", err)
	}

	if err := storage.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing schema %s: %w", path, err)
	}
	return nil
}
