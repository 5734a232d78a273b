package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope of a data file: a version and a list of raw
// definitions.
type Asset[T ValidatingSpec] struct {
	Version uint `json:"version" yaml:"version"`
	Defs    []T  `json:"defs" yaml:"defs"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	for i, def := range a.Defs {
		if err := def.Validate(); err != nil {
			el.Add(fmt.Errorf("defs[%d]: %w", i, err))
		}
	}

	return el.Err()
}

// isAssetFile reports whether path has an extension we know how to decode.
func isAssetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func decodeAsset[T ValidatingSpec](path string, data []byte) (*Asset[T], error) {
	asset := &Asset[T]{}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, asset)
	default:
		err = json.Unmarshal(data, asset)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}
