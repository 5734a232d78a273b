package storage

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

// testSpec is a simple ValidatingSpec for testing
type testSpec struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func (s *testSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset   Asset[*testSpec]
		expErrs []string
	}{
		"valid asset": {
			asset: Asset[*testSpec]{
				Version: 1,
				Defs:    []*testSpec{{Name: "a"}, {Name: "b"}},
			},
			expErrs: nil,
		},
		"no defs is valid": {
			asset: Asset[*testSpec]{
				Version: 1,
			},
			expErrs: nil,
		},
		"version not set": {
			asset: Asset[*testSpec]{
				Version: 0,
				Defs:    []*testSpec{{Name: "a"}},
			},
			expErrs: []string{"version must be set"},
		},
		"invalid def": {
			asset: Asset[*testSpec]{
				Version: 1,
				Defs:    []*testSpec{{Name: "a"}, {}},
			},
			expErrs: []string{"defs[1]: name is required"},
		},
		"multiple errors": {
			asset: Asset[*testSpec]{
				Version: 0,
				Defs:    []*testSpec{{}, {}},
			},
			expErrs: []string{
				"version must be set",
				"defs[0]: name is required",
				"defs[1]: name is required",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("expected errors %v, got nil", tt.expErrs)
				return
			}

			errStr := err.Error()
			for _, e := range tt.expErrs {
				if !strings.Contains(errStr, e) {
					t.Errorf("error %q does not contain %q", errStr, e)
				}
			}
		})
	}
}

func TestDecodeAsset(t *testing.T) {
	tests := map[string]struct {
		path     string
		data     string
		expErr   string
		expNames []string
	}{
		"json": {
			path:     "defs.json",
			data:     `{"version": 1, "defs": [{"name": "a", "value": 1}, {"name": "b"}]}`,
			expNames: []string{"a", "b"},
		},
		"yaml": {
			path:     "defs.yaml",
			data:     "version: 1\ndefs:\n  - name: a\n    value: 1\n",
			expNames: []string{"a"},
		},
		"yml upper case": {
			path:     "DEFS.YML",
			data:     "version: 2\ndefs: []\n",
			expNames: nil,
		},
		"bad json": {
			path:   "defs.json",
			data:   `{"version": 1,`,
			expErr: "unmarshalling asset",
		},
		"bad yaml": {
			path:   "defs.yaml",
			data:   "version: [",
			expErr: "unmarshalling asset",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			asset, err := decodeAsset[*testSpec](tt.path, []byte(tt.data))

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "def count", len(asset.Defs), len(tt.expNames))
			for i, n := range tt.expNames {
				testutil.AssertEqual(t, "name", asset.Defs[i].Name, n)
			}
		})
	}
}

func TestIsAssetFile(t *testing.T) {
	tests := map[string]struct {
		path string
		exp  bool
	}{
		"json":      {path: "a/b.json", exp: true},
		"yaml":      {path: "b.yaml", exp: true},
		"yml":       {path: "b.yml", exp: true},
		"uppercase": {path: "b.JSON", exp: true},
		"text":      {path: "readme.txt", exp: false},
		"no ext":    {path: "defs", exp: false},
		"temp file": {path: "defs.json.tmp", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "is asset", isAssetFile(tt.path), tt.exp)
		})
	}
}
