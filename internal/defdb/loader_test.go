package defdb

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-bestiary/internal/defs"
	"github.com/pixil98/go-bestiary/internal/storage"
	"github.com/pixil98/go-testutil"
)

type fakeFile struct {
	path  string
	state storage.LoadState
	defs  []*defs.RawDef
	err   error
}

type fakeSource struct {
	files     []*fakeFile
	walkErr   error
	requested int
}

func (s *fakeSource) RequestFolder(_ context.Context, _ string) ([]storage.Handle, error) {
	s.requested++
	if s.walkErr != nil {
		return nil, s.walkErr
	}
	hs := make([]storage.Handle, len(s.files))
	for i := range s.files {
		hs[i] = storage.Handle(i)
	}
	return hs, nil
}

func (s *fakeSource) State(h storage.Handle) storage.LoadState {
	return s.files[h].state
}

func (s *fakeSource) GroupState(hs []storage.Handle) storage.LoadState {
	out := storage.LoadLoaded
	for _, h := range hs {
		switch s.files[h].state {
		case storage.LoadPending:
			return storage.LoadPending
		case storage.LoadFailed:
			out = storage.LoadFailed
		}
	}
	return out
}

func (s *fakeSource) Asset(h storage.Handle) (*storage.Asset[*defs.RawDef], error) {
	f := s.files[h]
	if f.state == storage.LoadFailed {
		return nil, f.err
	}
	return &storage.Asset[*defs.RawDef]{Version: 1, Defs: f.defs}, nil
}

func (s *fakeSource) Path(h storage.Handle) string {
	return s.files[h].path
}

func biome(name string) *defs.RawDef {
	return &defs.RawDef{Biome: &defs.RawBiome{Name: name}}
}

func monsterType(name string, targets ...string) *defs.RawDef {
	t := &defs.RawMonsterType{Name: name}
	for _, target := range targets {
		t.DamageScales = append(t.DamageScales, defs.RawDamageScale{DamageScale: 2, TargetType: target})
	}
	return &defs.RawDef{MonsterType: t}
}

func TestLoader_Lifecycle(t *testing.T) {
	src := &fakeSource{
		files: []*fakeFile{
			{path: "biomes.yaml", state: storage.LoadPending, defs: []*defs.RawDef{biome("Lake")}},
			{path: "types.json", state: storage.LoadLoaded, defs: []*defs.RawDef{monsterType("Fire", "Grass"), monsterType("Grass")}},
		},
	}

	var hookCalls int
	var hookCatalog *defs.Catalog
	l := NewLoader("assets", src, WithReadyHook(func(_ context.Context, c *defs.Catalog, _ *defs.Report) {
		hookCalls++
		hookCatalog = c
	}))

	ctx := context.Background()

	testutil.AssertEqual(t, "initial state", l.State(), StateFetchingRawData)
	if l.Catalog() != nil {
		t.Fatalf("catalog available before ready")
	}

	for i := 0; i < 3; i++ {
		if err := l.Tick(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "pending state", l.State(), StateFetchingRawData)
	}
	testutil.AssertEqual(t, "folder requests", src.requested, 1)

	src.files[0].state = storage.LoadLoaded

	if err := l.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "after fetch", l.State(), StateLinking)
	if l.Catalog() != nil {
		t.Fatalf("catalog available while linking")
	}

	if err := l.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "after link", l.State(), StateReady)
	testutil.AssertEqual(t, "hook calls", hookCalls, 1)

	c := l.Catalog()
	if c == nil {
		t.Fatalf("no catalog once ready")
	}
	if hookCatalog != c {
		t.Errorf("hook received a different catalog")
	}
	testutil.AssertEqual(t, "biomes", c.Len(defs.CategoryBiome), 1)
	testutil.AssertEqual(t, "types", c.Len(defs.CategoryMonsterType), 2)
	testutil.AssertEqual(t, "clean", l.Report().Clean(), true)

	if err := l.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "stays ready", l.State(), StateReady)
	testutil.AssertEqual(t, "hook calls after ready", hookCalls, 1)
}

func TestLoader_FetchFailuresExcluded(t *testing.T) {
	src := &fakeSource{
		files: []*fakeFile{
			{path: "broken.json", state: storage.LoadFailed, err: errors.New("unexpected end of JSON input")},
			{path: "types.json", state: storage.LoadLoaded, defs: []*defs.RawDef{monsterType("Fire", "Water")}},
		},
	}
	l := NewLoader("assets", src)
	ctx := context.Background()

	for l.State() != StateReady {
		if err := l.Tick(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	r := l.Report()
	testutil.AssertEqual(t, "fetch failures", len(r.FetchFailures), 1)
	testutil.AssertEqual(t, "failure path", r.FetchFailures[0].Path, "broken.json")
	testutil.AssertEqual(t, "link errors", len(r.LinkErrors), 1)
	testutil.AssertEqual(t, "types", l.Catalog().Len(defs.CategoryMonsterType), 0)
	testutil.AssertEqual(t, "clean", r.Clean(), false)
}

func TestLoader_EmptyFolder(t *testing.T) {
	l := NewLoader("assets", &fakeSource{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := l.Tick(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "state", l.State(), StateReady)
	for _, cat := range defs.Categories {
		testutil.AssertEqual(t, cat.String(), l.Catalog().Len(cat), 0)
	}
}

func TestLoader_WalkError(t *testing.T) {
	src := &fakeSource{walkErr: errors.New("no such file or directory")}
	l := NewLoader("missing", src)

	err := l.Tick(context.Background())
	testutil.AssertErrorContains(t, err, "requesting definitions folder")
	testutil.AssertEqual(t, "state", l.State(), StateFetchingRawData)
}

func TestLoader_FolderLoader(t *testing.T) {
	l := NewLoader(t.TempDir(), storage.NewFolderLoader[*defs.RawDef](0))
	ctx := context.Background()

	for i := 0; i < 100 && l.State() != StateReady; i++ {
		if err := l.Tick(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	testutil.AssertEqual(t, "state", l.State(), StateReady)
}

func TestState_String(t *testing.T) {
	testutil.AssertEqual(t, "fetching", StateFetchingRawData.String(), "fetching_raw_data")
	testutil.AssertEqual(t, "linking", StateLinking.String(), "linking")
	testutil.AssertEqual(t, "ready", StateReady.String(), "ready")
	testutil.AssertEqual(t, "unknown", State(9).String(), "State(9)")
}
