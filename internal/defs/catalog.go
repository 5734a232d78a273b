package defs

import (
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-bestiary/internal/storage"
)

// Catalog holds one finished database per category. It is never modified
// after BuildCatalog returns.
type Catalog struct {
	Biomes       *storage.Database[*Biome]
	MonsterTypes *storage.Database[*MonsterType]
	MonsterMoves *storage.Database[*MonsterMove]
	Monsters     *storage.Database[*Monster]
}

// Len returns the number of definitions of category c.
func (c *Catalog) Len(category storage.Category) int {
	switch category {
	case CategoryBiome:
		return c.Biomes.Len()
	case CategoryMonsterType:
		return c.MonsterTypes.Len()
	case CategoryMonsterMove:
		return c.MonsterMoves.Len()
	case CategoryMonster:
		return c.Monsters.Len()
	}
	return 0
}

// Export renders a definition back into its authored form, with references
// written as names.
func (c *Catalog) Export(category storage.Category, name string) (*RawDef, bool) {
	switch category {
	case CategoryBiome:
		if b, ok := c.Biomes.GetByName(name); ok {
			return &RawDef{Biome: b.raw()}, true
		}
	case CategoryMonsterType:
		if t, ok := c.MonsterTypes.GetByName(name); ok {
			return &RawDef{MonsterType: t.raw(c.MonsterTypes)}, true
		}
	case CategoryMonsterMove:
		if m, ok := c.MonsterMoves.GetByName(name); ok {
			return &RawDef{MonsterMove: m.raw(c.MonsterTypes)}, true
		}
	case CategoryMonster:
		if m, ok := c.Monsters.GetByName(name); ok {
			return &RawDef{Monster: m.raw(c)}, true
		}
	}
	return nil, false
}

type rawSet struct {
	biomes   []*RawBiome
	types    []*RawMonsterType
	moves    []*RawMonsterMove
	monsters []*RawMonster
}

func partition(raws []*RawDef) rawSet {
	var set rawSet
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		switch {
		case raw.Biome != nil:
			set.biomes = append(set.biomes, raw.Biome)
		case raw.MonsterType != nil:
			set.types = append(set.types, raw.MonsterType)
		case raw.MonsterMove != nil:
			set.moves = append(set.moves, raw.MonsterMove)
		case raw.Monster != nil:
			set.monsters = append(set.monsters, raw.Monster)
		}
	}
	return set
}

// dedupe keeps the last record of each name, as the database would, and
// reports every record it dropped.
func dedupe[R storage.Definition](category storage.Category, raws []R) ([]R, []Duplicate) {
	last := make(map[string]int, len(raws))
	for i, raw := range raws {
		last[raw.DefName()] = i
	}
	if len(last) == len(raws) {
		return raws, nil
	}

	var dups []Duplicate
	kept := make([]R, 0, len(last))
	for i, raw := range raws {
		if last[raw.DefName()] != i {
			dups = append(dups, Duplicate{Category: category, Name: raw.DefName()})
			continue
		}
		kept = append(kept, raw)
	}
	return kept, dups
}

// BuildCatalog links raw definitions of every category, in dependency order.
// Records that fail to link are left out; the rest of the catalog is built
// regardless and every failure is listed in the report.
func BuildCatalog(raws []*RawDef) (*Catalog, *Report) {
	start := time.Now()
	report := &Report{
		BuildId: uuid.New().String(),
		Counts:  map[storage.Category]int{},
	}

	set := partition(raws)

	var dups []Duplicate
	set.biomes, dups = dedupe(CategoryBiome, set.biomes)
	report.Duplicates = append(report.Duplicates, dups...)
	set.types, dups = dedupe(CategoryMonsterType, set.types)
	report.Duplicates = append(report.Duplicates, dups...)
	set.moves, dups = dedupe(CategoryMonsterMove, set.moves)
	report.Duplicates = append(report.Duplicates, dups...)
	set.monsters, dups = dedupe(CategoryMonster, set.monsters)
	report.Duplicates = append(report.Duplicates, dups...)

	biomes, errs := buildBiomes(set.biomes)
	report.LinkErrors = append(report.LinkErrors, errs...)

	types, errs := buildMonsterTypes(set.types)
	report.LinkErrors = append(report.LinkErrors, errs...)

	moves, errs := buildMonsterMoves(set.moves, types)
	report.LinkErrors = append(report.LinkErrors, errs...)

	monsters, errs := buildMonsters(set.monsters, biomes, types, moves)
	report.LinkErrors = append(report.LinkErrors, errs...)

	c := &Catalog{
		Biomes:       biomes,
		MonsterTypes: types,
		MonsterMoves: moves,
		Monsters:     monsters,
	}
	for _, category := range Categories {
		report.Counts[category] = c.Len(category)
	}
	report.Duration = time.Since(start)

	return c, report
}

func buildBiomes(raws []*RawBiome) (*storage.Database[*Biome], []*storage.LinkError) {
	return storage.Build(CategoryBiome, raws, linkBiome)
}

func buildMonsterTypes(raws []*RawMonsterType) (*storage.Database[*MonsterType], []*storage.LinkError) {
	return storage.BuildSelfReferencing(CategoryMonsterType, raws, stubMonsterType, linkMonsterType)
}

func buildMonsterMoves(
	raws []*RawMonsterMove,
	types *storage.Database[*MonsterType],
) (*storage.Database[*MonsterMove], []*storage.LinkError) {
	return storage.Build(CategoryMonsterMove, raws, linkMonsterMove(types))
}

func buildMonsters(
	raws []*RawMonster,
	biomes *storage.Database[*Biome],
	types *storage.Database[*MonsterType],
	moves *storage.Database[*MonsterMove],
) (*storage.Database[*Monster], []*storage.LinkError) {
	return storage.Build(CategoryMonster, raws, linkMonster(biomes, types, moves))
}
