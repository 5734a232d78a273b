package defs

import (
	"fmt"

	"github.com/pixil98/go-bestiary/internal/storage"
)

type RawSpawnLocation struct {
	Biome string `json:"biome_def" yaml:"biome_def" jsonschema:"def_name of the Biome the monster spawns in"`
}

// RawMonster is a monster species as authored.
type RawMonster struct {
	Name           string             `json:"def_name" yaml:"def_name"`
	ModelPath      string             `json:"model_path" yaml:"model_path" jsonschema:"path of the model asset, loaded by the renderer"`
	Experience     uint64             `json:"experience,omitempty" yaml:"experience,omitempty"`
	Types          []string           `json:"type_def_names,omitempty" yaml:"type_def_names,omitempty" jsonschema:"def_names of the MonsterTypes of this monster"`
	Moves          []string           `json:"move_def_names,omitempty" yaml:"move_def_names,omitempty" jsonschema:"def_names of the MonsterMoves this monster knows"`
	SpawnLocations []RawSpawnLocation `json:"spawn_locations" yaml:"spawn_locations"`
}

func (r *RawMonster) DefName() string {
	return r.Name
}

type SpawnLocation struct {
	Biome storage.Id[*Biome]
}

type Monster struct {
	Name           string
	ModelPath      string
	Experience     uint64
	Types          []storage.Id[*MonsterType]
	Moves          []storage.Id[*MonsterMove]
	SpawnLocations []SpawnLocation
}

func (m *Monster) DefName() string {
	return m.Name
}

// CanSpawnIn reports whether the monster lists biome as a spawn location.
func (m *Monster) CanSpawnIn(biome storage.Id[*Biome]) bool {
	for _, loc := range m.SpawnLocations {
		if loc.Biome == biome {
			return true
		}
	}
	return false
}

func linkMonster(
	biomes *storage.Database[*Biome],
	types *storage.Database[*MonsterType],
	moves *storage.Database[*MonsterMove],
) func(*RawMonster, *storage.Links) *Monster {
	return func(r *RawMonster, l *storage.Links) *Monster {
		m := &Monster{
			Name:       r.Name,
			ModelPath:  r.ModelPath,
			Experience: r.Experience,
		}
		for i, name := range r.Types {
			m.Types = append(m.Types, storage.Resolve(l, types, fmt.Sprintf("type_def_names[%d]", i), name))
		}
		for i, name := range r.Moves {
			m.Moves = append(m.Moves, storage.Resolve(l, moves, fmt.Sprintf("move_def_names[%d]", i), name))
		}
		for i, loc := range r.SpawnLocations {
			slot := fmt.Sprintf("spawn_locations[%d].biome_def", i)
			m.SpawnLocations = append(m.SpawnLocations, SpawnLocation{
				Biome: storage.Resolve(l, biomes, slot, loc.Biome),
			})
		}
		return m
	}
}

func (m *Monster) raw(c *Catalog) *RawMonster {
	r := &RawMonster{
		Name:       m.Name,
		ModelPath:  m.ModelPath,
		Experience: m.Experience,
	}
	for _, id := range m.Types {
		r.Types = append(r.Types, c.MonsterTypes.Name(id))
	}
	for _, id := range m.Moves {
		r.Moves = append(r.Moves, c.MonsterMoves.Name(id))
	}
	for _, loc := range m.SpawnLocations {
		r.SpawnLocations = append(r.SpawnLocations, RawSpawnLocation{Biome: c.Biomes.Name(loc.Biome)})
	}
	return r
}
