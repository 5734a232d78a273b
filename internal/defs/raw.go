// Package defs holds the game definition categories and builds them into a
// linked Catalog.
package defs

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-bestiary/internal/storage"
	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

const (
	CategoryBiome       storage.Category = "Biome"
	CategoryMonsterType storage.Category = "MonsterType"
	CategoryMonsterMove storage.Category = "MonsterMove"
	CategoryMonster     storage.Category = "Monster"
)

// Categories lists every category in build order.
var Categories = []storage.Category{
	CategoryBiome,
	CategoryMonsterType,
	CategoryMonsterMove,
	CategoryMonster,
}

// RawDef is one entry of a data file. Exactly one field is set, chosen by
// the entry's "type" tag.
type RawDef struct {
	Biome       *RawBiome
	MonsterType *RawMonsterType
	MonsterMove *RawMonsterMove
	Monster     *RawMonster
}

type rawTag struct {
	Type storage.Category `json:"type" yaml:"type"`
}

func (d *RawDef) target(c storage.Category) (any, error) {
	switch c {
	case CategoryBiome:
		d.Biome = &RawBiome{}
		return d.Biome, nil
	case CategoryMonsterType:
		d.MonsterType = &RawMonsterType{}
		return d.MonsterType, nil
	case CategoryMonsterMove:
		d.MonsterMove = &RawMonsterMove{}
		return d.MonsterMove, nil
	case CategoryMonster:
		d.Monster = &RawMonster{}
		return d.Monster, nil
	case "":
		return nil, fmt.Errorf("def type is required")
	default:
		return nil, fmt.Errorf("unknown def type %q", c)
	}
}

func (d *RawDef) UnmarshalJSON(b []byte) error {
	var tag rawTag
	if err := json.Unmarshal(b, &tag); err != nil {
		return err
	}
	*d = RawDef{}
	v, err := d.target(tag.Type)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func (d *RawDef) UnmarshalYAML(node *yaml.Node) error {
	var tag rawTag
	if err := node.Decode(&tag); err != nil {
		return err
	}
	*d = RawDef{}
	v, err := d.target(tag.Type)
	if err != nil {
		return err
	}
	return node.Decode(v)
}

func (d RawDef) MarshalJSON() ([]byte, error) {
	in := d.inner()
	if in == nil {
		return nil, fmt.Errorf("def type is required")
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(d.Category())
	if err != nil {
		return nil, err
	}

	out := []byte(`{"type":`)
	out = append(out, tag...)
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

func (d *RawDef) inner() storage.Definition {
	switch {
	case d.Biome != nil:
		return d.Biome
	case d.MonsterType != nil:
		return d.MonsterType
	case d.MonsterMove != nil:
		return d.MonsterMove
	case d.Monster != nil:
		return d.Monster
	}
	return nil
}

// Category returns the category of the set field, or "" if none is set.
func (d *RawDef) Category() storage.Category {
	switch {
	case d.Biome != nil:
		return CategoryBiome
	case d.MonsterType != nil:
		return CategoryMonsterType
	case d.MonsterMove != nil:
		return CategoryMonsterMove
	case d.Monster != nil:
		return CategoryMonster
	}
	return ""
}

func (d *RawDef) DefName() string {
	if in := d.inner(); in != nil {
		return in.DefName()
	}
	return ""
}

// Validate satisfies storage.ValidatingSpec. Only what the registry relies on
// is checked here; references are checked when linking.
func (d *RawDef) Validate() error {
	if d == nil {
		return fmt.Errorf("def is empty")
	}

	el := errors.NewErrorList()

	set := 0
	for _, ok := range []bool{d.Biome != nil, d.MonsterType != nil, d.MonsterMove != nil, d.Monster != nil} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		el.Add(fmt.Errorf("def type is required"))
	case set > 1:
		el.Add(fmt.Errorf("def must have exactly one type"))
	case d.DefName() == "":
		el.Add(fmt.Errorf("%s def_name is required", d.Category()))
	}

	return el.Err()
}
