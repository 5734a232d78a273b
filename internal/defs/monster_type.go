package defs

import (
	"fmt"

	"github.com/pixil98/go-bestiary/internal/storage"
)

type RawDamageScale struct {
	DamageScale float32 `json:"damage_scale" yaml:"damage_scale" jsonschema:"multiplier applied to damage dealt to the target type"`
	TargetType  string  `json:"target_type_def_name" yaml:"target_type_def_name" jsonschema:"def_name of the MonsterType being hit"`
}

// RawMonsterType is an elemental type as authored. Damage scales may name
// types that appear later in the data, or the type itself.
type RawMonsterType struct {
	Name         string           `json:"def_name" yaml:"def_name"`
	DamageScales []RawDamageScale `json:"damage_scales" yaml:"damage_scales"`
}

func (r *RawMonsterType) DefName() string {
	return r.Name
}

type DamageScale struct {
	Scale  float32
	Target storage.Id[*MonsterType]
}

type MonsterType struct {
	Name         string
	DamageScales []DamageScale
}

func (t *MonsterType) DefName() string {
	return t.Name
}

// ScaleAgainst returns the damage multiplier of this type against target.
// Types with no matching scale deal normal damage.
func (t *MonsterType) ScaleAgainst(target storage.Id[*MonsterType]) float32 {
	scale := float32(1)
	for _, ds := range t.DamageScales {
		if ds.Target == target {
			scale *= ds.Scale
		}
	}
	return scale
}

func stubMonsterType(r *RawMonsterType) *MonsterType {
	return &MonsterType{Name: r.Name}
}

func linkMonsterType(r *RawMonsterType, l *storage.Links, types *storage.Database[*MonsterType]) *MonsterType {
	t := &MonsterType{
		Name:         r.Name,
		DamageScales: make([]DamageScale, 0, len(r.DamageScales)),
	}
	for i, ds := range r.DamageScales {
		slot := fmt.Sprintf("damage_scales[%d].target_type_def_name", i)
		t.DamageScales = append(t.DamageScales, DamageScale{
			Scale:  ds.DamageScale,
			Target: storage.Resolve(l, types, slot, ds.TargetType),
		})
	}
	return t
}

func (t *MonsterType) raw(types *storage.Database[*MonsterType]) *RawMonsterType {
	r := &RawMonsterType{
		Name:         t.Name,
		DamageScales: make([]RawDamageScale, 0, len(t.DamageScales)),
	}
	for _, ds := range t.DamageScales {
		r.DamageScales = append(r.DamageScales, RawDamageScale{
			DamageScale: ds.Scale,
			TargetType:  types.Name(ds.Target),
		})
	}
	return r
}
