package defs

import (
	"fmt"

	"github.com/pixil98/go-bestiary/internal/storage"
)

type MoveCategory string

const (
	MovePhysical MoveCategory = "Physical"
	MoveMagical  MoveCategory = "Magical"
)

func (c *MoveCategory) UnmarshalText(text []byte) error {
	switch MoveCategory(text) {
	case MovePhysical, MoveMagical:
		*c = MoveCategory(text)
	default:
		return fmt.Errorf("unknown move category: %s", text)
	}
	return nil
}

type RawMonsterMove struct {
	Name               string       `json:"def_name" yaml:"def_name"`
	MoveType           string       `json:"move_type_def_name" yaml:"move_type_def_name" jsonschema:"def_name of the MonsterType of this move"`
	BaseMpUsage        float32      `json:"base_mp_usage" yaml:"base_mp_usage"`
	BaseDamage         float32      `json:"base_damage" yaml:"base_damage"`
	BaseAccuracy       float32      `json:"base_accuracy" yaml:"base_accuracy"`
	BaseCritChance     float32      `json:"base_crit_chance" yaml:"base_crit_chance"`
	BaseCritMultiplier float32      `json:"base_crit_multiplier" yaml:"base_crit_multiplier"`
	PostMoveSpeed      float32      `json:"post_move_speed" yaml:"post_move_speed"`
	Category           MoveCategory `json:"category" yaml:"category" jsonschema:"either Physical or Magical"`
}

func (r *RawMonsterMove) DefName() string {
	return r.Name
}

type MonsterMove struct {
	Name               string
	MoveType           storage.Id[*MonsterType]
	BaseMpUsage        float32
	BaseDamage         float32
	BaseAccuracy       float32
	BaseCritChance     float32
	BaseCritMultiplier float32
	PostMoveSpeed      float32
	Category           MoveCategory
}

func (m *MonsterMove) DefName() string {
	return m.Name
}

func linkMonsterMove(types *storage.Database[*MonsterType]) func(*RawMonsterMove, *storage.Links) *MonsterMove {
	return func(r *RawMonsterMove, l *storage.Links) *MonsterMove {
		return &MonsterMove{
			Name:               r.Name,
			MoveType:           storage.Resolve(l, types, "move_type_def_name", r.MoveType),
			BaseMpUsage:        r.BaseMpUsage,
			BaseDamage:         r.BaseDamage,
			BaseAccuracy:       r.BaseAccuracy,
			BaseCritChance:     r.BaseCritChance,
			BaseCritMultiplier: r.BaseCritMultiplier,
			PostMoveSpeed:      r.PostMoveSpeed,
			Category:           r.Category,
		}
	}
}

func (m *MonsterMove) raw(types *storage.Database[*MonsterType]) *RawMonsterMove {
	return &RawMonsterMove{
		Name:               m.Name,
		MoveType:           types.Name(m.MoveType),
		BaseMpUsage:        m.BaseMpUsage,
		BaseDamage:         m.BaseDamage,
		BaseAccuracy:       m.BaseAccuracy,
		BaseCritChance:     m.BaseCritChance,
		BaseCritMultiplier: m.BaseCritMultiplier,
		PostMoveSpeed:      m.PostMoveSpeed,
		Category:           m.Category,
	}
}
