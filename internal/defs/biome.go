package defs

import "github.com/pixil98/go-bestiary/internal/storage"

// RawBiome is a biome as authored. Unset bounds are open.
type RawBiome struct {
	Name           string   `json:"def_name" yaml:"def_name"`
	MinHeight      *float32 `json:"min_height,omitempty" yaml:"min_height,omitempty"`
	MaxHeight      *float32 `json:"max_height,omitempty" yaml:"max_height,omitempty"`
	MinHumidity    *float32 `json:"min_humidity,omitempty" yaml:"min_humidity,omitempty"`
	MaxHumidity    *float32 `json:"max_humidity,omitempty" yaml:"max_humidity,omitempty"`
	MinTemperature *float32 `json:"min_temperature,omitempty" yaml:"min_temperature,omitempty"`
	MaxTemperature *float32 `json:"max_temperature,omitempty" yaml:"max_temperature,omitempty"`
}

func (r *RawBiome) DefName() string {
	return r.Name
}

// Biome holds no references, so the linked form carries the same fields.
type Biome struct {
	Name           string
	MinHeight      *float32
	MaxHeight      *float32
	MinHumidity    *float32
	MaxHumidity    *float32
	MinTemperature *float32
	MaxTemperature *float32
}

func (b *Biome) DefName() string {
	return b.Name
}

// Contains reports whether a point with the given climate falls inside the biome.
func (b *Biome) Contains(height, humidity, temperature float32) bool {
	return within(height, b.MinHeight, b.MaxHeight) &&
		within(humidity, b.MinHumidity, b.MaxHumidity) &&
		within(temperature, b.MinTemperature, b.MaxTemperature)
}

func within(v float32, lo, hi *float32) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func linkBiome(r *RawBiome, _ *storage.Links) *Biome {
	return &Biome{
		Name:           r.Name,
		MinHeight:      r.MinHeight,
		MaxHeight:      r.MaxHeight,
		MinHumidity:    r.MinHumidity,
		MaxHumidity:    r.MaxHumidity,
		MinTemperature: r.MinTemperature,
		MaxTemperature: r.MaxTemperature,
	}
}

func (b *Biome) raw() *RawBiome {
	return &RawBiome{
		Name:           b.Name,
		MinHeight:      b.MinHeight,
		MaxHeight:      b.MaxHeight,
		MinHumidity:    b.MinHumidity,
		MaxHumidity:    b.MaxHumidity,
		MinTemperature: b.MinTemperature,
		MaxTemperature: b.MaxTemperature,
	}
}
