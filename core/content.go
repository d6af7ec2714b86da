package core

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML scalars like "2s" or "500ms"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts back to the standard library type
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// PathSpec tunes how an agent approaches its attack target
// Kind is "beeline" or "strafe"; CircularKind is "linear" or "angular"
type PathSpec struct {
	Kind             string  `yaml:"kind"`
	Velocity         float64 `yaml:"velocity"`
	RadialVelocity   float64 `yaml:"radial_velocity"`
	CircularKind     string  `yaml:"circular_kind"`
	CircularVelocity float64 `yaml:"circular_velocity"`
}

// WalkSpec tunes procedural leg stepping for walkers
type WalkSpec struct {
	Legs          [][3]float64 `yaml:"legs"` // Foot anchors in body space
	ScareDistance float64      `yaml:"scare_distance"`
	StepDuration  float64      `yaml:"step_duration"`
	StepHeight    float64      `yaml:"step_height"`
}

// AgentDefinition is one spawnable enemy archetype as loaded from data
// Enum-like fields stay strings here; the spawn layer converts and
// rejects unknown values
type AgentDefinition struct {
	Name         string             `yaml:"-"`
	Kind         string             `yaml:"kind"`
	Health       float64            `yaml:"health"`
	Resists      map[string]float64 `yaml:"resists"`
	Radius       float64            `yaml:"radius"`
	MaxVelocity  float64            `yaml:"max_velocity"`
	FireCooldown Duration           `yaml:"fire_cooldown"`
	Hand         [3]float64         `yaml:"hand"` // Dominant weapon mount in body space
	OffHand      [3]float64         `yaml:"off_hand"`
	Tree         string             `yaml:"tree"`
	Path         *PathSpec          `yaml:"path"`
	Walk         *WalkSpec          `yaml:"walk"`
}

// AgentCatalog is an immutable snapshot of all loaded definitions
// Generation increments on each reload so consumers can detect swaps
type AgentCatalog struct {
	Agents     map[string]AgentDefinition
	Generation int64
}

// Lookup returns a definition by name
func (c *AgentCatalog) Lookup(name string) (AgentDefinition, bool) {
	def, ok := c.Agents[name]
	return def, ok
}
