package flock

import (
	"errors"
	"fmt"
	"math"
)

// MinDistance floors distances used as divisors so coincident agents (fresh
// offspring, for instance) never blow up the inverse-square weighting.
const MinDistance = 1e-3

// Class holds the speed bounds of one agent kind.
type Class struct {
	MinSpeed float64 `toml:"min_speed" json:"minSpeed"`
	MaxSpeed float64 `toml:"max_speed" json:"maxSpeed"`
}

// PredatorParams configures predator behavior and the predation lifecycle.
type PredatorParams struct {
	Class
	PerceptionRange  float64 `toml:"perception_range" json:"perceptionRange"`
	CatchRadius      float64 `toml:"catch_radius" json:"catchRadius"`
	ChaseMagnitude   float64 `toml:"chase_magnitude" json:"chaseMagnitude"`
	BrakeFactor      float64 `toml:"brake_factor" json:"brakeFactor"` // fraction of velocity shed per tick without prey
	SlowFactor       float64 `toml:"slow_factor" json:"slowFactor"`   // MaxSpeed multiplier per meal
	TailGrowth       float64 `toml:"tail_growth" json:"tailGrowth"`   // tail length gained per meal
	ExplodeThreshold int     `toml:"explode_threshold" json:"explodeThreshold"`
	ExplodeTicks     int     `toml:"explode_ticks" json:"explodeTicks"`
	SpawnJitter      float64 `toml:"spawn_jitter" json:"spawnJitter"`
}

// Params is the complete per-tick configuration of a simulation. A fresh copy
// is handed to every Step; nothing in the package reads ambient settings.
type Params struct {
	Width      float64 `toml:"width" json:"width"`
	Height     float64 `toml:"height" json:"height"`
	EdgeBuffer float64 `toml:"edge_buffer" json:"edgeBuffer"`

	BoidCount     int `toml:"boid_count" json:"boidCount"`
	PredatorCount int `toml:"predator_count" json:"predatorCount"`

	AlignRange    float64 `toml:"align_range" json:"alignRange"`
	CohereRange   float64 `toml:"cohere_range" json:"cohereRange"`
	SeparateRange float64 `toml:"separate_range" json:"separateRange"`

	AlignMagnitude    float64 `toml:"align_magnitude" json:"alignMagnitude"`
	CohereMagnitude   float64 `toml:"cohere_magnitude" json:"cohereMagnitude"`
	SeparateMagnitude float64 `toml:"separate_magnitude" json:"separateMagnitude"`

	PredatorAvoidRange     float64 `toml:"predator_avoid_range" json:"predatorAvoidRange"`
	PredatorAvoidMagnitude float64 `toml:"predator_avoid_magnitude" json:"predatorAvoidMagnitude"`

	Boid     Class          `toml:"boid" json:"boid"`
	Predator PredatorParams `toml:"predator" json:"predator"`

	// Workers > 1 computes boid forces in parallel chunks.
	Workers int `toml:"workers" json:"workers"`
}

// DefaultParams returns a canvas-sized flock with one predator.
func DefaultParams() Params {
	return Params{
		Width:      800,
		Height:     600,
		EdgeBuffer: 10,

		BoidCount:     120,
		PredatorCount: 1,

		AlignRange:    50,
		CohereRange:   50,
		SeparateRange: 25,

		AlignMagnitude:    0.05,
		CohereMagnitude:   0.04,
		SeparateMagnitude: 0.08,

		PredatorAvoidRange:     80,
		PredatorAvoidMagnitude: 0.3,

		Boid: Class{MinSpeed: 1.5, MaxSpeed: 3.5},
		Predator: PredatorParams{
			Class:            Class{MinSpeed: 0.1, MaxSpeed: 3.2},
			PerceptionRange:  150,
			CatchRadius:      6,
			ChaseMagnitude:   0.15,
			BrakeFactor:      0.05,
			SlowFactor:       0.95,
			TailGrowth:       2,
			ExplodeThreshold: 8,
			ExplodeTicks:     30,
			SpawnJitter:      3,
		},
		Workers: 1,
	}
}

// Validate reports every invalid setting, joined into one error.
func (p Params) Validate() error {
	var errs []error
	if p.Width <= 0 || p.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas %gx%g must be positive", p.Width, p.Height))
	}
	if p.BoidCount < 0 || p.PredatorCount < 0 {
		errs = append(errs, fmt.Errorf("population counts must not be negative (boids %d, predators %d)", p.BoidCount, p.PredatorCount))
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"edge_buffer", p.EdgeBuffer},
		{"align_range", p.AlignRange},
		{"cohere_range", p.CohereRange},
		{"separate_range", p.SeparateRange},
		{"align_magnitude", p.AlignMagnitude},
		{"cohere_magnitude", p.CohereMagnitude},
		{"separate_magnitude", p.SeparateMagnitude},
		{"predator_avoid_range", p.PredatorAvoidRange},
		{"predator_avoid_magnitude", p.PredatorAvoidMagnitude},
		{"perception_range", p.Predator.PerceptionRange},
		{"catch_radius", p.Predator.CatchRadius},
		{"chase_magnitude", p.Predator.ChaseMagnitude},
		{"tail_growth", p.Predator.TailGrowth},
		{"spawn_jitter", p.Predator.SpawnJitter},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			errs = append(errs, fmt.Errorf("%s = %g must be a finite non-negative number", f.name, f.v))
		}
	}
	if err := p.Boid.validate("boid"); err != nil {
		errs = append(errs, err)
	}
	if err := p.Predator.Class.validate("predator"); err != nil {
		errs = append(errs, err)
	}
	if p.Predator.BrakeFactor < 0 || p.Predator.BrakeFactor > 1 {
		errs = append(errs, fmt.Errorf("brake_factor = %g must be within [0, 1]", p.Predator.BrakeFactor))
	}
	if p.Predator.SlowFactor <= 0 || p.Predator.SlowFactor > 1 {
		errs = append(errs, fmt.Errorf("slow_factor = %g must be within (0, 1]", p.Predator.SlowFactor))
	}
	if p.Predator.ExplodeThreshold < 1 || p.Predator.ExplodeTicks < 1 {
		errs = append(errs, fmt.Errorf("explode threshold %d and ticks %d must be at least 1",
			p.Predator.ExplodeThreshold, p.Predator.ExplodeTicks))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("flock: invalid params: %w", errors.Join(errs...))
}

func (c Class) validate(name string) error {
	if c.MinSpeed < 0 || c.MaxSpeed <= 0 || c.MinSpeed > c.MaxSpeed {
		return fmt.Errorf("%s speed bounds [%g, %g] must satisfy 0 <= min <= max, max > 0", name, c.MinSpeed, c.MaxSpeed)
	}
	return nil
}
