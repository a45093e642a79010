package flock

import (
	"image/color"
	"math"

	"github.com/ajpkim/interactive-boids/vector"
)

// PredatorState is the lifecycle state of a predator: Seeking, Chasing or
// Exploding. Eating is the transition taken within a single tick.
type PredatorState interface {
	state() string
}

// Seeking predators have no prey and brake.
type Seeking struct{}

// Chasing predators steer toward the boid with PreyID.
type Chasing struct {
	PreyID uint64
}

// Exploding predators count down Remaining ticks before being replaced.
type Exploding struct {
	Remaining int
}

func (Seeking) state() string   { return "seeking" }
func (Chasing) state() string   { return "chasing" }
func (Exploding) state() string { return "exploding" }

// StateName returns a short lowercase name of st.
func StateName(st PredatorState) string { return st.state() }

// Predator body defaults and explosion palette.
const (
	PredatorBaseSize = 14.0
	PredatorBaseTail = 8.0
	predatorGrowth   = 1.0  // size gained per meal
	explodeGrowth    = 1.06 // size multiplier per exploding tick
)

var (
	PredatorColor = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	ExplodeColor  = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
)

// Predator hunts boids.
type Predator struct {
	Agent
	State    PredatorState
	EatCount int

	// SpeedScale shrinks with every meal; the effective MaxSpeed is
	// Params.Predator.MaxSpeed * SpeedScale, never below MinSpeed.
	SpeedScale float64
	TailLength float64
	Size       float64
	Color      color.RGBA
}

func newPredator(a Agent) *Predator {
	return &Predator{
		Agent:      a,
		State:      Seeking{},
		SpeedScale: 1,
		TailLength: PredatorBaseTail,
		Size:       PredatorBaseSize,
		Color:      PredatorColor,
	}
}

// IsExploding reports whether the predator is in its explosion countdown.
func (pr *Predator) IsExploding() bool {
	_, ok := pr.State.(Exploding)
	return ok
}

func (pr *Predator) class(p Params) Class {
	return Class{
		MinSpeed: p.Predator.MinSpeed,
		MaxSpeed: math.Max(p.Predator.MinSpeed, p.Predator.MaxSpeed*pr.SpeedScale),
	}
}

// eat records a meal and moves to Seeking or Exploding.
func (pr *Predator) eat(p Params) {
	pr.EatCount++
	if pr.EatCount >= p.Predator.ExplodeThreshold {
		pr.State = Exploding{Remaining: p.Predator.ExplodeTicks}
		pr.Vel = pr.Vel.SetMag(p.Predator.MinSpeed)
		return
	}
	pr.State = Seeking{}
	pr.TailLength += p.Predator.TailGrowth
	pr.Size += predatorGrowth
	pr.SpeedScale *= p.Predator.SlowFactor
	pr.Vel = pr.Vel.Limit(pr.class(p).MaxSpeed)
}

// explodeStep advances the countdown by one tick and reports whether it has
// run out. Color fades toward ExplodeColor and the body swells.
func (pr *Predator) explodeStep(p Params) bool {
	st := pr.State.(Exploding)
	st.Remaining--
	pr.State = st

	total := float64(p.Predator.ExplodeTicks)
	t := 1.0
	if total > 0 {
		t = math.Min(1, 1-float64(st.Remaining)/total)
	}
	pr.Color = lerpColor(PredatorColor, ExplodeColor, t)
	pr.Size *= explodeGrowth
	return st.Remaining <= 0
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// lockPrey re-validates the predator's prey and reacquires when it was eaten,
// removed or left perception range. It returns the prey's position in
// s.Boids, or -1 after falling back to Seeking.
func (s *Sim) lockPrey(pr *Predator, claimed map[uint64]bool, p Params) int {
	rng := p.Predator.PerceptionRange
	if c, ok := pr.State.(Chasing); ok && !claimed[c.PreyID] {
		if i, ok := s.byID[c.PreyID]; ok && pr.Pos.Dist(s.Boids[i].Pos) <= rng {
			return i
		}
	}
	for i, b := range s.Boids {
		if claimed[b.ID] {
			continue
		}
		if pr.Pos.Dist(b.Pos) <= rng {
			pr.State = Chasing{PreyID: b.ID}
			return i
		}
	}
	pr.State = Seeking{}
	return -1
}

// predation runs every predator's lifecycle for this tick. Eaten boids and
// exploded predators are collected during the pass and the population is
// changed only afterwards.
func (s *Sim) predation(p Params, stats *StepStats) {
	claimed := make(map[uint64]bool)
	var exploded []*Predator

	for _, pr := range s.Predators {
		if pr.IsExploding() {
			if pr.explodeStep(p) {
				exploded = append(exploded, pr)
			}
			continue
		}
		i := s.lockPrey(pr, claimed, p)
		if i < 0 {
			continue
		}
		prey := s.Boids[i]
		if pr.Pos.Dist(prey.Pos) < p.Predator.CatchRadius {
			claimed[prey.ID] = true
			pr.eat(p)
			stats.Eaten++
		}
	}

	if len(claimed) > 0 {
		kept := s.Boids[:0]
		for _, b := range s.Boids {
			if !claimed[b.ID] {
				kept = append(kept, b)
			}
		}
		clear(s.Boids[len(kept):])
		s.Boids = kept
	}

	for _, pr := range exploded {
		s.replacePredator(pr, p, stats)
	}
}

// replacePredator swaps an exploded predator for a fresh one and spawns its
// offspring around its last position.
func (s *Sim) replacePredator(old *Predator, p Params, stats *StepStats) {
	for i, pr := range s.Predators {
		if pr == old {
			s.Predators[i] = s.spawnPredator(p)
			break
		}
	}
	j := p.Predator.SpawnJitter
	for k := 0; k < old.EatCount; k++ {
		offset := vector.New(s.rng.Float64()*2*j-j, s.rng.Float64()*2*j-j)
		s.Boids = append(s.Boids, s.newBoid(old.Pos.Add(offset), s.randomVelocity(p.Boid)))
		stats.Spawned++
	}
	stats.Exploded++
}
