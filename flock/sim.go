package flock

import (
	"math"
	"math/rand"
	"slices"

	"github.com/ajpkim/interactive-boids/vector"
)

// Sim owns a boid/predator population. It is not safe for concurrent use;
// the tick driver must serialize Step, Snapshot and population edits.
type Sim struct {
	Boids     []*Boid
	Predators []*Predator

	index Index
	byID  map[uint64]int // boid ID -> position in Boids, rebuilt every Step
	rng   *rand.Rand

	nextID uint64
	tick   uint64

	// population targets last applied from Params
	boidTarget     int
	predatorTarget int
}

// StepStats summarizes one tick.
type StepStats struct {
	Tick      uint64
	Boids     int
	Predators int
	Pairs     int // distances computed by the index
	Eaten     int
	Exploded  int
	Spawned   int
}

// New creates a simulation populated to p's counts. The seed makes runs
// reproducible.
func New(p Params, seed int64) (*Sim, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Sim{
		byID:           make(map[uint64]int),
		rng:            rand.New(rand.NewSource(seed)),
		boidTarget:     -1,
		predatorTarget: -1,
	}
	s.applyTargets(p)
	return s, nil
}

// Empty creates a simulation with no agents whose targets already match p,
// so agents added by hand are not replaced on the first Step.
func Empty(p Params, seed int64) *Sim {
	return &Sim{
		byID:           make(map[uint64]int),
		rng:            rand.New(rand.NewSource(seed)),
		boidTarget:     p.BoidCount,
		predatorTarget: p.PredatorCount,
	}
}

// Tick returns the number of completed steps.
func (s *Sim) Tick() uint64 { return s.tick }

// Index exposes the distance and neighbor index of the last Step.
func (s *Sim) Index() *Index { return &s.index }

// Step advances the simulation by one tick under p: population targets, the
// neighbor index, steering and integration, then predation. p is assumed to
// have passed Validate.
func (s *Sim) Step(p Params) StepStats {
	s.applyTargets(p)
	s.reindex()

	s.index.Rebuild(s.Boids, RangesOf(p))
	stats := StepStats{Pairs: s.index.Pairs()}

	s.steer(p)
	s.predation(p, &stats)

	s.tick++
	stats.Tick = s.tick
	stats.Boids = len(s.Boids)
	stats.Predators = len(s.Predators)
	return stats
}

func (s *Sim) reindex() {
	clear(s.byID)
	for i, b := range s.Boids {
		s.byID[b.ID] = i
	}
}

// applyTargets grows or shrinks a population only when its target changed
// since the last tick, leaving predation in charge of the boid count between
// changes.
func (s *Sim) applyTargets(p Params) {
	if p.BoidCount != s.boidTarget {
		for len(s.Boids) < p.BoidCount {
			s.Boids = append(s.Boids, s.newBoid(s.randomPosition(p), s.randomVelocity(p.Boid)))
		}
		if len(s.Boids) > p.BoidCount {
			clear(s.Boids[p.BoidCount:])
			s.Boids = s.Boids[:p.BoidCount]
		}
		s.boidTarget = p.BoidCount
	}
	if p.PredatorCount != s.predatorTarget {
		for len(s.Predators) < p.PredatorCount {
			s.Predators = append(s.Predators, s.spawnPredator(p))
		}
		if len(s.Predators) > p.PredatorCount {
			clear(s.Predators[p.PredatorCount:])
			s.Predators = s.Predators[:p.PredatorCount]
		}
		s.predatorTarget = p.PredatorCount
	}
}

// AddBoid inserts a boid and returns it.
func (s *Sim) AddBoid(pos, vel vector.Vec2) *Boid {
	b := s.newBoid(pos, vel)
	s.Boids = append(s.Boids, b)
	return b
}

// AddPredator inserts a predator in the Seeking state and returns it.
func (s *Sim) AddPredator(pos, vel vector.Vec2) *Predator {
	pr := newPredator(s.newAgent(pos, vel))
	s.Predators = append(s.Predators, pr)
	return pr
}

// RemoveBoid deletes the boid with id, reporting whether it existed.
func (s *Sim) RemoveBoid(id uint64) bool {
	for i, b := range s.Boids {
		if b.ID == id {
			s.Boids = slices.Delete(s.Boids, i, i+1)
			return true
		}
	}
	return false
}

func (s *Sim) newAgent(pos, vel vector.Vec2) Agent {
	s.nextID++
	return Agent{ID: s.nextID, Pos: pos, Vel: vel}
}

func (s *Sim) newBoid(pos, vel vector.Vec2) *Boid {
	return &Boid{Agent: s.newAgent(pos, vel)}
}

func (s *Sim) spawnPredator(p Params) *Predator {
	return newPredator(s.newAgent(s.randomPosition(p), s.randomVelocity(p.Predator.Class)))
}

func (s *Sim) randomPosition(p Params) vector.Vec2 {
	return vector.New(s.rng.Float64()*p.Width, s.rng.Float64()*p.Height)
}

func (s *Sim) randomVelocity(c Class) vector.Vec2 {
	speed := c.MinSpeed + s.rng.Float64()*(c.MaxSpeed-c.MinSpeed)
	return vector.Polar(s.randomHeading(), speed)
}

func (s *Sim) randomHeading() float64 {
	return s.rng.Float64() * 2 * math.Pi
}
