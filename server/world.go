package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ajpkim/interactive-boids/flock"
)

// Limits caps the population sizes a World accepts.
type Limits struct {
	MaxBoids     int
	MaxPredators int
}

func (l Limits) check(p flock.Params) error {
	var errs []error
	if p.BoidCount > l.MaxBoids {
		errs = append(errs, fmt.Errorf("boid_count = %d exceeds the limit of %d", p.BoidCount, l.MaxBoids))
	}
	if p.PredatorCount > l.MaxPredators {
		errs = append(errs, fmt.Errorf("predator_count = %d exceeds the limit of %d", p.PredatorCount, l.MaxPredators))
	}
	return errors.Join(errs...)
}

// World holds the simulation and the parameters its next tick runs under.
type World struct {
	mu     sync.RWMutex
	sim    *flock.Sim
	params flock.Params
	limits Limits
}

// NewWorld populates a simulation from p, which must respect lim.
func NewWorld(p flock.Params, seed int64, lim Limits) (*World, error) {
	if err := lim.check(p); err != nil {
		return nil, err
	}
	sim, err := flock.New(p, seed)
	if err != nil {
		return nil, err
	}
	return &World{sim: sim, params: p, limits: lim}, nil
}

// Params returns a copy of the current parameters.
func (w *World) Params() flock.Params {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.params
}

// MergeParams decodes a partial JSON params object over the current
// parameters and installs the result for the next tick. The canvas size and
// worker count belong to the server and cannot be changed by a viewer, and
// population counts must stay within the world's limits. Invalid updates
// leave the current parameters untouched.
func (w *World) MergeParams(raw json.RawMessage) (flock.Params, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.params
	if err := json.Unmarshal(raw, &p); err != nil {
		return w.params, fmt.Errorf("decode params: %w", err)
	}
	p.Width, p.Height = w.params.Width, w.params.Height
	p.Workers = w.params.Workers
	if err := p.Validate(); err != nil {
		return w.params, err
	}
	if err := w.limits.check(p); err != nil {
		return w.params, fmt.Errorf("flock: invalid params: %w", err)
	}
	w.params = p
	return p, nil
}

// Step advances the simulation one tick under a copy of the current params.
func (w *World) Step() flock.StepStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sim.Step(w.params)
}

// State returns the wire form of the current simulation state.
func (w *World) State() StateMsg {
	w.mu.RLock()
	snap := w.sim.Snapshot()
	w.mu.RUnlock()
	return StateFromSnapshot(snap)
}
