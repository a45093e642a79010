// Package flock is the boids simulation kernel: agent state, the per-tick
// distance and neighbor index, the steering engine and the predation
// lifecycle. A Sim is driven one tick at a time through Step; drawing,
// scheduling and parameter input belong to the caller.
package flock

import (
	"math"

	"github.com/ajpkim/interactive-boids/vector"
)

// Agent is the kinematic state shared by boids and predators.
type Agent struct {
	ID  uint64
	Pos vector.Vec2
	Vel vector.Vec2
	Acc vector.Vec2 // per-tick accumulator, zero between ticks
}

// Boid is a flocking agent. Its neighbor buckets live in the Index, keyed by
// the boid's position in Sim.Boids for the current tick.
type Boid struct {
	Agent
}

// integrate applies the accumulated force, clamps speed to c, moves, wraps
// around the canvas and clears the accumulator. heading is used only when the
// new velocity is exactly zero and must be given a direction to meet MinSpeed.
func (a *Agent) integrate(c Class, p Params, heading float64) {
	a.Vel = clampSpeed(a.Vel.Add(a.Acc), c, heading)
	a.Pos = wrap(a.Pos.Add(a.Vel), p)
	a.Acc = vector.Zero
}

// clampSpeed enforces the floor before the ceiling.
func clampSpeed(v vector.Vec2, c Class, heading float64) vector.Vec2 {
	if v.IsZero() && c.MinSpeed > 0 {
		v = vector.Polar(heading, c.MinSpeed)
	}
	if v.MagSq() < c.MinSpeed*c.MinSpeed {
		v = v.SetMag(c.MinSpeed)
	}
	return v.Limit(c.MaxSpeed)
}

// wrap teleports a position to the opposite edge once it has left the canvas
// by more than EdgeBuffer. Entry and exit thresholds differ by the buffer.
func wrap(pos vector.Vec2, p Params) vector.Vec2 {
	switch {
	case pos.X+p.EdgeBuffer < 0:
		pos.X = p.Width
	case pos.X-p.EdgeBuffer > p.Width:
		pos.X = 0
	}
	switch {
	case pos.Y+p.EdgeBuffer < 0:
		pos.Y = p.Height
	case pos.Y-p.EdgeBuffer > p.Height:
		pos.Y = 0
	}
	return pos
}

// inverseSquare returns diff weighted by 1/d², flooring d at MinDistance.
func inverseSquare(diff vector.Vec2, d float64) vector.Vec2 {
	d = math.Max(d, MinDistance)
	return diff.Div(d * d)
}
