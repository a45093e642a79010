package flock

import (
	"image/color"
	"math"

	"github.com/ajpkim/interactive-boids/vector"
)

// Body describes the triangle an agent is drawn as: two side points Size
// behind the head at ±SideAngle off the reverse heading, and a tail point
// Tail behind the head.
type Body struct {
	Size      float64
	SideAngle float64
	Tail      float64
}

// BoidBody is the body of every boid.
var BoidBody = Body{Size: 10, SideAngle: math.Pi / 9, Tail: 6}

const predatorSideAngle = math.Pi / 7

// Shape is the drawing geometry of one agent.
type Shape struct {
	Heading float64 // radians, from velocity
	Head    vector.Vec2
	Left    vector.Vec2
	Right   vector.Vec2
	Tail    vector.Vec2
}

// ShapeOf derives the drawing geometry of an agent at pos moving along vel.
func ShapeOf(pos, vel vector.Vec2, body Body) Shape {
	h := vel.Heading()
	back := h + math.Pi
	return Shape{
		Heading: h,
		Head:    pos,
		Left:    pos.Add(vector.Polar(back-body.SideAngle, body.Size)),
		Right:   pos.Add(vector.Polar(back+body.SideAngle, body.Size)),
		Tail:    pos.Add(vector.Polar(back, body.Tail)),
	}
}

// Body returns the predator's current body, grown by its meals.
func (pr *Predator) Body() Body {
	return Body{Size: pr.Size, SideAngle: predatorSideAngle, Tail: pr.Size + pr.TailLength}
}

// BoidView is what a renderer needs to draw a boid.
type BoidView struct {
	ID    uint64
	Shape Shape
}

// PredatorView is what a renderer needs to draw a predator.
type PredatorView struct {
	ID        uint64
	Shape     Shape
	Color     color.RGBA
	State     string
	EatCount  int
	Exploding bool
}

// Snapshot is the drawable state of the simulation after a tick.
type Snapshot struct {
	Tick      uint64
	Boids     []BoidView
	Predators []PredatorView
}

// Snapshot returns the drawing geometry of every agent.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Boids:     make([]BoidView, len(s.Boids)),
		Predators: make([]PredatorView, len(s.Predators)),
	}
	for i, b := range s.Boids {
		snap.Boids[i] = BoidView{ID: b.ID, Shape: ShapeOf(b.Pos, b.Vel, BoidBody)}
	}
	for i, pr := range s.Predators {
		snap.Predators[i] = PredatorView{
			ID:        pr.ID,
			Shape:     ShapeOf(pr.Pos, pr.Vel, pr.Body()),
			Color:     pr.Color,
			State:     StateName(pr.State),
			EatCount:  pr.EatCount,
			Exploding: pr.IsExploding(),
		}
	}
	return snap
}
