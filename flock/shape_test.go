package flock

import (
	"math"
	"testing"

	"github.com/ajpkim/interactive-boids/vector"
)

func TestShapeOfFacingEast(t *testing.T) {
	pos := vector.New(100, 50)
	body := Body{Size: 10, SideAngle: math.Pi / 6, Tail: 4}
	sh := ShapeOf(pos, vector.New(2, 0), body)

	if !near(sh.Heading, 0) || sh.Head != pos {
		t.Fatalf("heading %v head %v", sh.Heading, sh.Head)
	}
	if !nearVec(sh.Tail, vector.New(96, 50)) {
		t.Errorf("tail = %v, want (96, 50)", sh.Tail)
	}
	dx := 10 * math.Cos(math.Pi/6)
	dy := 10 * math.Sin(math.Pi/6)
	if !nearVec(sh.Left, vector.New(100-dx, 50+dy)) {
		t.Errorf("left = %v", sh.Left)
	}
	if !nearVec(sh.Right, vector.New(100-dx, 50-dy)) {
		t.Errorf("right = %v", sh.Right)
	}
	for _, pt := range []vector.Vec2{sh.Left, sh.Right} {
		if d := pt.Dist(pos); !near(d, body.Size) {
			t.Errorf("side point %v at distance %v, want %v", pt, d, body.Size)
		}
	}
}

func TestShapeFollowsVelocity(t *testing.T) {
	sh := ShapeOf(vector.Zero, vector.New(0, -3), BoidBody)
	if !near(sh.Heading, -math.Pi/2) {
		t.Fatalf("heading = %v", sh.Heading)
	}
	// tail sits opposite the direction of travel
	if !nearVec(sh.Tail, vector.New(0, BoidBody.Tail)) {
		t.Errorf("tail = %v", sh.Tail)
	}
}

func TestPredatorBodyGrowsWithTail(t *testing.T) {
	pr := newPredator(Agent{Vel: vector.New(1, 0)})
	b := pr.Body()
	if b.Size != PredatorBaseSize || b.Tail != PredatorBaseSize+PredatorBaseTail {
		t.Fatalf("fresh body = %+v", b)
	}
	pr.TailLength += 4
	if got := pr.Body().Tail; got != PredatorBaseSize+PredatorBaseTail+4 {
		t.Errorf("tail after growth = %v", got)
	}
}

func TestSnapshot(t *testing.T) {
	p := quietParams()
	s := Empty(p, 1)
	s.AddBoid(vector.New(10, 10), vector.New(1, 0))
	s.AddBoid(vector.New(20, 10), vector.New(1, 0))
	calm := s.AddPredator(vector.New(400, 300), vector.New(1, 0))
	boom := s.AddPredator(vector.New(600, 300), vector.New(1, 0))
	boom.State = Exploding{Remaining: 5}
	boom.EatCount = 3
	s.Step(p)

	snap := s.Snapshot()
	if snap.Tick != 1 || len(snap.Boids) != 2 || len(snap.Predators) != 2 {
		t.Fatalf("snapshot tick %d with %d boids, %d predators", snap.Tick, len(snap.Boids), len(snap.Predators))
	}
	for i, bv := range snap.Boids {
		if bv.ID != s.Boids[i].ID || bv.Shape.Head != s.Boids[i].Pos {
			t.Errorf("boid view %d = %+v", i, bv)
		}
	}
	c, e := snap.Predators[0], snap.Predators[1]
	if c.ID != calm.ID || c.Exploding || c.State != "seeking" || c.Color != PredatorColor {
		t.Errorf("calm predator view = %+v", c)
	}
	if e.ID != boom.ID || !e.Exploding || e.State != "exploding" || e.EatCount != 3 {
		t.Errorf("exploding predator view = %+v", e)
	}
}
