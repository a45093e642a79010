package flock

import (
	"sync"

	"github.com/ajpkim/interactive-boids/vector"
)

// align steers toward the mean velocity of the align bucket.
func align(self *Boid, boids []*Boid, mates []int, mag float64) vector.Vec2 {
	if len(mates) == 0 {
		return vector.Zero
	}
	var sum vector.Vec2
	for _, j := range mates {
		sum = sum.Add(boids[j].Vel)
	}
	return sum.Div(float64(len(mates))).Sub(self.Vel).SetMag(mag)
}

// cohere steers toward the centroid of the cohere bucket.
func cohere(self *Boid, boids []*Boid, mates []int, mag float64) vector.Vec2 {
	if len(mates) == 0 {
		return vector.Zero
	}
	var sum vector.Vec2
	for _, j := range mates {
		sum = sum.Add(boids[j].Pos)
	}
	return sum.Div(float64(len(mates))).Sub(self.Pos).Sub(self.Vel).SetMag(mag)
}

// separate pushes away from the separate bucket, closer neighbors harder.
func separate(i int, boids []*Boid, x *Index, mag float64) vector.Vec2 {
	mates := x.Separate(i)
	if len(mates) == 0 {
		return vector.Zero
	}
	self := boids[i]
	var sum vector.Vec2
	for _, j := range mates {
		sum = sum.Add(inverseSquare(self.Pos.Sub(boids[j].Pos), x.Dist(i, j)))
	}
	return sum.Sub(self.Vel).SetMag(mag)
}

// avoidPredators repels a boid from every predator within range. The sum is
// only rescaled when non-zero.
func avoidPredators(self *Boid, predators []*Predator, rng, mag float64) vector.Vec2 {
	var sum vector.Vec2
	for _, pr := range predators {
		d := self.Pos.Dist(pr.Pos)
		if d > rng {
			continue
		}
		sum = sum.Add(inverseSquare(self.Pos.Sub(pr.Pos), d))
	}
	if sum.IsZero() {
		return vector.Zero
	}
	return sum.SetMag(mag)
}

// boidForce is the combined steering force on boid i for this tick.
func (s *Sim) boidForce(i int, p Params) vector.Vec2 {
	b := s.Boids[i]
	f := align(b, s.Boids, s.index.Align(i), p.AlignMagnitude).
		Add(cohere(b, s.Boids, s.index.Cohere(i), p.CohereMagnitude)).
		Add(separate(i, s.Boids, &s.index, p.SeparateMagnitude))
	if len(s.Predators) > 0 {
		f = f.Add(avoidPredators(b, s.Predators, p.PredatorAvoidRange, p.PredatorAvoidMagnitude))
	}
	return f
}

// predatorForce chases the locked prey while it is still present and within
// perception range, brakes otherwise, and holds a near-standstill while
// exploding.
func (s *Sim) predatorForce(pr *Predator, p Params) vector.Vec2 {
	switch st := pr.State.(type) {
	case Chasing:
		if i, ok := s.byID[st.PreyID]; ok {
			to := s.Boids[i].Pos.Sub(pr.Pos)
			if to.Mag() <= p.Predator.PerceptionRange {
				return to.SetMag(p.Predator.ChaseMagnitude)
			}
		}
	case Exploding:
		return pr.Vel.SetMag(p.Predator.MinSpeed).Sub(pr.Vel)
	}
	return pr.Vel.Scale(-p.Predator.BrakeFactor)
}

// steer computes every agent's force from start-of-tick state, then
// integrates all agents. The index must already be rebuilt.
func (s *Sim) steer(p Params) {
	s.computeBoidForces(p)
	for _, pr := range s.Predators {
		pr.Acc = pr.Acc.Add(s.predatorForce(pr, p))
	}

	for _, b := range s.Boids {
		b.integrate(p.Boid, p, s.randomHeading())
	}
	for _, pr := range s.Predators {
		pr.integrate(pr.class(p), p, s.randomHeading())
	}
}

// computeBoidForces fills every boid's accumulator, in parallel chunks when
// p.Workers > 1. Each worker only writes the accumulators of its own chunk.
func (s *Sim) computeBoidForces(p Params) {
	n := len(s.Boids)
	if p.Workers <= 1 || n < 2*p.Workers {
		for i, b := range s.Boids {
			b.Acc = b.Acc.Add(s.boidForce(i, p))
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + p.Workers - 1) / p.Workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				s.Boids[i].Acc = s.Boids[i].Acc.Add(s.boidForce(i, p))
			}
		}(lo, hi)
	}
	wg.Wait()
}
