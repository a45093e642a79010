package flock

// Ranges are the interaction radii of the three neighbor buckets.
type Ranges struct {
	Align    float64
	Cohere   float64
	Separate float64
}

// RangesOf extracts the bucket radii from p.
func RangesOf(p Params) Ranges {
	return Ranges{Align: p.AlignRange, Cohere: p.CohereRange, Separate: p.SeparateRange}
}

// Index is the per-tick distance cache and neighbor buckets for a flock.
// Entries are tick-local positions into the boid slice it was rebuilt from;
// they are meaningless once the population changes.
type Index struct {
	n        int
	dist     []float64 // n×n, symmetric
	align    [][]int
	cohere   [][]int
	separate [][]int
	pairs    int
}

// Rebuild recomputes every pairwise distance once and rebuilds all buckets
// from the boids' current positions. A pair belongs to a bucket when its
// distance is within that bucket's radius (inclusive); both sides are
// updated from the single computation.
func (x *Index) Rebuild(boids []*Boid, r Ranges) {
	n := len(boids)
	x.resize(n)
	x.pairs = 0

	for i := 0; i < n; i++ {
		x.dist[i*n+i] = 0
		x.align[i] = x.align[i][:0]
		x.cohere[i] = x.cohere[i][:0]
		x.separate[i] = x.separate[i][:0]
	}

	for i := 0; i < n; i++ {
		pi := boids[i].Pos
		for j := i + 1; j < n; j++ {
			d := pi.Dist(boids[j].Pos)
			x.dist[i*n+j] = d
			x.dist[j*n+i] = d
			x.pairs++

			if d <= r.Align {
				x.align[i] = append(x.align[i], j)
				x.align[j] = append(x.align[j], i)
			}
			if d <= r.Cohere {
				x.cohere[i] = append(x.cohere[i], j)
				x.cohere[j] = append(x.cohere[j], i)
			}
			if d <= r.Separate {
				x.separate[i] = append(x.separate[i], j)
				x.separate[j] = append(x.separate[j], i)
			}
		}
	}
}

// resize keeps the backing arrays, growing them only when n grows.
func (x *Index) resize(n int) {
	x.n = n
	if cap(x.dist) < n*n {
		x.dist = make([]float64, n*n)
	}
	x.dist = x.dist[:n*n]
	for len(x.align) < n {
		x.align = append(x.align, nil)
		x.cohere = append(x.cohere, nil)
		x.separate = append(x.separate, nil)
	}
	x.align = x.align[:n]
	x.cohere = x.cohere[:n]
	x.separate = x.separate[:n]
}

// Len is the number of boids indexed by the last Rebuild.
func (x *Index) Len() int { return x.n }

// Pairs is the number of distances computed by the last Rebuild.
func (x *Index) Pairs() int { return x.pairs }

// Dist returns the cached distance between boids i and j.
func (x *Index) Dist(i, j int) float64 { return x.dist[i*x.n+j] }

// Align returns the align bucket of boid i.
func (x *Index) Align(i int) []int { return x.align[i] }

// Cohere returns the cohere bucket of boid i.
func (x *Index) Cohere(i int) []int { return x.cohere[i] }

// Separate returns the separate bucket of boid i.
func (x *Index) Separate(i int) []int { return x.separate[i] }
