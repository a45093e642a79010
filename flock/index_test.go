package flock

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/ajpkim/interactive-boids/vector"
)

func randomFlock(t *testing.T, n int, seed int64) *Sim {
	t.Helper()
	p := DefaultParams()
	s := Empty(p, seed)
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		s.AddBoid(vector.New(r.Float64()*200, r.Float64()*200), vector.New(1, 0))
	}
	return s
}

func TestIndexComputesEachPairOnce(t *testing.T) {
	s := randomFlock(t, 40, 7)
	var x Index
	x.Rebuild(s.Boids, Ranges{Align: 50, Cohere: 60, Separate: 20})

	n := len(s.Boids)
	if x.Len() != n {
		t.Fatalf("Len = %d, want %d", x.Len(), n)
	}
	if want := n * (n - 1) / 2; x.Pairs() != want {
		t.Fatalf("Pairs = %d, want %d", x.Pairs(), want)
	}
	for i := 0; i < n; i++ {
		if x.Dist(i, i) != 0 {
			t.Errorf("Dist(%d,%d) = %v", i, i, x.Dist(i, i))
		}
		for j := 0; j < n; j++ {
			if x.Dist(i, j) != x.Dist(j, i) {
				t.Fatalf("Dist(%d,%d)=%v != Dist(%d,%d)=%v", i, j, x.Dist(i, j), j, i, x.Dist(j, i))
			}
			if want := s.Boids[i].Pos.Dist(s.Boids[j].Pos); x.Dist(i, j) != want {
				t.Fatalf("Dist(%d,%d) = %v, want %v", i, j, x.Dist(i, j), want)
			}
		}
	}
}

func TestIndexBucketsMatchBruteForce(t *testing.T) {
	s := randomFlock(t, 60, 11)
	r := Ranges{Align: 40, Cohere: 70, Separate: 15}
	var x Index
	x.Rebuild(s.Boids, r)

	buckets := []struct {
		name   string
		radius float64
		get    func(int) []int
	}{
		{"align", r.Align, x.Align},
		{"cohere", r.Cohere, x.Cohere},
		{"separate", r.Separate, x.Separate},
	}
	for _, bk := range buckets {
		for i, bi := range s.Boids {
			var want []int
			for j, bj := range s.Boids {
				if i != j && bi.Pos.Dist(bj.Pos) <= bk.radius {
					want = append(want, j)
				}
			}
			got := slices.Clone(bk.get(i))
			slices.Sort(got)
			if !slices.Equal(got, want) {
				t.Fatalf("%s bucket of %d = %v, want %v", bk.name, i, got, want)
			}
			for _, j := range got {
				if !slices.Contains(bk.get(j), i) {
					t.Fatalf("%s bucket not symmetric: %d has %d but not the reverse", bk.name, i, j)
				}
			}
		}
	}
}

func TestIndexRadiusIsInclusive(t *testing.T) {
	s := Empty(DefaultParams(), 1)
	s.AddBoid(vector.New(0, 0), vector.New(1, 0))
	s.AddBoid(vector.New(20, 0), vector.New(1, 0))

	var x Index
	x.Rebuild(s.Boids, Ranges{Align: 20, Cohere: 19.999, Separate: 20})
	if !slices.Equal(x.Align(0), []int{1}) || !slices.Equal(x.Separate(1), []int{0}) {
		t.Errorf("pair at exactly the radius missing: align=%v separate=%v", x.Align(0), x.Separate(1))
	}
	if len(x.Cohere(0)) != 0 {
		t.Errorf("pair beyond radius in cohere bucket: %v", x.Cohere(0))
	}
}

func TestIndexRebuildAfterResize(t *testing.T) {
	big := randomFlock(t, 30, 3)
	small := randomFlock(t, 4, 5)
	r := Ranges{Align: 1000, Cohere: 1000, Separate: 1000}

	var x Index
	x.Rebuild(big.Boids, r)
	x.Rebuild(small.Boids, r)
	if x.Len() != 4 || x.Pairs() != 6 {
		t.Fatalf("Len=%d Pairs=%d after shrink", x.Len(), x.Pairs())
	}
	for i := 0; i < 4; i++ {
		if len(x.Align(i)) != 3 {
			t.Fatalf("align bucket %d = %v, want 3 stale-free entries", i, x.Align(i))
		}
	}
	x.Rebuild(big.Boids, r)
	if x.Pairs() != 30*29/2 {
		t.Fatalf("Pairs = %d after regrow", x.Pairs())
	}
}
