// Package vector provides the 2D vector value type used by the simulation.
//
// Vec2 has pure value semantics: every operation returns a new vector and
// never mutates its receiver, so an agent's velocity can be passed around
// without aliasing a force accumulator. Arithmetic delegates to gonum's r2.
package vector

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrDivideByZero is raised when a vector is divided by exactly zero.
	ErrDivideByZero  = errors.New("vector: divide by zero")
	// ErrTypeMismatch is returned when an operand is neither a Vec2 nor a number.
	ErrTypeMismatch  = errors.New("vector: operand is neither a vector nor a scalar")
	// ErrUnsupportedOp is returned when an operator is not defined for an
	// otherwise valid operand, such as multiplying two vectors.
	ErrUnsupportedOp = errors.New("vector: unsupported operator")
)

// Vec2 is a 2D vector
type Vec2 struct {
	X float64
	Y float64
}

// Zero is the zero vector
var Zero = Vec2{}

// New returns the vector (x, y)
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Polar returns the vector of length r pointing at angle theta (radians).
func Polar(theta, r float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{X: r * cos, Y: r * sin}
}

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2(r2.Add(v.r2(), o.r2())) }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2(r2.Sub(v.r2(), o.r2())) }

// AddScalar adds s to both components.
func (v Vec2) AddScalar(s float64) Vec2 { return Vec2{X: v.X + s, Y: v.Y + s} }

// SubScalar subtracts s from both components.
func (v Vec2) SubScalar(s float64) Vec2 { return Vec2{X: v.X - s, Y: v.Y - s} }

// Scale returns v * f
func (v Vec2) Scale(f float64) Vec2 { return Vec2(r2.Scale(f, v.r2())) }

// Div returns v / d. Dividing by exactly zero is a programming error and panics
// with an error wrapping ErrDivideByZero.
func (v Vec2) Div(d float64) Vec2 {
	if d == 0 {
		panic(fmt.Errorf("%w: %v / 0", ErrDivideByZero, v))
	}
	return Vec2{X: v.X / d, Y: v.Y / d}
}

// Dot returns the dot product of v and o
func (v Vec2) Dot(o Vec2) float64 { return r2.Dot(v.r2(), o.r2()) }

// Mag returns the Euclidean length of v
func (v Vec2) Mag() float64 { return r2.Norm(v.r2()) }

// MagSq returns the squared length of v
func (v Vec2) MagSq() float64 { return r2.Norm2(v.r2()) }

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// SetMag returns v rescaled to length m. The zero vector has no direction and
// is returned unchanged.
func (v Vec2) SetMag(m float64) Vec2 {
	l := v.Mag()
	if l == 0 {
		return v
	}
	return v.Scale(m / l)
}

// Normalize returns the unit vector in the direction of v (zero stays zero).
func (v Vec2) Normalize() Vec2 { return v.SetMag(1) }

// Limit clamps the length of v down to max. It never lengthens v.
func (v Vec2) Limit(max float64) Vec2 {
	if v.MagSq() > max*max {
		return v.SetMag(max)
	}
	return v
}

// Dist returns the Euclidean distance between v and o
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Mag() }

// Heading returns the direction of v in radians, in (-π, π].
func (v Vec2) Heading() float64 { return math.Atan2(v.Y, v.X) }

// Rotate returns v rotated by theta radians around the origin.
func (v Vec2) Rotate(theta float64) Vec2 {
	return Vec2(r2.Rotate(v.r2(), theta, r2.Vec{}))
}

// AngleBetween returns the unsigned angle between v and o in [0, π].
// Either vector being zero yields 0.
func (v Vec2) AngleBetween(o Vec2) float64 {
	den := v.Mag() * o.Mag()
	if den == 0 {
		return 0
	}
	c := v.Dot(o) / den
	// rounding can push |c| slightly past 1
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
