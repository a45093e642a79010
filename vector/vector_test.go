package vector

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestArithmeticDoesNotMutate(t *testing.T) {
	v := New(3, 4)
	w := New(1, 2)

	if got := v.Add(w); got != New(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Sub(w); got != New(2, 2) {
		t.Errorf("Sub = %v", got)
	}
	if got := v.SubScalar(1); got != New(2, 3) {
		t.Errorf("SubScalar = %v", got)
	}
	if got := v.AddScalar(1); got != New(4, 5) {
		t.Errorf("AddScalar = %v", got)
	}
	if got := v.Scale(2); got != New(6, 8) {
		t.Errorf("Scale = %v", got)
	}
	if got := v.Div(2); got != New(1.5, 2) {
		t.Errorf("Div = %v", got)
	}
	if v != New(3, 4) {
		t.Fatalf("receiver mutated: %v", v)
	}
}

func TestMagnitude(t *testing.T) {
	v := New(3, 4)
	if v.Mag() != 5 || v.MagSq() != 25 {
		t.Fatalf("Mag=%v MagSq=%v", v.Mag(), v.MagSq())
	}
	if got := v.SetMag(10); !near(got.X, 6) || !near(got.Y, 8) {
		t.Errorf("SetMag = %v", got)
	}
	if got := Zero.SetMag(3); got != Zero {
		t.Errorf("SetMag on zero = %v", got)
	}
	if got := v.Normalize(); !near(got.Mag(), 1) {
		t.Errorf("Normalize length = %v", got.Mag())
	}
	if got := v.Limit(1); !near(got.Mag(), 1) {
		t.Errorf("Limit down = %v", got)
	}
	if got := v.Limit(100); got != v {
		t.Errorf("Limit must never lengthen: %v", got)
	}
}

func TestDistDotAngles(t *testing.T) {
	if d := New(0, 0).Dist(New(3, 4)); d != 5 {
		t.Errorf("Dist = %v", d)
	}
	if d := New(1, 2).Dot(New(3, 4)); d != 11 {
		t.Errorf("Dot = %v", d)
	}
	if a := New(1, 0).AngleBetween(New(0, 5)); !near(a, math.Pi/2) {
		t.Errorf("AngleBetween perpendicular = %v", a)
	}
	if a := New(2, 0).AngleBetween(New(-1, 0)); !near(a, math.Pi) {
		t.Errorf("AngleBetween opposite = %v", a)
	}
	if a := New(1, 1).AngleBetween(New(2, 2)); !near(a, 0) {
		t.Errorf("AngleBetween parallel = %v", a)
	}
	if a := Zero.AngleBetween(New(1, 0)); a != 0 {
		t.Errorf("AngleBetween zero = %v", a)
	}
	if h := New(0, 1).Heading(); !near(h, math.Pi/2) {
		t.Errorf("Heading = %v", h)
	}
	r := New(1, 0).Rotate(math.Pi / 2)
	if !near(r.X, 0) || !near(r.Y, 1) {
		t.Errorf("Rotate = %v", r)
	}
	p := Polar(math.Pi, 2)
	if !near(p.X, -2) || !near(p.Y, 0) {
		t.Errorf("Polar = %v", p)
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDivideByZero) {
			t.Fatalf("recovered %v, want ErrDivideByZero", r)
		}
	}()
	New(1, 1).Div(0)
}

func TestApply(t *testing.T) {
	v := New(2, 4)
	tests := []struct {
		name    string
		op      Op
		operand any
		want    Vec2
		err     error
	}{
		{"add vector", OpAdd, New(1, 1), New(3, 5), nil},
		{"sub vector pointer", OpSub, &Vec2{X: 1, Y: 1}, New(1, 3), nil},
		{"add int", OpAdd, 1, New(3, 5), nil},
		{"sub float", OpSub, 0.5, New(1.5, 3.5), nil},
		{"mul float32", OpMul, float32(2), New(4, 8), nil},
		{"div int64", OpDiv, int64(2), New(1, 2), nil},
		{"div zero", OpDiv, 0, Zero, ErrDivideByZero},
		{"string operand", OpAdd, "3", Zero, ErrTypeMismatch},
		{"nil operand", OpMul, nil, Zero, ErrTypeMismatch},
		{"mul by vector", OpMul, New(1, 1), Zero, ErrUnsupportedOp},
		{"div by vector pointer", OpDiv, &Vec2{X: 1, Y: 1}, Zero, ErrUnsupportedOp},
		{"unknown operator", Op('%'), 2, Zero, ErrUnsupportedOp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Apply(tt.op, tt.operand)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				// a vector operand is never a type mismatch
				if tt.err == ErrUnsupportedOp && errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("err = %v also matches ErrTypeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
