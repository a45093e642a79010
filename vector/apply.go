package vector

import "fmt"

// Op is an arithmetic operator accepted by Apply
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

// Apply combines v with an untyped operand. Vec2 operands work component-wise
// for + and -; numeric operands work for all four operators. Any other operand
// yields ErrTypeMismatch, * or / with a vector yields ErrUnsupportedOp, and a
// zero divisor yields ErrDivideByZero.
func (v Vec2) Apply(op Op, operand any) (Vec2, error) {
	switch o := operand.(type) {
	case Vec2:
		switch op {
		case OpAdd:
			return v.Add(o), nil
		case OpSub:
			return v.Sub(o), nil
		}
		return Zero, fmt.Errorf("%w: %c with a vector operand", ErrUnsupportedOp, op)
	case *Vec2:
		if o == nil {
			return Zero, fmt.Errorf("%w: nil vector", ErrTypeMismatch)
		}
		return v.Apply(op, *o)
	}

	s, ok := scalar(operand)
	if !ok {
		return Zero, fmt.Errorf("%w: %T", ErrTypeMismatch, operand)
	}
	switch op {
	case OpAdd:
		return v.AddScalar(s), nil
	case OpSub:
		return v.SubScalar(s), nil
	case OpMul:
		return v.Scale(s), nil
	case OpDiv:
		if s == 0 {
			return Zero, fmt.Errorf("%w: %v / 0", ErrDivideByZero, v)
		}
		return v.Div(s), nil
	}
	return Zero, fmt.Errorf("%w: %q", ErrUnsupportedOp, op)
}

func scalar(x any) (float64, bool) {
	switch n := x.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
