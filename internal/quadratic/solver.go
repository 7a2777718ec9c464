package quadratic

import (
	"fmt"
	"math"
)

type Solver struct {
	sqrt func(float64) float64
}

func NewSolver() *Solver {
	return &Solver{sqrt: SqrtNewton}
}

// NewSolverWithSqrt создает решатель с заданной функцией квадратного корня
func NewSolverWithSqrt(sqrt func(float64) float64) *Solver {
	if sqrt == nil {
		sqrt = SqrtNewton
	}
	return &Solver{sqrt: sqrt}
}

func Solve(a, b, c float64) (RootPair, error) {
	return NewSolver().Solve(a, b, c)
}

func Discriminant(a, b, c float64) float64 {
	return b*b - 4*a*c
}

// Sign возвращает 1 для положительного b и -1 иначе, в том числе для нуля
func Sign(b float64) float64 {
	if b > 0 {
		return 1
	}
	return -1
}

func (s *Solver) Solve(a, b, c float64) (RootPair, error) {
	if a == 0 {
		return RootPair{}, ErrNotQuadratic
	}

	d := Discriminant(a, b, c)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return RootPair{}, fmt.Errorf("discriminant %v: %w", d, ErrInsufficientPrecision)
	}

	if d < 0 {
		sqrt := s.sqrt(-d)
		re := -b / (2 * a)
		im := sqrt / (2 * a)
		return checkFinite(RootPair{X1: ComplexRoot(re, im), X2: ComplexRoot(re, -im)})
	}

	sqrt := s.sqrt(d)
	// b и sqrt(D) складываются с одним знаком
	q := -0.5 * (b + Sign(b)*sqrt)
	if q == 0 {
		if c != 0 {
			return RootPair{}, ErrInvalidState
		}
		return RootPair{X1: RealRoot(0), X2: RealRoot(0)}, nil
	}

	return checkFinite(RootPair{X1: RealRoot(q / a), X2: RealRoot(c / q)})
}

// checkFinite отклоняет пару, если при делении корень вышел за пределы float64
func checkFinite(p RootPair) (RootPair, error) {
	for _, v := range []float64{p.X1.Re, p.X1.Im, p.X2.Re, p.X2.Im} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return RootPair{}, fmt.Errorf("root %v: %w", v, ErrInsufficientPrecision)
		}
	}
	return p, nil
}
