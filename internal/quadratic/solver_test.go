package quadratic_test

import (
	"errors"
	"math"
	"sort"
	"testing"

	"quadsolver/internal/quadratic"
)

const eps = 1e-8

func near(got, want float64) bool {
	return math.Abs(got-want) <= eps*math.Max(1, math.Abs(want))
}

func nearRoot(got, want quadratic.Root) bool {
	return got.Kind == want.Kind && near(got.Re, want.Re) && near(got.Im, want.Im)
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    quadratic.RootPair
	}{
		{
			name: "два различных вещественных корня",
			a:    1, b: -3, c: 2,
			want: quadratic.RootPair{X1: quadratic.RealRoot(2), X2: quadratic.RealRoot(1)},
		},
		{
			name: "кратный корень",
			a:    1, b: 2, c: 1,
			want: quadratic.RootPair{X1: quadratic.RealRoot(-1), X2: quadratic.RealRoot(-1)},
		},
		{
			name: "комплексно-сопряженные корни",
			a:    1, b: 2, c: 5,
			want: quadratic.RootPair{X1: quadratic.ComplexRoot(-1, 2), X2: quadratic.ComplexRoot(-1, -2)},
		},
		{
			name: "b равно нулю",
			a:    1, b: 0, c: -4,
			want: quadratic.RootPair{X1: quadratic.RealRoot(2), X2: quadratic.RealRoot(-2)},
		},
		{
			name: "b и c равны нулю",
			a:    3, b: 0, c: 0,
			want: quadratic.RootPair{X1: quadratic.RealRoot(0), X2: quadratic.RealRoot(0)},
		},
		{
			name: "отрицательный a",
			a:    -2, b: 4, c: 6,
			want: quadratic.RootPair{X1: quadratic.RealRoot(3), X2: quadratic.RealRoot(-1)},
		},
		{
			name: "чисто мнимые корни",
			a:    1, b: 0, c: 4,
			want: quadratic.RootPair{X1: quadratic.ComplexRoot(0, 2), X2: quadratic.ComplexRoot(0, -2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quadratic.Solve(tt.a, tt.b, tt.c)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if !nearRoot(got.X1, tt.want.X1) || !nearRoot(got.X2, tt.want.X2) {
				t.Errorf("Solve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		wantErr error
	}{
		{name: "a равно нулю", a: 0, b: 1, c: 1, wantErr: quadratic.ErrNotQuadratic},
		{name: "дискриминант NaN", a: 1e200, b: 1e200, c: 1e200, wantErr: quadratic.ErrInsufficientPrecision},
		{name: "NaN коэффициент", a: math.NaN(), b: 1, c: 1, wantErr: quadratic.ErrInsufficientPrecision},
		{name: "бесконечный дискриминант", a: 1, b: 1e200, c: 1, wantErr: quadratic.ErrInsufficientPrecision},
		{name: "переполнение при делении на a", a: 1e-310, b: 1e10, c: 1, wantErr: quadratic.ErrInsufficientPrecision},
		{name: "переполнение большого корня", a: 1e-310, b: 1, c: 1e300, wantErr: quadratic.ErrInsufficientPrecision},
		{name: "переполнение мнимой части", a: 5e-324, b: 0, c: 1e300, wantErr: quadratic.ErrInsufficientPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quadratic.Solve(tt.a, tt.b, tt.c)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Solve() = %+v, error = %v, want %v", got, err, tt.wantErr)
			}
		})
	}
}

func TestSolveInvalidState(t *testing.T) {
	solver := quadratic.NewSolverWithSqrt(func(float64) float64 { return 0 })

	_, err := solver.Solve(1, 0, -4)
	if !errors.Is(err, quadratic.ErrInvalidState) {
		t.Fatalf("Solve() error = %v, want %v", err, quadratic.ErrInvalidState)
	}
	if kind := quadratic.ErrorKind(err); kind != quadratic.KindInvalidState {
		t.Errorf("ErrorKind() = %v, want %v", kind, quadratic.KindInvalidState)
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		b    float64
		want float64
	}{
		{b: 5, want: 1},
		{b: 1e-300, want: 1},
		{b: -5, want: -1},
		{b: 0, want: -1},
		{b: math.Copysign(0, -1), want: -1},
	}

	for _, tt := range tests {
		if got := quadratic.Sign(tt.b); got != tt.want {
			t.Errorf("Sign(%v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

var coefficients = [][3]float64{
	{1, -3, 2},
	{1, 2, 1},
	{1, 2, 5},
	{1, 0, -4},
	{2, 7, 3},
	{-3, 1, 10},
	{0.5, -0.25, -2},
	{1, 1e4, 1},
	{4, 4, 17},
	{1e-3, 1, 1},
	{7, -2, 0},
}

func TestSolveRootsSatisfyEquation(t *testing.T) {
	for _, k := range coefficients {
		a, b, c := k[0], k[1], k[2]
		pair, err := quadratic.Solve(a, b, c)
		if err != nil {
			t.Fatalf("Solve(%v, %v, %v) error = %v", a, b, c, err)
		}

		scale := math.Max(math.Abs(a), math.Max(math.Abs(b), math.Abs(c)))
		for _, r := range []quadratic.Root{pair.X1, pair.X2} {
			v := quadratic.Evaluate(a, b, c, r)
			mag := math.Max(1, math.Hypot(r.Re, r.Im))
			if math.Hypot(v.Re, v.Im) > eps*scale*mag*mag {
				t.Errorf("Solve(%v, %v, %v): residual at %+v is %+v", a, b, c, r, v)
			}
		}
	}
}

func TestSolveVieta(t *testing.T) {
	for _, k := range coefficients {
		a, b, c := k[0], k[1], k[2]
		pair, err := quadratic.Solve(a, b, c)
		if err != nil {
			t.Fatalf("Solve(%v, %v, %v) error = %v", a, b, c, err)
		}

		sum := quadratic.Add(pair.X1, pair.X2)
		if !near(sum.Re, -b/a) || !near(sum.Im, 0) {
			t.Errorf("Solve(%v, %v, %v): x1+x2 = %+v, want %v", a, b, c, sum, -b/a)
		}
		product := quadratic.Mul(pair.X1, pair.X2)
		if !near(product.Re, c/a) || !near(product.Im, 0) {
			t.Errorf("Solve(%v, %v, %v): x1*x2 = %+v, want %v", a, b, c, product, c/a)
		}
	}
}

func sortedRoots(p quadratic.RootPair) []quadratic.Root {
	roots := []quadratic.Root{p.X1, p.X2}
	sort.Slice(roots, func(i, j int) bool {
		if roots[i].Re != roots[j].Re {
			return roots[i].Re < roots[j].Re
		}
		return roots[i].Im < roots[j].Im
	})
	return roots
}

func TestSolveScaleInvariance(t *testing.T) {
	for _, k := range coefficients {
		a, b, c := k[0], k[1], k[2]
		base, err := quadratic.Solve(a, b, c)
		if err != nil {
			t.Fatalf("Solve(%v, %v, %v) error = %v", a, b, c, err)
		}
		want := sortedRoots(base)

		for _, scale := range []float64{2, -1, 0.001, -37.5} {
			scaled, err := quadratic.Solve(scale*a, scale*b, scale*c)
			if err != nil {
				t.Fatalf("Solve() scaled by %v error = %v", scale, err)
			}
			got := sortedRoots(scaled)
			for i := range got {
				if !nearRoot(got[i], want[i]) {
					t.Errorf("Solve(%v, %v, %v) scaled by %v = %+v, want %+v", a, b, c, scale, got, want)
					break
				}
			}
		}
	}
}

func TestSolveDiscriminantKind(t *testing.T) {
	for _, k := range coefficients {
		a, b, c := k[0], k[1], k[2]
		pair, err := quadratic.Solve(a, b, c)
		if err != nil {
			t.Fatalf("Solve(%v, %v, %v) error = %v", a, b, c, err)
		}

		d := quadratic.Discriminant(a, b, c)
		switch {
		case d > 0:
			if pair.Kind() != quadratic.Real || pair.Equal() {
				t.Errorf("D > 0 for (%v, %v, %v), got %+v", a, b, c, pair)
			}
		case d == 0:
			if pair.Kind() != quadratic.Real || !pair.Equal() {
				t.Errorf("D == 0 for (%v, %v, %v), got %+v", a, b, c, pair)
			}
		default:
			if pair.Kind() != quadratic.Complex || pair.X2 != quadratic.Conj(pair.X1) {
				t.Errorf("D < 0 for (%v, %v, %v), got %+v", a, b, c, pair)
			}
		}
		if pair.X1.Kind != pair.X2.Kind {
			t.Errorf("mixed root kinds for (%v, %v, %v): %+v", a, b, c, pair)
		}
	}
}
