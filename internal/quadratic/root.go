package quadratic

type RootKind string

const (
	Real    RootKind = "real"
	Complex RootKind = "complex"
)

// Root это корень уравнения: вещественный или комплексный.
// У вещественного корня Im всегда равна нулю.
type Root struct {
	Kind RootKind `json:"kind"`
	Re   float64  `json:"re"`
	Im   float64  `json:"im"`
}

type RootPair struct {
	X1 Root `json:"x1"`
	X2 Root `json:"x2"`
}

func RealRoot(x float64) Root {
	return Root{Kind: Real, Re: x}
}

func ComplexRoot(re, im float64) Root {
	return Root{Kind: Complex, Re: re, Im: im}
}

func (r Root) IsReal() bool {
	return r.Kind != Complex
}

// Kind возвращает тип корней пары; оба корня всегда одного типа.
func (p RootPair) Kind() RootKind {
	return p.X1.Kind
}

// Equal сообщает, совпадают ли значения корней пары
func (p RootPair) Equal() bool {
	return p.X1.Re == p.X2.Re && p.X1.Im == p.X2.Im
}

func Add(x, y Root) Root {
	return combine(x.Re+y.Re, x.Im+y.Im, x, y)
}

func Mul(x, y Root) Root {
	return combine(x.Re*y.Re-x.Im*y.Im, x.Re*y.Im+x.Im*y.Re, x, y)
}

func Conj(x Root) Root {
	if x.IsReal() {
		return x
	}
	return ComplexRoot(x.Re, -x.Im)
}

func Scale(k float64, x Root) Root {
	return combine(k*x.Re, k*x.Im, x, x)
}

// Evaluate возвращает значение a·r² + b·r + c.
// Для настоящего корня результат близок к нулю.
func Evaluate(a, b, c float64, r Root) Root {
	sq := Mul(r, r)
	return Add(Add(Scale(a, sq), Scale(b, r)), RealRoot(c))
}

func combine(re, im float64, x, y Root) Root {
	if x.IsReal() && y.IsReal() {
		return RealRoot(re)
	}
	return ComplexRoot(re, im)
}
