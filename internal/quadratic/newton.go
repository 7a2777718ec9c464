package quadratic

import "math"

// Tolerance это разница между соседними приближениями,
// при которой SqrtNewton останавливается
const Tolerance = 1e-8

// SqrtNewton вычисляет квадратный корень методом Ньютона.
// value не может быть отрицательным.
func SqrtNewton(value float64) float64 {
	if value == 0 {
		return 0
	}
	if math.IsInf(value, 1) || math.IsNaN(value) {
		return value
	}

	previous := (1 + value) / 2
	for {
		result := (previous + value/previous) / 2
		// начальное приближение не меньше корня, поэтому приближения
		// только убывают; если нет, дальше работает только округление
		if math.Abs(previous-result) < Tolerance || result >= previous {
			return result
		}
		previous = result
	}
}
