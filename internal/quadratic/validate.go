package quadratic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ValidateInput разбирает коэффициент и отклоняет его, если float64
// не совпадает с исходным десятичным числом
func ValidateInput(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty input: %w", ErrNotANumber)
	}

	// ParseFloat понимает шестнадцатеричную запись, десятичный ввод ее не допускает
	if isHex(text) {
		return 0, fmt.Errorf("%q: %w", text, ErrNotANumber)
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q out of range: %w", text, ErrInsufficientPrecision)
		}
		return 0, fmt.Errorf("%q: %w", text, ErrNotANumber)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%q: %w", text, ErrNotANumber)
	}

	// синтаксис уже проверен, apd отказывает только из-за порядка вне своего диапазона
	exact, _, err := apd.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("%q exponent out of range: %w", text, ErrInsufficientPrecision)
	}

	canonical := strconv.FormatFloat(value, 'g', -1, 64)
	back, _, err := apd.NewFromString(canonical)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", canonical, ErrInsufficientPrecision)
	}
	if back.Cmp(exact) != 0 {
		return 0, fmt.Errorf("%q reads back as %s: %w", text, canonical, ErrInsufficientPrecision)
	}

	return value, nil
}

func isHex(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")
}

// ValidateCoefficients проверяет три коэффициента и отдельно a != 0.
func ValidateCoefficients(a, b, c string) (float64, float64, float64, error) {
	av, err := ValidateInput(a)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("a: %w", err)
	}
	if av == 0 {
		return 0, 0, 0, fmt.Errorf("a: %w", ErrNotQuadratic)
	}
	bv, err := ValidateInput(b)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("b: %w", err)
	}
	cv, err := ValidateInput(c)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("c: %w", err)
	}
	return av, bv, cv, nil
}
