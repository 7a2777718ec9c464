package quadratic

import (
	"math"
	"strconv"
	"strings"
)

// FormatDouble печатает целые значения без дробной части,
// остальные в кратчайшем виде.
func FormatDouble(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	abs := math.Abs(v)
	if math.Trunc(v) == v && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	if abs >= 1e-4 && abs < 1e16 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatRoots печатает корни в виде "x1 = ...\nx2 = ...".
func FormatRoots(p RootPair) string {
	var sb strings.Builder
	sb.WriteString("x1 = ")
	sb.WriteString(FormatRoot(p.X1))

	second := FormatRoot(p.X2)
	if p.Kind() == Complex || second != FormatRoot(p.X1) {
		sb.WriteString("\nx2 = ")
		sb.WriteString(second)
	}
	return sb.String()
}

func FormatRoot(r Root) string {
	if r.IsReal() {
		return FormatDouble(r.Re)
	}

	imag := FormatDouble(math.Abs(r.Im))
	if imag == "1" {
		imag = ""
	}
	re := FormatDouble(r.Re)

	if re == "0" {
		if r.Im < 0 {
			return "-" + imag + "i"
		}
		return imag + "i"
	}
	if r.Im < 0 {
		return re + " - " + imag + "i"
	}
	return re + " + " + imag + "i"
}
