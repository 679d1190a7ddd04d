package geo

import "fmt"

// Money represents a monetary value stored in centavos.
type Money = int64

// FormatBRL renders a Money value as a Brazilian currency string, e.g. "R$ 5,00".
func FormatBRL(v Money) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	reais := v / 100
	cents := v % 100
	return fmt.Sprintf("%sR$ %d,%02d", sign, reais, cents)
}
