// Package money concentra el redondeo monetario y el formato de moneda
// para las respuestas de la API (estilo es-CO, sin decimales visibles).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Round2 redondea al centavo con half-up (mitad se aleja de cero).
// Para montos no negativos equivale a round-half-up clásico.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal calcula el total de una línea: precio unitario × cantidad,
// redondeado al centavo.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
}

// FormatCOP formatea un monto como moneda colombiana sin decimales,
// igual que el tablero: $ 1.500.
func FormatCOP(d decimal.Decimal) string {
	return printer.Sprintf("$ %d", d.Round(0).IntPart())
}
