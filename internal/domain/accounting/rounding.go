package accounting

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundCurrency redondea un monto a los decimales de la moneda (mitad alejándose de cero).
func RoundCurrency(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// UntaxedFromTotal separa la base de un total con impuesto porcentual incluido:
// base = round(total / (1 + rate/100), places).
// Retorna false si la tasa anula el divisor (rate = -100).
func UntaxedFromTotal(total, rate decimal.Decimal, places int32) (decimal.Decimal, bool) {
	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	if divisor.IsZero() {
		return decimal.Zero, false
	}
	return RoundCurrency(total.Div(divisor), places), true
}

// DebitCredit reparte un monto con signo en débito/crédito (crédito positivo).
func DebitCredit(amount decimal.Decimal) (debit, credit decimal.Decimal) {
	switch amount.Sign() {
	case 1:
		return decimal.Zero, amount
	case -1:
		return amount.Neg(), decimal.Zero
	default:
		return decimal.Zero, decimal.Zero
	}
}
