package entity

import "github.com/shopspring/decimal"

// Tipos de cálculo de un impuesto (amount_type del maestro de impuestos).
const (
	TaxAmountPercent  = "percent"
	TaxAmountFixed    = "fixed"
	TaxAmountGroup    = "group"
	TaxAmountDivision = "division"
)

// Tax es el registro maestro de un impuesto. Amount es un porcentaje cuando AmountType es percent.
type Tax struct {
	ID         int64
	Name       string
	Amount     decimal.Decimal
	AmountType string
}

// IsPercent informa si el impuesto se calcula como porcentaje sobre la base.
// Un AmountType vacío se trata como percent.
func (t Tax) IsPercent() bool {
	return t.AmountType == "" || t.AmountType == TaxAmountPercent
}
