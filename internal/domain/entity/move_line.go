package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Códigos de comando sobre relaciones many2many del ERP (tupla (code, arg, ids)).
const (
	TaxCommandReplace = 6 // (6, 0, [ids]): reemplaza el conjunto de impuestos por ids
)

// TaxCommand representa la tupla (code, arg, ids) que enlaza impuestos a una línea.
type TaxCommand struct {
	Code int
	Arg  int64
	IDs  []int64
}

// ReplaceTaxes construye el comando (6, 0, ids).
func ReplaceTaxes(ids ...int64) TaxCommand {
	return TaxCommand{Code: TaxCommandReplace, IDs: ids}
}

// LineKind clasifica una línea según su vínculo con impuestos.
type LineKind int

const (
	LineKindCounterpart LineKind = iota // sin vínculo a impuestos (caja, banco, cliente)
	LineKindTaxCharge                   // la línea ES el impuesto (tax_line_id)
	LineKindUntaxedBase                 // la línea está SUJETA al impuesto (tax_ids)
)

func (k LineKind) String() string {
	switch k {
	case LineKindTaxCharge:
		return "tax_charge"
	case LineKindUntaxedBase:
		return "untaxed_base"
	default:
		return "counterpart"
	}
}

// MoveLineDraft es el borrador de una línea de asiento contable antes de persistirse.
// Los identificadores en cero equivalen a "no definido".
type MoveLineDraft struct {
	Name              string
	AccountID         int64
	DateMaturity      string // YYYY-MM-DD; vacío = sin vencimiento
	Debit             decimal.Decimal
	Credit            decimal.Decimal
	TaxLineID         int64
	TaxIDs            []TaxCommand
	AnalyticAccountID int64

	// Extra conserva el resto de claves del borrador para reenviarlas sin cambios.
	Extra map[string]json.RawMessage
}

// HasTaxIDs informa si la línea trae algún id de impuesto en sus comandos.
func (l MoveLineDraft) HasTaxIDs() bool {
	for _, cmd := range l.TaxIDs {
		if len(cmd.IDs) > 0 {
			return true
		}
	}
	return false
}

// Kind devuelve la variante de la línea. tax_line_id tiene prioridad sobre tax_ids.
func (l MoveLineDraft) Kind() LineKind {
	switch {
	case l.TaxLineID != 0:
		return LineKindTaxCharge
	case l.HasTaxIDs():
		return LineKindUntaxedBase
	default:
		return LineKindCounterpart
	}
}

// Balance devuelve credit - debit (convención crédito positivo).
func (l MoveLineDraft) Balance() decimal.Decimal {
	return l.Credit.Sub(l.Debit)
}
