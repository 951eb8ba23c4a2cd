package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Claves del borrador que el agrupador interpreta; el resto viaja en Extra.
const (
	keyName              = "name"
	keyAccountID         = "account_id"
	keyDateMaturity      = "date_maturity"
	keyDebit             = "debit"
	keyCredit            = "credit"
	keyTaxLineID         = "tax_line_id"
	keyTaxIDs            = "tax_ids"
	keyAnalyticAccountID = "analytic_account_id"
)

// MarshalJSON serializa la tupla como [code, arg, [ids]].
func (c TaxCommand) MarshalJSON() ([]byte, error) {
	ids := c.IDs
	if ids == nil {
		ids = []int64{}
	}
	return json.Marshal([]any{c.Code, c.Arg, ids})
}

// UnmarshalJSON acepta [code], [code, arg] o [code, arg, [ids]]; false/null cuentan como vacío.
func (c *TaxCommand) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("tax command: %w", err)
	}
	if len(parts) == 0 || len(parts) > 3 {
		return fmt.Errorf("tax command: se esperaban 1 a 3 elementos, hay %d", len(parts))
	}
	var out TaxCommand
	if err := json.Unmarshal(parts[0], &out.Code); err != nil {
		return fmt.Errorf("tax command code: %w", err)
	}
	if len(parts) > 1 {
		arg, err := decodeID(parts[1])
		if err != nil {
			return fmt.Errorf("tax command arg: %w", err)
		}
		out.Arg = arg
	}
	if len(parts) > 2 && !isFalsy(parts[2]) {
		if err := json.Unmarshal(parts[2], &out.IDs); err != nil {
			return fmt.Errorf("tax command ids: %w", err)
		}
	}
	*c = out
	return nil
}

// UnmarshalJSON lee un borrador tal como lo produce el colaborador (false = no definido).
func (l *MoveLineDraft) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("move line: %w", err)
	}
	var out MoveLineDraft
	var err error
	if v, ok := take(raw, keyName); ok && !isFalsy(v) {
		if err = json.Unmarshal(v, &out.Name); err != nil {
			return fmt.Errorf("move line name: %w", err)
		}
	}
	if v, ok := take(raw, keyAccountID); ok {
		if out.AccountID, err = decodeID(v); err != nil {
			return fmt.Errorf("move line account_id: %w", err)
		}
	}
	if v, ok := take(raw, keyDateMaturity); ok && !isFalsy(v) {
		if err = json.Unmarshal(v, &out.DateMaturity); err != nil {
			return fmt.Errorf("move line date_maturity: %w", err)
		}
	}
	if v, ok := take(raw, keyDebit); ok {
		if out.Debit, err = decodeAmount(v); err != nil {
			return fmt.Errorf("move line debit: %w", err)
		}
	}
	if v, ok := take(raw, keyCredit); ok {
		if out.Credit, err = decodeAmount(v); err != nil {
			return fmt.Errorf("move line credit: %w", err)
		}
	}
	if v, ok := take(raw, keyTaxLineID); ok {
		if out.TaxLineID, err = decodeID(v); err != nil {
			return fmt.Errorf("move line tax_line_id: %w", err)
		}
	}
	if v, ok := take(raw, keyTaxIDs); ok && !isFalsy(v) {
		if err = json.Unmarshal(v, &out.TaxIDs); err != nil {
			return fmt.Errorf("move line tax_ids: %w", err)
		}
	}
	if v, ok := take(raw, keyAnalyticAccountID); ok {
		if out.AnalyticAccountID, err = decodeID(v); err != nil {
			return fmt.Errorf("move line analytic_account_id: %w", err)
		}
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	*l = out
	return nil
}

// MarshalJSON emite primero las claves conocidas y luego Extra en orden alfabético.
// Montos como números JSON; claves no definidas se omiten salvo name, debit y credit.
// La salida es canónica: false/null no se reproducen y las tuplas de impuestos salen completas.
func (l MoveLineDraft) MarshalJSON() ([]byte, error) {
	w := objectWriter{}
	w.field(keyName, l.Name)
	if l.AccountID != 0 {
		w.field(keyAccountID, l.AccountID)
	}
	if l.DateMaturity != "" {
		w.field(keyDateMaturity, l.DateMaturity)
	}
	w.field(keyDebit, json.Number(l.Debit.String()))
	w.field(keyCredit, json.Number(l.Credit.String()))
	if l.TaxLineID != 0 {
		w.field(keyTaxLineID, l.TaxLineID)
	}
	if len(l.TaxIDs) > 0 {
		w.field(keyTaxIDs, l.TaxIDs)
	}
	if l.AnalyticAccountID != 0 {
		w.field(keyAnalyticAccountID, l.AnalyticAccountID)
	}
	for _, k := range slices.Sorted(maps.Keys(l.Extra)) {
		w.field(k, l.Extra[k])
	}
	return w.close()
}

type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	b, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("campo %s: %w", key, err)
		return
	}
	w.buf.Write(b)
}

func (w *objectWriter) close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

func take(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if ok {
		delete(raw, key)
	}
	return v, ok
}

// isFalsy reconoce null y false, que el colaborador usa para "sin valor".
func isFalsy(v json.RawMessage) bool {
	s := string(bytes.TrimSpace(v))
	return s == "" || s == "null" || s == "false"
}

func decodeID(v json.RawMessage) (int64, error) {
	if isFalsy(v) {
		return 0, nil
	}
	var id int64
	if err := json.Unmarshal(v, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func decodeAmount(v json.RawMessage) (decimal.Decimal, error) {
	if isFalsy(v) {
		return decimal.Zero, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(v); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
