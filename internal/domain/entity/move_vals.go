package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

const keyGroupedData = "grouped_data"

// LineGroup es una entrada de grouped_data: clave arbitraria y sus borradores.
type LineGroup struct {
	Key   string
	Lines []MoveLineDraft
}

// GroupedData conserva el orden de inserción de las claves (el JSON de entrada manda).
type GroupedData []LineGroup

// MoveVals son los valores que el colaborador prepara para crear el asiento de un pedido.
// Solo grouped_data se interpreta; el resto de claves viaja en Extra.
type MoveVals struct {
	GroupedData GroupedData
	Extra       map[string]json.RawMessage
}

// Flatten devuelve todos los borradores de todas las claves, en orden.
func (g GroupedData) Flatten() []MoveLineDraft {
	var n int
	for _, grp := range g {
		n += len(grp.Lines)
	}
	out := make([]MoveLineDraft, 0, n)
	for _, grp := range g {
		out = append(out, grp.Lines...)
	}
	return out
}

// UnmarshalJSON lee el objeto clave -> lista de borradores respetando el orden de claves.
func (g *GroupedData) UnmarshalJSON(data []byte) error {
	if isFalsy(data) {
		*g = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("grouped_data: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("grouped_data: se esperaba un objeto")
	}
	var out GroupedData
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("grouped_data: %w", err)
		}
		key, _ := tok.(string)
		var lines []MoveLineDraft
		if err := dec.Decode(&lines); err != nil {
			return fmt.Errorf("grouped_data[%s]: %w", key, err)
		}
		out = append(out, LineGroup{Key: key, Lines: lines})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("grouped_data: %w", err)
	}
	*g = out
	return nil
}

// MarshalJSON emite el objeto en el orden de GroupedData.
func (g GroupedData) MarshalJSON() ([]byte, error) {
	w := objectWriter{}
	for _, grp := range g {
		lines := grp.Lines
		if lines == nil {
			lines = []MoveLineDraft{}
		}
		w.field(grp.Key, lines)
	}
	return w.close()
}

// UnmarshalJSON separa grouped_data del resto de valores del asiento.
func (v *MoveVals) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("move vals: %w", err)
	}
	var out MoveVals
	if gd, ok := take(raw, keyGroupedData); ok {
		if err := json.Unmarshal(gd, &out.GroupedData); err != nil {
			return err
		}
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	*v = out
	return nil
}

// MarshalJSON emite grouped_data seguido del resto de claves en orden alfabético.
func (v MoveVals) MarshalJSON() ([]byte, error) {
	w := objectWriter{}
	w.field(keyGroupedData, v.GroupedData)
	for _, k := range slices.Sorted(maps.Keys(v.Extra)) {
		w.field(k, v.Extra[k])
	}
	return w.close()
}
