package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

func TestMoveVals_ConservaOrdenDeClaves(t *testing.T) {
	in := `{"ref": "POS/1", "grouped_data": {"zeta": [{"name": "a"}], "alfa": [{"name": "b"}, {"name": "c"}], "mu": []}, "journal_id": 3}`
	var v entity.MoveVals
	require.NoError(t, json.Unmarshal([]byte(in), &v))

	require.Len(t, v.GroupedData, 3)
	assert.Equal(t, "zeta", v.GroupedData[0].Key)
	assert.Equal(t, "alfa", v.GroupedData[1].Key)
	assert.Equal(t, "mu", v.GroupedData[2].Key)

	flat := v.GroupedData.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{flat[0].Name, flat[1].Name, flat[2].Name})

	require.Len(t, v.Extra, 2)
	assert.JSONEq(t, `"POS/1"`, string(v.Extra["ref"]))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t,
		`{"grouped_data":{"zeta":[{"name":"a","debit":0,"credit":0}],"alfa":[{"name":"b","debit":0,"credit":0},{"name":"c","debit":0,"credit":0}],"mu":[]},"journal_id":3,"ref":"POS/1"}`,
		string(out))
}

func TestMoveVals_SinGroupedData(t *testing.T) {
	var v entity.MoveVals
	require.NoError(t, json.Unmarshal([]byte(`{"grouped_data": false}`), &v))
	assert.Empty(t, v.GroupedData)
	assert.Empty(t, v.GroupedData.Flatten())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"grouped_data":{}}`, string(out))
}

func TestMoveVals_Errores(t *testing.T) {
	for _, in := range []string{
		`[]`,
		`{"grouped_data": []}`,
		`{"grouped_data": {"k": {"name": "x"}}}`,
	} {
		var v entity.MoveVals
		assert.Error(t, json.Unmarshal([]byte(in), &v), in)
	}
}
