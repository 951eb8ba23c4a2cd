package posclose_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
	"github.com/jhoicas/pos-close-by-tax/internal/domain"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/infrastructure/catalogfile"
	"github.com/jhoicas/pos-close-by-tax/pkg/logger"
)

type mockGrouper struct {
	mock.Mock
}

func (m *mockGrouper) GroupByTax(ctx context.Context, companyID int64, lines []entity.MoveLineDraft) (*accounting.GroupingResult, error) {
	args := m.Called(ctx, companyID, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.GroupingResult), args.Error(1)
}

const catalogYAML = `
companies:
  - id: 1
    name: Tienda
    currency: {id: 8, name: USD, decimal_places: 2}
taxes:
  - {id: 10, name: VAT 10%, amount: 10}
`

// Valores tal como los produce el colaborador: varias claves, false para "sin valor".
const moveValsJSON = `{
  "name": "POS/0042",
  "grouped_data": {
    "sale_key": [
      {"name": "Coffee", "account_id": 400, "credit": 60, "debit": 0, "tax_ids": [[6, 0, [10]]], "analytic_account_id": false, "partner_id": false, "quantity": 2},
      {"name": "Bread", "account_id": 400, "credit": 40, "debit": 0, "tax_ids": [[6, 0, [10]]], "partner_id": false, "quantity": 1}
    ],
    "tax_key": [
      {"name": "VAT 10%", "account_id": 240, "credit": 10, "debit": 0, "tax_line_id": 10, "date_maturity": false}
    ],
    "counter_part": [
      {"name": "Trade Receivables", "account_id": 110, "debit": 110, "credit": 0, "partner_id": 7}
    ]
  }
}`

func newCatalogUseCase(t *testing.T) *posclose.PrepareMoveUseCase {
	t.Helper()
	cat, err := catalogfile.Parse(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	grouper := accounting.NewTaxGrouper(cat.Taxes(), cat.Companies(), posclose.NewLineLabels("en"))
	return posclose.NewPrepareMoveUseCase(grouper, logger.NewNop())
}

func TestGroupMoveVals_AgrupaYReindexa(t *testing.T) {
	uc := newCatalogUseCase(t)
	var vals entity.MoveVals
	require.NoError(t, json.Unmarshal([]byte(moveValsJSON), &vals))

	res, err := uc.GroupMoveVals(context.Background(), 1, "POS/0042", vals)
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, res.Grouping.Collapsed())

	gd := res.Vals.GroupedData
	require.Len(t, gd, 3)
	assert.Equal(t, "VAT 10%: untaxed amount 0", gd[0].Key)
	assert.Equal(t, "VAT 10%: tax 1", gd[1].Key)
	assert.Equal(t, "Trade Receivables 2", gd[2].Key)
	for _, g := range gd {
		assert.Len(t, g.Lines, 1, "una línea por clave")
	}
	assert.Equal(t, vals.Extra, res.Vals.Extra, "el resto de valores del asiento no cambia")

	out, err := json.Marshal(res.Vals)
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "name": "POS/0042",
	  "grouped_data": {
	    "VAT 10%: untaxed amount 0": [{"name": "VAT 10%: untaxed amount", "account_id": 400, "debit": 0, "credit": 100, "tax_ids": [[6, 0, [10]]]}],
	    "VAT 10%: tax 1": [{"name": "VAT 10%: tax", "account_id": 240, "debit": 0, "credit": 10, "tax_line_id": 10}],
	    "Trade Receivables 2": [{"name": "Trade Receivables", "account_id": 110, "debit": 110, "credit": 0, "partner_id": 7}]
	  }
	}`, string(out))
}

func TestGroupMoveVals_SinLineasDevuelveValsIntactos(t *testing.T) {
	g := &mockGrouper{}
	uc := posclose.NewPrepareMoveUseCase(g, logger.NewNop())
	vals := entity.MoveVals{GroupedData: entity.GroupedData{{Key: "vacío"}}}

	res, err := uc.GroupMoveVals(context.Background(), 1, "POS/1", vals)
	require.NoError(t, err)
	assert.Equal(t, vals, res.Vals)
	assert.Equal(t, accounting.ReasonEmptyInput, res.Grouping.Aborted)
	g.AssertNotCalled(t, "GroupByTax", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupMoveVals_AbortoTambienReindexa(t *testing.T) {
	lines := []entity.MoveLineDraft{
		{Name: "A", AccountID: 1},
		{Name: "A", AccountID: 2},
	}
	g := &mockGrouper{}
	g.On("GroupByTax", mock.Anything, int64(3), lines).
		Return(&accounting.GroupingResult{Lines: lines, Aborted: accounting.ReasonMultipleTaxes}, nil)
	uc := posclose.NewPrepareMoveUseCase(g, nil)

	vals := entity.MoveVals{GroupedData: entity.GroupedData{{Key: "k1", Lines: lines[:1]}, {Key: "k2", Lines: lines[1:]}}}
	res, err := uc.GroupMoveVals(context.Background(), 3, "POS/2", vals)
	require.NoError(t, err)

	require.Len(t, res.Vals.GroupedData, 2)
	assert.Equal(t, "A 0", res.Vals.GroupedData[0].Key)
	assert.Equal(t, "A 1", res.Vals.GroupedData[1].Key, "nombres repetidos siguen dando claves únicas")
	assert.Equal(t, lines[1], res.Vals.GroupedData[1].Lines[0])
	g.AssertExpectations(t)
}

func TestGroupMoveVals_PropagaErrorDeMaestros(t *testing.T) {
	g := &mockGrouper{}
	g.On("GroupByTax", mock.Anything, int64(1), mock.Anything).Return(nil, domain.ErrNotFound)
	uc := posclose.NewPrepareMoveUseCase(g, logger.NewNop())

	vals := entity.MoveVals{GroupedData: entity.GroupedData{{Key: "k", Lines: []entity.MoveLineDraft{{Name: "x"}}}}}
	_, err := uc.GroupMoveVals(context.Background(), 1, "POS/3", vals)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
