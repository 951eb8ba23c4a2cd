package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-close-by-tax/internal/application/dto"
	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/infrastructure/catalogfile"
	apphttp "github.com/jhoicas/pos-close-by-tax/internal/interfaces/http"
	"github.com/jhoicas/pos-close-by-tax/pkg/logger"
)

const handlerCatalog = `
companies:
  - id: 1
    name: Tienda
    currency: {id: 8, name: COP, decimal_places: 2}
taxes:
  - {id: 19, name: IVA 19%, amount: 19}
`

func buildRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	cat, err := catalogfile.Parse(strings.NewReader(handlerCatalog))
	require.NoError(t, err)
	grouper := accounting.NewTaxGrouper(cat.Taxes(), cat.Companies(), posclose.NewLineLabels("es"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		PrepareMove: posclose.NewPrepareMoveUseCase(grouper, logger.NewNop()),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
	})
	return app
}

func postGroupByTax(t *testing.T, app *fiber.App, authHeader, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/pos/move-lines/group-by-tax", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealth_Publico(t *testing.T) {
	app := buildRouterApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGroupByTax_Consolida(t *testing.T) {
	app := buildRouterApp(t)
	body := `{
	  "order_ref": "Shop/0007",
	  "move_vals": {
	    "ref": "Shop/0007",
	    "grouped_data": {
	      "a": [{"name": "Café", "account_id": 4135, "credit": 50, "debit": 0, "tax_ids": [[6, false, [19]]]}],
	      "b": [{"name": "Pan", "account_id": 4135, "credit": 50, "debit": 0, "tax_ids": [[6, false, [19]]]}],
	      "c": [{"name": "IVA 19%", "account_id": 2408, "credit": 19, "debit": 0, "tax_line_id": 19}],
	      "d": [{"name": "Caja", "account_id": 1105, "debit": 119, "credit": 0}]
	    }
	  }
	}`
	resp := postGroupByTax(t, app, bearer(t, testCompanyID, testExpMin), body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.GroupByTaxResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Shop/0007", out.OrderRef)
	assert.NotEmpty(t, out.RunID)
	assert.Empty(t, out.Report.Aborted)
	assert.Equal(t, 4, out.Report.LinesIn)
	assert.Equal(t, 3, out.Report.LinesOut)
	require.Len(t, out.Report.Groups, 1)
	assert.True(t, out.Report.Groups[0].Collapsed)
	assert.Equal(t, "119", out.Report.Groups[0].Total)

	gd := out.MoveVals.GroupedData
	require.Len(t, gd, 3)
	assert.Equal(t, "IVA 19%: base imponible 0", gd[0].Key)
	assert.Equal(t, "100", gd[0].Lines[0].Credit.String())
	assert.Equal(t, "IVA 19%: impuesto 1", gd[1].Key)
	assert.Equal(t, "19", gd[1].Lines[0].Credit.String())
	assert.Equal(t, "Caja 2", gd[2].Key)
	assert.Contains(t, out.MoveVals.Extra, "ref")
}

func TestGroupByTax_Errores(t *testing.T) {
	app := buildRouterApp(t)
	auth := bearer(t, testCompanyID, testExpMin)
	line := `{"name": "x", "account_id": 1, "credit": 10, "debit": 0, "tax_ids": [[6, 0, [19]]]}`
	taxLine := `{"name": "t", "account_id": 2, "credit": 1.9, "debit": 0, "tax_line_id": 19}`

	cases := []struct {
		name   string
		auth   string
		body   string
		status int
		code   string
	}{
		{"sin token", "", `{}`, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"json inválido", auth, `{"move_vals":`, http.StatusBadRequest, "INVALID_BODY"},
		{"sin move_vals", auth, `{"order_ref": "x"}`, http.StatusBadRequest, "VALIDATION"},
		{
			"compañía desconocida",
			bearer(t, 99, testExpMin),
			`{"move_vals": {"grouped_data": {"a": [` + line + `], "b": [` + taxLine + `]}}}`,
			http.StatusUnprocessableEntity, "MASTER_DATA",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postGroupByTax(t, app, tc.auth, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}
