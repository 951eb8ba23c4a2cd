package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-close-by-tax/internal/domain"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo lectura del maestro de impuestos (tabla account_tax del ERP) sobre PostgreSQL.
type TaxRepo struct {
	q Querier
}

// NewTaxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

// GetByID obtiene un impuesto por ID. Si no existe devuelve un error que envuelve domain.ErrNotFound.
func (r *TaxRepo) GetByID(ctx context.Context, id int64) (*entity.Tax, error) {
	const query = `
		SELECT id, name, amount, COALESCE(amount_type, 'percent')
		FROM account_tax WHERE id = $1`
	var t entity.Tax
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Amount, &t.AmountType)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("account_tax %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return &t, nil
}
