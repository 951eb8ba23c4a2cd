package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-close-by-tax/internal/domain"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo lectura de compañías y su moneda (res_company, res_currency) sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtiene la compañía con la precisión de su moneda contable.
// res_currency no guarda los decimales: se derivan de rounding (0.01 -> 2, 1 -> 0).
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	const query = `
		SELECT c.id, c.name, cur.id, cur.name,
			CASE WHEN cur.rounding > 0 AND cur.rounding < 1
				THEN CEIL(LOG(1 / cur.rounding))::int
				ELSE 0
			END
		FROM res_company c
		JOIN res_currency cur ON cur.id = c.currency_id
		WHERE c.id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Currency.ID, &c.Currency.Name, &c.Currency.DecimalPlaces,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("res_company %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
