package repository

import (
	"context"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

// TaxRepository define el puerto de lectura del maestro de impuestos (DIP).
// GetByID devuelve un error que envuelve domain.ErrNotFound si el impuesto no existe.
// Las implementaciones deben tolerar lecturas concurrentes.
type TaxRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Tax, error)
}
