package repository

import (
	"context"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

// CompanyRepository define el puerto de lectura de compañías y su moneda (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
}
