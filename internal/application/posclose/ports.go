package posclose

import (
	"context"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

// TaxLineGrouper consolida por impuesto los borradores de un asiento (ver accounting.TaxGrouper).
type TaxLineGrouper interface {
	GroupByTax(ctx context.Context, companyID int64, lines []entity.MoveLineDraft) (*accounting.GroupingResult, error)
}
