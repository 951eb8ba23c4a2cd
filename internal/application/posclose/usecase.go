package posclose

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/pkg/logger"
)

// Result valores del asiento ya agrupados más el diagnóstico de la corrida.
type Result struct {
	RunID    string
	Vals     entity.MoveVals
	Grouping *accounting.GroupingResult
}

// PrepareMoveUseCase extiende la preparación del asiento de un pedido POS:
// aplana grouped_data, agrupa por impuesto y reconstruye grouped_data con una línea por clave.
type PrepareMoveUseCase struct {
	grouper TaxLineGrouper
	log     *logger.Logger
}

// NewPrepareMoveUseCase construye el caso de uso.
func NewPrepareMoveUseCase(grouper TaxLineGrouper, log *logger.Logger) *PrepareMoveUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &PrepareMoveUseCase{grouper: grouper, log: log}
}

// GroupMoveVals agrupa por impuesto las líneas del asiento de orderRef.
// Sin líneas, vals se devuelve tal cual. Con líneas, grouped_data siempre se re-indexa
// como "<name> <idx>" -> [línea], aunque la agrupación no haya cambiado nada.
// Solo se usa la unicidad de la clave; su contenido no se interpreta aguas abajo.
func (uc *PrepareMoveUseCase) GroupMoveVals(ctx context.Context, companyID int64, orderRef string, vals entity.MoveVals) (*Result, error) {
	runID := uuid.NewString()
	log := uc.log.With().
		Str("run_id", runID).
		Int64("company_id", companyID).
		Str("order_ref", orderRef).
		Logger()

	all := vals.GroupedData.Flatten()
	if len(all) == 0 {
		log.Debug().Msg("asiento sin líneas: nada que agrupar")
		return &Result{
			RunID:    runID,
			Vals:     vals,
			Grouping: &accounting.GroupingResult{Aborted: accounting.ReasonEmptyInput},
		}, nil
	}

	grouping, err := uc.grouper.GroupByTax(ctx, companyID, all)
	if err != nil {
		log.Error().Err(err).Msg("agrupación por impuesto")
		return nil, fmt.Errorf("agrupar líneas del pedido %s: %w", orderRef, err)
	}

	out := entity.MoveVals{
		GroupedData: rekey(grouping.Lines),
		Extra:       vals.Extra,
	}

	if grouping.Aborted != "" {
		log.Info().
			Str("reason", string(grouping.Aborted)).
			Int("lines", len(all)).
			Msg("agrupación por impuesto omitida")
	} else {
		for _, g := range grouping.Groups {
			if !g.Collapsed {
				log.Debug().
					Int64("tax_id", g.TaxID).
					Int("lines", g.Lines).
					Str("reason", string(g.Reason)).
					Msg("grupo de impuesto sin consolidar")
			}
		}
		log.Info().
			Int("lines_in", len(all)).
			Int("lines_out", len(grouping.Lines)).
			Int("groups", len(grouping.Groups)).
			Int("collapsed", grouping.Collapsed()).
			Msg("líneas agrupadas por impuesto")
	}

	return &Result{RunID: runID, Vals: out, Grouping: grouping}, nil
}

func rekey(lines []entity.MoveLineDraft) entity.GroupedData {
	out := make(entity.GroupedData, 0, len(lines))
	for idx, line := range lines {
		out = append(out, entity.LineGroup{
			Key:   line.Name + " " + strconv.Itoa(idx),
			Lines: []entity.MoveLineDraft{line},
		})
	}
	return out
}
