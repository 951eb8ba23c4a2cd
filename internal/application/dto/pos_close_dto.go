package dto

import (
	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

// GroupByTaxRequest valores del asiento de un pedido POS a agrupar por impuesto.
type GroupByTaxRequest struct {
	OrderRef string           `json:"order_ref"`
	MoveVals *entity.MoveVals `json:"move_vals"`
}

// GroupByTaxResponse valores con grouped_data reconstruido y el diagnóstico de la corrida.
type GroupByTaxResponse struct {
	OrderRef string          `json:"order_ref"`
	RunID    string          `json:"run_id"`
	MoveVals entity.MoveVals `json:"move_vals"`
	Report   GroupingReport  `json:"report"`
}

// GroupingReport resumen de la agrupación.
type GroupingReport struct {
	Aborted  string        `json:"aborted,omitempty"`
	LinesIn  int           `json:"lines_in"`
	LinesOut int           `json:"lines_out"`
	Groups   []GroupReport `json:"groups"`
}

// GroupReport resultado por impuesto.
type GroupReport struct {
	TaxID     int64  `json:"tax_id"`
	Lines     int    `json:"lines"`
	Collapsed bool   `json:"collapsed"`
	Reason    string `json:"reason,omitempty"`
	Total     string `json:"total,omitempty"`
}

// NewGroupingReport arma el reporte a partir del resultado del agrupador.
func NewGroupingReport(linesIn int, res *accounting.GroupingResult) GroupingReport {
	out := GroupingReport{LinesIn: linesIn, Groups: []GroupReport{}}
	if res == nil {
		return out
	}
	out.Aborted = string(res.Aborted)
	out.LinesOut = len(res.Lines)
	for _, g := range res.Groups {
		gr := GroupReport{TaxID: g.TaxID, Lines: g.Lines, Collapsed: g.Collapsed, Reason: string(g.Reason)}
		if g.Collapsed {
			gr.Total = g.Total.String()
		}
		out.Groups = append(out.Groups, gr)
	}
	return out
}
