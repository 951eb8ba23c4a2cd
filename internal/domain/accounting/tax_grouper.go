// Package accounting agrupa por impuesto los borradores de líneas contables que genera
// el cierre de una sesión POS: cada impuesto se reduce a una línea de base y una de impuesto.
package accounting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-close-by-tax/internal/domain"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/repository"
)

// SkipReason explica por qué la entrada completa o un grupo no se consolidó.
type SkipReason string

// Motivos para no consolidar la entrada completa.
const (
	ReasonEmptyInput            SkipReason = "empty_input"
	ReasonMultipleTaxCommands   SkipReason = "multiple_tax_commands"
	ReasonUnsupportedTaxCommand SkipReason = "unsupported_tax_command"
	ReasonMultipleTaxes         SkipReason = "multiple_taxes"
	ReasonAnalyticAccount       SkipReason = "analytic_account"
	ReasonNoTaxGroups           SkipReason = "no_tax_groups"
)

// Motivos para no consolidar un grupo; sus líneas pasan sin cambios.
const (
	ReasonMixedMaturity         SkipReason = "mixed_date_maturity"
	ReasonMixedTaxAccount       SkipReason = "mixed_tax_account"
	ReasonMixedBaseAccount      SkipReason = "mixed_base_account"
	ReasonIncompleteGroup       SkipReason = "incomplete_group"
	ReasonUnsupportedAmountType SkipReason = "unsupported_amount_type"
	ReasonDegenerateRate        SkipReason = "degenerate_rate"
)

// GroupOutcome resume qué pasó con el grupo de un impuesto.
type GroupOutcome struct {
	TaxID     int64
	Lines     int
	Collapsed bool
	Reason    SkipReason
	Total     decimal.Decimal // solo si Collapsed
}

// GroupingResult líneas resultantes más el diagnóstico de la agrupación.
// Aborted no vacío significa que Lines es la entrada sin cambios.
type GroupingResult struct {
	Lines   []entity.MoveLineDraft
	Aborted SkipReason
	Groups  []GroupOutcome
}

// Collapsed cuenta los grupos reducidos a dos líneas.
func (r *GroupingResult) Collapsed() int {
	n := 0
	for _, g := range r.Groups {
		if g.Collapsed {
			n++
		}
	}
	return n
}

// LineNamer da nombre a las dos líneas sintetizadas de un impuesto.
type LineNamer interface {
	UntaxedName(tax entity.Tax) string
	TaxName(tax entity.Tax) string
}

type plainNamer struct{}

func (plainNamer) UntaxedName(tax entity.Tax) string { return tax.Name + ": untaxed amount" }
func (plainNamer) TaxName(tax entity.Tax) string     { return tax.Name + ": tax" }

// TaxGrouper consolida por impuesto los borradores de un asiento POS.
// Solo lee maestros; es seguro para uso concurrente si los repositorios lo son.
type TaxGrouper struct {
	taxes     repository.TaxRepository
	companies repository.CompanyRepository
	namer     LineNamer
}

// NewTaxGrouper construye el agrupador. Con namer nil los nombres quedan en inglés.
func NewTaxGrouper(taxes repository.TaxRepository, companies repository.CompanyRepository, namer LineNamer) *TaxGrouper {
	if namer == nil {
		namer = plainNamer{}
	}
	return &TaxGrouper{taxes: taxes, companies: companies, namer: namer}
}

// GroupByTax reduce cada grupo de impuesto a dos líneas (base, impuesto) y deja las
// contrapartidas al final en su orden original. Nunca falla por la forma de la entrada:
// lo que no se puede consolidar sin pérdida pasa sin cambios. Solo los errores de
// lectura de maestros (compañía, impuesto) se propagan.
func (g *TaxGrouper) GroupByTax(ctx context.Context, companyID int64, lines []entity.MoveLineDraft) (*GroupingResult, error) {
	if len(lines) == 0 {
		return &GroupingResult{Lines: lines, Aborted: ReasonEmptyInput}, nil
	}
	part, reason := partition(lines)
	if reason != "" {
		return &GroupingResult{Lines: lines, Aborted: reason}, nil
	}
	if len(part.keys) == 0 {
		return &GroupingResult{Lines: lines, Aborted: ReasonNoTaxGroups}, nil
	}

	company, err := g.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("compañía %d: %w", companyID, err)
	}
	if company == nil {
		return nil, fmt.Errorf("compañía %d: %w", companyID, domain.ErrNotFound)
	}
	precision := company.Currency.DecimalPlaces

	res := &GroupingResult{Lines: make([]entity.MoveLineDraft, 0, len(lines))}
	for _, key := range part.keys {
		group := part.groups[key]
		outcome := GroupOutcome{TaxID: key, Lines: len(group)}

		summary, reason := checkApplicability(group)
		if reason == "" {
			tax, err := g.taxes.GetByID(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("impuesto %d: %w", key, err)
			}
			if tax == nil {
				return nil, fmt.Errorf("impuesto %d: %w", key, domain.ErrNotFound)
			}
			var pair [2]entity.MoveLineDraft
			pair, reason = g.synthesize(*tax, summary, precision)
			if reason == "" {
				res.Lines = append(res.Lines, pair[0], pair[1])
				outcome.Collapsed = true
				outcome.Total = summary.total
				res.Groups = append(res.Groups, outcome)
				continue
			}
		}
		outcome.Reason = reason
		res.Lines = append(res.Lines, group...)
		res.Groups = append(res.Groups, outcome)
	}
	res.Lines = append(res.Lines, part.counterparts...)
	return res, nil
}

type partitioned struct {
	keys         []int64 // orden de primera aparición
	groups       map[int64][]entity.MoveLineDraft
	counterparts []entity.MoveLineDraft
}

// partition reparte las líneas por impuesto. Un motivo no vacío aborta la agrupación completa.
func partition(lines []entity.MoveLineDraft) (partitioned, SkipReason) {
	p := partitioned{groups: make(map[int64][]entity.MoveLineDraft)}
	for _, line := range lines {
		if len(line.TaxIDs) > 1 {
			return partitioned{}, ReasonMultipleTaxCommands
		}
		var taxIDs []int64
		if len(line.TaxIDs) == 1 {
			cmd := line.TaxIDs[0]
			if cmd.Code != entity.TaxCommandReplace {
				return partitioned{}, ReasonUnsupportedTaxCommand
			}
			taxIDs = cmd.IDs
		}

		var key int64
		switch line.Kind() {
		case entity.LineKindCounterpart:
			p.counterparts = append(p.counterparts, line)
			continue
		case entity.LineKindTaxCharge:
			key = line.TaxLineID
		case entity.LineKindUntaxedBase:
			key = taxIDs[0]
		}
		if len(taxIDs) > 1 {
			return partitioned{}, ReasonMultipleTaxes
		}
		if line.AnalyticAccountID != 0 {
			return partitioned{}, ReasonAnalyticAccount
		}
		if _, ok := p.groups[key]; !ok {
			p.keys = append(p.keys, key)
		}
		p.groups[key] = append(p.groups[key], line)
	}
	return p, ""
}

type groupSummary struct {
	dateMaturity     string
	taxAccountID     int64
	untaxedAccountID int64
	hasTaxCharge     bool
	hasUntaxedBase   bool
	total            decimal.Decimal
}

// checkApplicability recorre el grupo comparando cada valor con el último visto:
// un vencimiento, una cuenta de impuesto y una cuenta de base por grupo.
func checkApplicability(lines []entity.MoveLineDraft) (groupSummary, SkipReason) {
	var s groupSummary
	for _, line := range lines {
		if line.DateMaturity != "" {
			if s.dateMaturity != "" && s.dateMaturity != line.DateMaturity {
				return groupSummary{}, ReasonMixedMaturity
			}
			s.dateMaturity = line.DateMaturity
		}
		if line.TaxLineID != 0 {
			if s.taxAccountID != 0 && s.taxAccountID != line.AccountID {
				return groupSummary{}, ReasonMixedTaxAccount
			}
			s.taxAccountID = line.AccountID
			s.hasTaxCharge = true
		}
		if len(line.TaxIDs) > 0 {
			if s.untaxedAccountID != 0 && s.untaxedAccountID != line.AccountID {
				return groupSummary{}, ReasonMixedBaseAccount
			}
			s.untaxedAccountID = line.AccountID
			s.hasUntaxedBase = true
		}
		s.total = s.total.Add(line.Balance())
	}
	if !s.hasTaxCharge || !s.hasUntaxedBase {
		return groupSummary{}, ReasonIncompleteGroup
	}
	return s, ""
}

func (g *TaxGrouper) synthesize(tax entity.Tax, s groupSummary, precision int32) ([2]entity.MoveLineDraft, SkipReason) {
	if !tax.IsPercent() {
		return [2]entity.MoveLineDraft{}, ReasonUnsupportedAmountType
	}
	untaxed, ok := UntaxedFromTotal(s.total, tax.Amount, precision)
	if !ok {
		return [2]entity.MoveLineDraft{}, ReasonDegenerateRate
	}
	taxAmount := s.total.Sub(untaxed)

	base := entity.MoveLineDraft{
		Name:         g.namer.UntaxedName(tax),
		AccountID:    s.untaxedAccountID,
		DateMaturity: s.dateMaturity,
		TaxIDs:       []entity.TaxCommand{entity.ReplaceTaxes(tax.ID)},
	}
	base.Debit, base.Credit = DebitCredit(untaxed)

	charge := entity.MoveLineDraft{
		Name:         g.namer.TaxName(tax),
		AccountID:    s.taxAccountID,
		DateMaturity: s.dateMaturity,
		TaxLineID:    tax.ID,
	}
	charge.Debit, charge.Credit = DebitCredit(taxAmount)

	return [2]entity.MoveLineDraft{base, charge}, ""
}
