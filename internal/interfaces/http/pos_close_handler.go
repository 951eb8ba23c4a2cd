package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-close-by-tax/internal/application/dto"
	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
	"github.com/jhoicas/pos-close-by-tax/internal/domain"
)

// POSCloseHandler expone el agrupado por impuesto del cierre de sesión POS.
type POSCloseHandler struct {
	uc *posclose.PrepareMoveUseCase
}

// NewPOSCloseHandler construye el handler inyectando el caso de uso.
func NewPOSCloseHandler(uc *posclose.PrepareMoveUseCase) *POSCloseHandler {
	return &POSCloseHandler{uc: uc}
}

// GroupByTax godoc
// @Summary      Agrupar por impuesto las líneas del asiento de un pedido POS
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.GroupByTaxRequest  true  "Valores del asiento (grouped_data)"
// @Success      200   {object}  dto.GroupByTaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pos/move-lines/group-by-tax [post]
func (h *POSCloseHandler) GroupByTax(c *fiber.Ctx) error {
	var in dto.GroupByTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido: " + err.Error()})
	}
	if in.MoveVals == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "move_vals es requerido"})
	}

	linesIn := len(in.MoveVals.GroupedData.Flatten())
	res, err := h.uc.GroupMoveVals(c.UserContext(), GetCompanyID(c), in.OrderRef, *in.MoveVals)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MASTER_DATA", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	return c.JSON(dto.GroupByTaxResponse{
		OrderRef: in.OrderRef,
		RunID:    res.RunID,
		MoveVals: res.Vals,
		Report:   dto.NewGroupingReport(linesIn, res.Grouping),
	})
}
