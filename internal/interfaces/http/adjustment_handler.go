package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// AdjustmentHandler ajustes de inventario sobre unidades serializadas.
type AdjustmentHandler struct {
	uc  *inventory.AdjustmentUseCase
	log *logger.Logger
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase, log *logger.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear ajuste (aplica los ítems al crearse)
// @Description  Reenviar el mismo number reanuda los ítems que quedaron pendientes.
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	items := make([]inventory.AdjustmentItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.AdjustmentItemInput{
			SerialUnitID: it.SerialUnitID,
			SerialCode:   it.SerialCode,
			Missing:      it.Missing,
			Note:         it.Note,
		})
	}
	adj, err := h.uc.Create(c.UserContext(), inventory.CreateAdjustmentInput{
		Number:      in.Number,
		WarehouseID: in.WarehouseID,
		Type:        entity.AdjustmentType(in.Type),
		Reason:      in.Reason,
		Items:       items,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// Get godoc
// @Summary      Obtener ajuste con el resultado por ítem
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdjustmentResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) Get(c *fiber.Ctx) error {
	adj, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// List godoc
// @Summary      Listar ajustes
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdjustmentListResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	var q dto.AdjustmentQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	q.DefaultPage()
	list, err := h.uc.List(c.UserContext(), repository.AdjustmentFilter{
		Status:      entity.AdjustmentStatus(q.Status),
		WarehouseID: q.WarehouseID,
		Type:        entity.AdjustmentType(q.Type),
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.AdjustmentListResponse{
		Items: make([]dto.AdjustmentResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, a := range list {
		out.Items = append(out.Items, toAdjustmentResponse(a))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar ajuste (approved o partial según los ítems)
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/approve [post]
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	adj, err := h.uc.Approve(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Reject godoc
// @Summary      Rechazar ajuste
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RejectAdjustmentRequest  true  "Motivo"
// @Success      200  {object}  dto.AdjustmentResponse
// @Router       /api/adjustments/{id}/reject [post]
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectAdjustmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	adj, err := h.uc.Reject(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}
