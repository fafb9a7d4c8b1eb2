package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// TransferHandler ciclo de vida de traslados entre bodegas.
type TransferHandler struct {
	uc  *inventory.TransferUseCase
	log *logger.Logger
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase, log *logger.Logger) *TransferHandler {
	return &TransferHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear traslado (draft)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	items := make([]inventory.TransferItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.TransferItemInput{
			SerialUnitID: it.SerialUnitID,
			SerialCode:   it.SerialCode,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
		})
	}
	t, err := h.uc.Create(c.UserContext(), inventory.CreateTransferInput{
		Number:            in.Number,
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Items:             items,
		Note:              in.Note,
		ActorID:           GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(t))
}

// Get godoc
// @Summary      Obtener traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	t, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toTransferResponse(t))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "Estado"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var q dto.TransferQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	q.DefaultPage()
	list, err := h.uc.List(c.UserContext(), repository.TransferFilter{
		Status:      entity.TransferStatus(q.Status),
		WarehouseID: q.WarehouseID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.TransferListResponse{
		Items: make([]dto.TransferResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, t := range list {
		out.Items = append(out.Items, toTransferResponse(t))
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar traslado (reserva en origen)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/submit [post]
func (h *TransferHandler) Submit(c *fiber.Ctx) error {
	return h.step(c, h.uc.Submit)
}

// Dispatch godoc
// @Summary      Despachar traslado (salida de origen, en tránsito)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	return h.step(c, h.uc.Dispatch)
}

// Confirm godoc
// @Summary      Confirmar recepción en destino
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferResponse
// @Router       /api/transfers/{id}/confirm [post]
func (h *TransferHandler) Confirm(c *fiber.Ctx) error {
	return h.step(c, h.uc.ConfirmDelivery)
}

// Cancel godoc
// @Summary      Cancelar traslado (solo draft o pending)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CancelTransferRequest  false  "Motivo"
// @Success      200  {object}  dto.TransferResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelTransferRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	t, err := h.uc.Cancel(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toTransferResponse(t))
}

func (h *TransferHandler) step(c *fiber.Ctx, fn func(ctx context.Context, id, actorID string) (*entity.Transfer, error)) error {
	t, err := fn(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toTransferResponse(t))
}
