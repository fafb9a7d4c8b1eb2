package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// SerialHandler registro de unidades serializadas.
type SerialHandler struct {
	uc  *inventory.SerialUseCase
	log *logger.Logger
}

// NewSerialHandler construye el handler.
func NewSerialHandler(uc *inventory.SerialUseCase, log *logger.Logger) *SerialHandler {
	return &SerialHandler{uc: uc, log: log}
}

// Receive godoc
// @Summary      Recibir unidad serializada
// @Tags         serial-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveSerialRequest  true  "Unidad"
// @Success      201   {object}  dto.SerialUnitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/serial-units [post]
func (h *SerialHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveSerialRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	unit, err := h.uc.Receive(c.UserContext(), inventory.ReceiveSerialInput{
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		SerialCode:      in.SerialCode,
		UnitCost:        in.UnitCost,
		SellingPrice:    in.SellingPrice,
		SupplierPrice:   in.SupplierPrice,
		ReferenceNumber: in.ReferenceNumber,
		ActorID:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSerialResponse(unit))
}

// Lookup godoc
// @Summary      Buscar unidad por ID o código serial
// @Tags         serial-units
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SerialUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/serial-units/{id_or_code} [get]
func (h *SerialHandler) Lookup(c *fiber.Ctx) error {
	unit, err := h.uc.Lookup(c.UserContext(), c.Params("id_or_code"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toSerialResponse(unit))
}

// Transition godoc
// @Summary      Cambiar estado de una unidad
// @Tags         serial-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransitionRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SerialUnitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/serial-units/{id}/transition [post]
func (h *SerialHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	unit, err := h.uc.Transition(c.UserContext(), inventory.TransitionInput{
		SerialUnitID:    c.Params("id"),
		NewStatus:       entity.SerialStatus(in.NewStatus),
		ReferenceNumber: in.ReferenceNumber,
		BuyerID:         in.BuyerID,
		ActorID:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toSerialResponse(unit))
}

// ListByWarehouse godoc
// @Summary      Unidades de una bodega
// @Tags         serial-units
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Success      200  {object}  dto.SerialUnitListResponse
// @Router       /api/warehouses/{id}/serial-units [get]
func (h *SerialHandler) ListByWarehouse(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	page.DefaultPage()
	units, err := h.uc.ListByWarehouse(c.UserContext(), c.Params("id"), entity.SerialStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.SerialUnitListResponse{
		Items: make([]dto.SerialUnitResponse, 0, len(units)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, u := range units {
		out.Items = append(out.Items, toSerialResponse(u))
	}
	return c.JSON(out)
}
