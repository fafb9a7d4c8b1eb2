package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// maxHistory tope de entradas por página de GET /movements.
const maxHistory = 1000

// InventoryHandler expone el libro de movimientos y el contador de stock.
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, log: log}
}

// AppendMovement godoc
// @Summary      Registrar movimiento en el libro
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AppendMovement(c *fiber.Ctx) error {
	var in dto.AppendMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	entry, err := h.ledger.AppendMovement(c.UserContext(), inventory.AppendMovementInput{
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		Kind:            entity.MovementKind(in.Kind),
		Direction:       entity.Direction(in.Direction),
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		ReferenceType:   in.ReferenceType,
		ReferenceNumber: in.ReferenceNumber,
		Note:            in.Note,
		ActorID:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(entry))
}

// History godoc
// @Summary      Historial de movimientos en orden de secuencia
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id        query  string  false  "Producto"
// @Param        warehouse_id      query  string  false  "Bodega"
// @Param        from              query  string  false  "Desde (RFC3339)"
// @Param        to                query  string  false  "Hasta (RFC3339)"
// @Param        reference_number  query  string  false  "Referencia"
// @Param        after             query  int     false  "Cursor: next_after de la página anterior"
// @Param        limit             query  int     false  "Tamaño de página (máx. 1000)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	filter := repository.MovementFilter{
		ProductID:       q.ProductID,
		WarehouseID:     q.WarehouseID,
		ReferenceType:   q.ReferenceType,
		ReferenceNumber: q.ReferenceNumber,
		AfterSequence:   q.After,
	}
	pageSize := q.Limit
	if pageSize <= 0 || pageSize > maxHistory {
		pageSize = maxHistory
	}
	// una entrada extra indica si hay otra página
	filter.Limit = pageSize + 1
	var err error
	if filter.From, err = parseTime(q.From, "from"); err != nil {
		return writeError(c, h.log, err)
	}
	if filter.To, err = parseTime(q.To, "to"); err != nil {
		return writeError(c, h.log, err)
	}

	out := dto.MovementListResponse{Items: []dto.MovementResponse{}}
	for e, err := range h.ledger.History(c.UserContext(), filter) {
		if err != nil {
			return writeError(c, h.log, err)
		}
		if len(out.Items) == pageSize {
			next := out.Items[pageSize-1].Sequence
			out.NextAfter = &next
			break
		}
		out.Items = append(out.Items, toMovementResponse(e))
	}
	out.Count = len(out.Items)
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Stock de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockResponse
// @Router       /api/inventory/stock/{product_id}/{warehouse_id} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	s, err := h.ledger.GetStock(c.UserContext(), c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toStockResponse(s))
}

// Reconcile godoc
// @Summary      Reconstruir el contador desde el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/inventory/stock/{product_id}/{warehouse_id}/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.ledger.Reconcile(c.UserContext(), c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:      res.ProductID,
		WarehouseID:    res.WarehouseID,
		Repaired:       res.Repaired,
		Cached:         res.Cached,
		Folded:         res.Folded,
		CachedReserved: res.CachedReserved,
		Reserved:       res.Reserved,
	})
}

func parseTime(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.NewValidationError(field, "must_be_rfc3339")
	}
	return &t, nil
}
