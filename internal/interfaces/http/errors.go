package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// writeError traduce errores de dominio a status HTTP y dto.ErrorResponse.
// Lo no reconocido es 500 y se registra; el mensaje interno no sale al cliente.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		ve  *domain.ValidationError
		ise *domain.InsufficientStockError
		dse *domain.DuplicateSerialError
		ite *domain.InvalidTransitionError
		tic *domain.TransferItemConflictError
		tde *domain.TransferDispatchError
		lce *domain.LedgerConsistencyError
	)
	switch {
	case errors.As(err, &ve):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err, map[string]string{ve.Field: ve.Reason})
	case errors.As(err, &ise):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err, map[string]string{
			"product_id":   ise.ProductID,
			"warehouse_id": ise.WarehouseID,
			"available":    ise.Available.String(),
			"requested":    ise.Requested.String(),
			"shortfall":    ise.Shortfall().String(),
		})
	case errors.As(err, &dse):
		return respond(c, fiber.StatusConflict, "DUPLICATE_SERIAL", err, map[string]string{"serial_code": dse.SerialCode})
	case errors.As(err, &ite):
		return respond(c, fiber.StatusConflict, "INVALID_TRANSITION", err, map[string]string{
			"entity": ite.Entity, "from": ite.From, "to": ite.To,
		})
	case errors.As(err, &tic):
		d := map[string]string{"transfer_number": tic.TransferNumber, "reason": tic.Reason}
		if tic.SerialCode != "" {
			d["serial_code"] = tic.SerialCode
		}
		if tic.ProductID != "" {
			d["product_id"] = tic.ProductID
		}
		return respond(c, fiber.StatusConflict, "TRANSFER_ITEM_CONFLICT", err, d)
	case errors.As(err, &tde):
		log.Error().Err(err).Str("transfer_number", tde.TransferNumber).Msg("despacho fallido")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "TRANSFER_DISPATCH_FAILED",
			Message: "no se pudo despachar el traslado, reintente",
			Details: map[string]string{"transfer_number": tde.TransferNumber},
		})
	case errors.As(err, &lce):
		return respond(c, fiber.StatusConflict, "LEDGER_INCONSISTENT", err, map[string]string{
			"cached": lce.Cached.String(), "folded": lce.Folded.String(),
		})
	case errors.Is(err, domain.ErrAdjustmentUnresolved):
		return respond(c, fiber.StatusConflict, "ADJUSTMENT_UNRESOLVED", err, nil)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err, nil)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err, nil)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err, nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err, nil)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err, nil)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func respond(c *fiber.Ctx, status int, code string, err error, details map[string]string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error(), Details: details})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
