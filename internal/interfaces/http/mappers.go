package http

import (
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func toMovementResponse(e *entity.MovementEntry) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              e.ID,
		Sequence:        e.Sequence,
		ProductID:       e.ProductID,
		WarehouseID:     e.WarehouseID,
		SerialUnitID:    e.SerialUnitID,
		Kind:            string(e.Kind),
		Direction:       string(e.Direction),
		Quantity:        e.Quantity,
		UnitCost:        e.UnitCost,
		TotalCost:       e.TotalCost,
		ReferenceType:   e.ReferenceType,
		ReferenceNumber: e.ReferenceNumber,
		Note:            e.Note,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

func toStockResponse(s inventory.StockView) dto.StockResponse {
	return dto.StockResponse{
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		Reserved:    s.Reserved,
		Available:   s.Available,
		AvgCost:     s.AvgCost,
		TotalValue:  s.TotalValue,
	}
}

func toSerialResponse(u *entity.SerialUnit) dto.SerialUnitResponse {
	return dto.SerialUnitResponse{
		ID:              u.ID,
		SerialCode:      u.SerialCode,
		ProductID:       u.ProductID,
		WarehouseID:     u.WarehouseID,
		UnitCost:        u.UnitCost,
		SellingPrice:    u.SellingPrice,
		SupplierPrice:   u.SupplierPrice,
		Status:          string(u.Status),
		ReferenceNumber: u.ReferenceNumber,
		HoldReference:   u.HoldReference,
		ReceivedAt:      u.ReceivedAt,
		SoldAt:          u.SoldAt,
		BuyerID:         u.BuyerID,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransferItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			SerialUnitID: it.SerialUnitID,
			SerialCode:   it.SerialCode,
			Quantity:     it.Quantity,
			UnitCost:     it.UnitCost,
			Status:       string(it.Status),
		})
	}
	return dto.TransferResponse{
		ID:                t.ID,
		Number:            t.Number,
		SourceWarehouseID: t.SourceWarehouseID,
		TargetWarehouseID: t.TargetWarehouseID,
		Status:            string(t.Status),
		TotalItems:        t.TotalItems,
		TotalQuantity:     t.TotalQuantity,
		Note:              t.Note,
		InitiatedBy:       t.InitiatedBy,
		ConfirmedBy:       t.ConfirmedBy,
		CreatedAt:         t.CreatedAt,
		SubmittedAt:       t.SubmittedAt,
		DispatchedAt:      t.DispatchedAt,
		DeliveredAt:       t.DeliveredAt,
		CompletedAt:       t.CompletedAt,
		CancelledAt:       t.CancelledAt,
		Items:             items,
	}
}

func toAdjustmentResponse(a *entity.Adjustment) dto.AdjustmentResponse {
	items := make([]dto.AdjustmentItemResponse, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, dto.AdjustmentItemResponse{
			ID:            it.ID,
			Line:          it.Line,
			SerialUnitID:  it.SerialUnitID,
			SerialCode:    it.SerialCode,
			Missing:       it.Missing,
			Note:          it.Note,
			Status:        string(it.Status),
			FailureCode:   it.FailureCode,
			FailureDetail: it.FailureDetail,
			MovementID:    it.MovementID,
		})
	}
	return dto.AdjustmentResponse{
		ID:             a.ID,
		Number:         a.Number,
		WarehouseID:    a.WarehouseID,
		Type:           string(a.Type),
		Reason:         a.Reason,
		Status:         string(a.Status),
		TotalItems:     a.TotalItems,
		FailedItems:    a.FailedItems,
		CreatedBy:      a.CreatedBy,
		ApprovedBy:     a.ApprovedBy,
		DecisionReason: a.DecisionReason,
		CreatedAt:      a.CreatedAt,
		DecidedAt:      a.DecidedAt,
		Items:          items,
	}
}
