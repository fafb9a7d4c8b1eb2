package dto

import "time"

// AdjustmentItemRequest referencia una unidad por ID o código.
type AdjustmentItemRequest struct {
	SerialUnitID string `json:"serial_unit_id,omitempty"`
	SerialCode   string `json:"serial_code,omitempty" validate:"required_without=SerialUnitID"`
	Missing      bool   `json:"missing,omitempty"`
	Note         string `json:"note,omitempty" validate:"max=500"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	Number      string                  `json:"number,omitempty" validate:"max=32"`
	WarehouseID string                  `json:"warehouse_id" validate:"required"`
	Type        string                  `json:"type" validate:"required,oneof=count damage loss found correction"`
	Reason      string                  `json:"reason" validate:"required,max=500"`
	Items       []AdjustmentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// RejectAdjustmentRequest body de rechazo.
type RejectAdjustmentRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// AdjustmentQuery filtros de GET /api/adjustments.
type AdjustmentQuery struct {
	Status      string `query:"status" validate:"omitempty,oneof=pending approved partial rejected"`
	WarehouseID string `query:"warehouse_id"`
	Type        string `query:"type" validate:"omitempty,oneof=count damage loss found correction"`
	PageRequest
}

// AdjustmentItemResponse salida de un ítem con su resultado.
type AdjustmentItemResponse struct {
	ID            string `json:"id"`
	Line          int    `json:"line"`
	SerialUnitID  string `json:"serial_unit_id,omitempty"`
	SerialCode    string `json:"serial_code,omitempty"`
	Missing       bool   `json:"missing,omitempty"`
	Note          string `json:"note,omitempty"`
	Status        string `json:"status"`
	FailureCode   string `json:"failure_code,omitempty"`
	FailureDetail string `json:"failure_detail,omitempty"`
	MovementID    string `json:"movement_id,omitempty"`
}

// AdjustmentResponse salida de un ajuste con sus ítems.
type AdjustmentResponse struct {
	ID             string                   `json:"id"`
	Number         string                   `json:"number"`
	WarehouseID    string                   `json:"warehouse_id"`
	Type           string                   `json:"type"`
	Reason         string                   `json:"reason"`
	Status         string                   `json:"status"`
	TotalItems     int                      `json:"total_items"`
	FailedItems    int                      `json:"failed_items"`
	CreatedBy      string                   `json:"created_by,omitempty"`
	ApprovedBy     string                   `json:"approved_by,omitempty"`
	DecisionReason string                   `json:"decision_reason,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	DecidedAt      *time.Time               `json:"decided_at,omitempty"`
	Items          []AdjustmentItemResponse `json:"items"`
}

// AdjustmentListResponse lista paginada de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
