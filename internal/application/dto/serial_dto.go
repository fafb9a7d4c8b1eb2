package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveSerialRequest body para POST /api/serial-units. SerialCode vacío genera uno.
type ReceiveSerialRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	WarehouseID     string          `json:"warehouse_id" validate:"required"`
	SerialCode      string          `json:"serial_code,omitempty" validate:"max=64"`
	UnitCost        decimal.Decimal `json:"unit_cost" validate:"gte=0"`
	SellingPrice    decimal.Decimal `json:"selling_price" validate:"gte=0"`
	SupplierPrice   decimal.Decimal `json:"supplier_price" validate:"gte=0"`
	ReferenceNumber string          `json:"reference_number,omitempty" validate:"max=64"`
}

// TransitionRequest body para POST /api/serial-units/:id/transition.
type TransitionRequest struct {
	NewStatus       string `json:"new_status" validate:"required,oneof=available reserved sold damaged transferred"`
	ReferenceNumber string `json:"reference_number" validate:"required,max=64"`
	BuyerID         string `json:"buyer_id,omitempty"`
}

// SerialUnitResponse salida de una unidad serializada.
type SerialUnitResponse struct {
	ID              string          `json:"id"`
	SerialCode      string          `json:"serial_code"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	SupplierPrice   decimal.Decimal `json:"supplier_price"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	HoldReference   string          `json:"hold_reference,omitempty"`
	ReceivedAt      time.Time       `json:"received_at"`
	SoldAt          *time.Time      `json:"sold_at,omitempty"`
	BuyerID         string          `json:"buyer_id,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SerialUnitListResponse lista paginada de unidades.
type SerialUnitListResponse struct {
	Items []SerialUnitResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
