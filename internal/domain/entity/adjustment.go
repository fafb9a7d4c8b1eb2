package entity

import "time"

// AdjustmentType tipo de ajuste fuera del flujo normal de entradas y salidas.
type AdjustmentType string

const (
	AdjustmentCount      AdjustmentType = "count"
	AdjustmentDamage     AdjustmentType = "damage"
	AdjustmentLoss       AdjustmentType = "loss"
	AdjustmentFound      AdjustmentType = "found"
	AdjustmentCorrection AdjustmentType = "correction"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentCount, AdjustmentDamage, AdjustmentLoss, AdjustmentFound, AdjustmentCorrection:
		return true
	}
	return false
}

// AdjustmentStatus estado de revisión del ajuste.
type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "pending"
	AdjustmentApproved AdjustmentStatus = "approved"
	AdjustmentPartial  AdjustmentStatus = "partial"
	AdjustmentRejected AdjustmentStatus = "rejected"
)

// AdjustmentItemStatus resultado de aplicar un ítem.
type AdjustmentItemStatus string

const (
	AdjustmentItemPending AdjustmentItemStatus = "pending"
	AdjustmentItemApplied AdjustmentItemStatus = "applied"
	AdjustmentItemFailed  AdjustmentItemStatus = "failed"
)

// Adjustment corrección de stock. Los efectos en el libro se aplican al crear;
// la aprobación solo registra la decisión.
type Adjustment struct {
	ID             string
	Number         string // único
	WarehouseID    string
	Type           AdjustmentType
	Reason         string
	Status         AdjustmentStatus
	TotalItems     int
	FailedItems    int
	CreatedBy      string
	ApprovedBy     string
	DecisionReason string
	CreatedAt      time.Time
	DecidedAt      *time.Time
	UpdatedAt      time.Time
	Items          []*AdjustmentItem
}

// AdjustmentItem referencia una unidad serializada y la corrección a aplicar.
type AdjustmentItem struct {
	ID            string
	AdjustmentID  string
	Line          int
	SerialUnitID  string
	SerialCode    string
	Missing       bool // solo para count: la unidad no se encontró en el conteo
	Note          string
	Status        AdjustmentItemStatus
	FailureCode   string
	FailureDetail string
	MovementID    string
}
