package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var transferEdges = map[entity.TransferStatus][]entity.TransferStatus{
	entity.TransferDraft:     {entity.TransferPending, entity.TransferCancelled},
	entity.TransferPending:   {entity.TransferInTransit, entity.TransferCancelled},
	entity.TransferInTransit: {entity.TransferDelivered},
	entity.TransferDelivered: {entity.TransferCompleted},
}

// CanTransitionTransfer indica si el traslado puede pasar de from a to.
// Una vez despachado no se cancela: se compensa con un traslado inverso.
func CanTransitionTransfer(from, to entity.TransferStatus) bool {
	for _, s := range transferEdges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckTransferTransition devuelve InvalidTransitionError si la arista no existe.
func CheckTransferTransition(number string, from, to entity.TransferStatus) error {
	if !CanTransitionTransfer(from, to) {
		return &domain.InvalidTransitionError{Entity: "transfer", ID: number, From: string(from), To: string(to)}
	}
	return nil
}

// IsTerminalTransfer completed y cancelled no admiten más cambios.
func IsTerminalTransfer(s entity.TransferStatus) bool {
	return s == entity.TransferCompleted || s == entity.TransferCancelled
}
