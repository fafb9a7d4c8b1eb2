package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestTransferTransitions(t *testing.T) {
	assert.True(t, CanTransitionTransfer(entity.TransferDraft, entity.TransferPending))
	assert.True(t, CanTransitionTransfer(entity.TransferPending, entity.TransferInTransit))
	assert.True(t, CanTransitionTransfer(entity.TransferInTransit, entity.TransferDelivered))
	assert.True(t, CanTransitionTransfer(entity.TransferDelivered, entity.TransferCompleted))
	assert.True(t, CanTransitionTransfer(entity.TransferPending, entity.TransferCancelled))

	assert.False(t, CanTransitionTransfer(entity.TransferInTransit, entity.TransferCancelled))
	assert.False(t, CanTransitionTransfer(entity.TransferDraft, entity.TransferInTransit))
	assert.False(t, CanTransitionTransfer(entity.TransferCompleted, entity.TransferPending))

	assert.ErrorIs(t, CheckTransferTransition("TRF-1", entity.TransferCompleted, entity.TransferCancelled), domain.ErrInvalidTransition)
	assert.True(t, IsTerminalTransfer(entity.TransferCancelled))
	assert.False(t, IsTerminalTransfer(entity.TransferInTransit))
}
