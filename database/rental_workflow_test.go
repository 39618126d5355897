package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRentalActionsFor(t *testing.T) {
	cfg, ok := RentalActionsFor(RentalStatusIncoming)
	assert.True(t, ok)
	assert.Equal(t, "Забронировать", cfg.Main.Label)
	assert.Equal(t, RentalStatusBooked, cfg.Main.Target)
	assert.Len(t, cfg.Alts, 1)
	assert.Equal(t, RentalStatusCancelled, cfg.Alts[0].Target)

	cfg, ok = RentalActionsFor(RentalStatusRented)
	assert.True(t, ok)
	assert.Equal(t, RentalStatusCompleted, cfg.Main.Target)
	assert.Len(t, cfg.Alts, 2)

	// terminal-ish statuses still expose a single main action
	cfg, ok = RentalActionsFor(RentalStatusArchive)
	assert.True(t, ok)
	assert.Equal(t, "Восстановить", cfg.Main.Label)
	assert.Equal(t, RentalStatusIncoming, cfg.Main.Target)
	assert.Empty(t, cfg.Alts)

	_, ok = RentalActionsFor("unknown")
	assert.False(t, ok)
}

func TestCanTransitionLegalMoves(t *testing.T) {
	legal := [][2]string{
		{RentalStatusIncoming, RentalStatusBooked},
		{RentalStatusIncoming, RentalStatusCancelled},
		{RentalStatusBooked, RentalStatusRented},
		{RentalStatusBooked, RentalStatusCancelled},
		{RentalStatusRented, RentalStatusCompleted},
		{RentalStatusRented, RentalStatusOverdue},
		{RentalStatusRented, RentalStatusEmergency},
		{RentalStatusOverdue, RentalStatusCompleted},
		{RentalStatusOverdue, RentalStatusEmergency},
		{RentalStatusOverdue, RentalStatusArchive},
		{RentalStatusEmergency, RentalStatusCompleted},
		{RentalStatusEmergency, RentalStatusArchive},
		{RentalStatusCompleted, RentalStatusArchive},
		{RentalStatusCancelled, RentalStatusIncoming},
		{RentalStatusCancelled, RentalStatusArchive},
		{RentalStatusArchive, RentalStatusIncoming},
	}
	for _, move := range legal {
		assert.True(t, CanTransition(move[0], move[1]), "%s -> %s should be legal", move[0], move[1])
	}
}

func TestCanTransitionIllegalMoves(t *testing.T) {
	illegal := [][2]string{
		{RentalStatusIncoming, RentalStatusRented},   // cannot skip booking
		{RentalStatusIncoming, RentalStatusArchive},  // archive only from later states
		{RentalStatusBooked, RentalStatusOverdue},    // overdue only from rented
		{RentalStatusRented, RentalStatusCancelled},  // an active rental cannot be cancelled
		{RentalStatusRented, RentalStatusArchive},
		{RentalStatusCompleted, RentalStatusRented},  // no reopening
		{RentalStatusCompleted, RentalStatusIncoming},
		{RentalStatusArchive, RentalStatusBooked},
		{RentalStatusArchive, RentalStatusArchive},
	}
	for _, move := range illegal {
		assert.False(t, CanTransition(move[0], move[1]), "%s -> %s should be rejected", move[0], move[1])
	}

	assert.False(t, CanTransition("unknown", RentalStatusBooked))
	assert.False(t, CanTransition(RentalStatusIncoming, "unknown"))
}

func TestEveryStatusHasActions(t *testing.T) {
	statuses := []string{
		RentalStatusIncoming, RentalStatusBooked, RentalStatusRented,
		RentalStatusCompleted, RentalStatusOverdue, RentalStatusEmergency,
		RentalStatusCancelled, RentalStatusArchive,
	}
	for _, status := range statuses {
		cfg, ok := RentalActionsFor(status)
		assert.True(t, ok, "status %s must have actions", status)
		assert.NotEmpty(t, cfg.Main.Label)
		assert.NotEmpty(t, cfg.Main.Target)
	}
}

func TestRentalStatusLabel(t *testing.T) {
	assert.Equal(t, "В аренде", RentalStatusLabel(RentalStatusRented))
	assert.Equal(t, "Просрочено", RentalStatusLabel(RentalStatusOverdue))
	assert.Equal(t, "custom", RentalStatusLabel("custom"))
}
