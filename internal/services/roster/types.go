package roster

import (
	"time"

	"github.com/KirkDiggler/puppybowl/internal/clients/puppybowl"
	"github.com/KirkDiggler/puppybowl/internal/common/clock"
	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/rs/zerolog"
)

// Phase is what the client is busy with
type Phase string

const (
	// PhaseIdle indicates no request is in flight
	PhaseIdle Phase = "idle"

	// PhaseLoading indicates a roster load is in flight
	PhaseLoading Phase = "loading"

	// PhaseSubmitting indicates a create request is in flight
	PhaseSubmitting Phase = "submitting"
)

// Config holds configuration for the roster service
type Config struct {
	// Client talks to the players API
	Client puppybowl.Client

	// Clock is optional and defaults to the system clock
	Clock clock.Clock

	// Logger receives every network failure. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// State is a snapshot of the view state
type State struct {
	// Players is the last successfully fetched roster in server order
	Players []*models.Player

	// Draft is the not-yet-submitted player
	Draft models.DraftPlayer

	// Loaded is false until the first successful load
	Loaded bool

	// LoadedAt is when Players was last replaced
	LoadedAt time.Time

	// Phase is the request currently in flight
	Phase Phase
}

// LoadRosterOutput contains the result of a roster load
type LoadRosterOutput struct {
	// Players is the new roster
	Players []*models.Player
}

// UpdateDraftFieldInput contains parameters for editing the draft
type UpdateDraftFieldInput struct {
	// Field is one of name, breed, status, imageUrl
	Field models.DraftField

	// Value replaces the current value as-is
	Value string
}

// UpdateDraftFieldOutput contains the draft after the edit
type UpdateDraftFieldOutput struct {
	Draft models.DraftPlayer
}

// SubmitDraftOutput contains the result of a successful submit
type SubmitDraftOutput struct {
	// Submitted is the draft that was sent
	Submitted models.DraftPlayer

	// Created is the server's record of the new player, when it sent one back
	Created *models.Player

	// Reloaded is false when the follow-up roster load failed
	Reloaded bool

	// Players is the roster after the submit
	Players []*models.Player
}
