package messaging

import (
	"math/rand"

	"github.com/KirkDiggler/puppybowl/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"
)

// LoadingMessage is shown while the roster is empty
const LoadingMessage = "Loading..."

// RosterTitle is the heading of the roster view
const RosterTitle = "Puppy Bowl Players"

// GetRosterMessageInput contains parameters for getting the roster header
type GetRosterMessageInput struct {
	// PlayerCount is the number of players on the roster
	PlayerCount int

	// PreferredTone is optional
	PreferredTone MessageTone
}

// GetRosterMessageOutput contains the roster header
type GetRosterMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetDraftMessageInput contains parameters for describing the draft
type GetDraftMessageInput struct {
	Draft models.DraftPlayer

	// Missing lists required fields that are still empty
	Missing []models.DraftField
}

// GetDraftMessageOutput contains the draft description
type GetDraftMessageOutput struct {
	Title   string
	Message string

	// ReadyToSubmit is true when no required field is missing
	ReadyToSubmit bool
}

// GetPlayerAddedMessageInput contains parameters for the player added message
type GetPlayerAddedMessageInput struct {
	PlayerName string
	Status     models.PlayerStatus
}

// GetPlayerAddedMessageOutput contains the player added message
type GetPlayerAddedMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand is optional; tests pass a seeded source
	Rand *rand.Rand
}
