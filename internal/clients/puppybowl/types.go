package puppybowl

import (
	"net/http"

	"github.com/KirkDiggler/puppybowl/internal/common/uuid"
	"github.com/KirkDiggler/puppybowl/internal/models"
)

// DefaultBaseURL is the hosted players collection the roster was built against
const DefaultBaseURL = "https://fsa-puppy-bowl.herokuapp.com/api/2109-UNF-HY-WEB-PT/players"

// Config holds configuration for the players API client
type Config struct {
	// BaseURL is the players collection endpoint
	BaseURL string

	// HTTPClient is optional; http.DefaultClient is used when nil
	HTTPClient *http.Client

	// UUIDGenerator produces X-Request-ID values
	UUIDGenerator uuid.UUID
}

// ListPlayersInput contains parameters for listing players
type ListPlayersInput struct{}

// ListPlayersOutput contains the roster as returned by the server
type ListPlayersOutput struct {
	// Players is in server order
	Players []*models.Player

	// RequestID is the X-Request-ID sent with the request
	RequestID string
}

// CreatePlayerInput contains parameters for creating a player
type CreatePlayerInput struct {
	Draft models.DraftPlayer
}

// CreatePlayerOutput contains the result of creating a player
type CreatePlayerOutput struct {
	// StatusCode is the 2xx status the server answered with
	StatusCode int

	// Body is the raw response body, kept for logging
	Body string

	// Player is the created record when the body could be parsed, nil otherwise
	Player *models.Player

	// RequestID is the X-Request-ID sent with the request
	RequestID string
}

// playersEnvelope is the response shape of the players collection
type playersEnvelope struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
	Data    *struct {
		Players   []*models.Player `json:"players"`
		NewPlayer *models.Player   `json:"newPlayer"`
	} `json:"data"`
}
