package player

import (
	"errors"
	"time"
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Record is a stored player in the shape the hosted API returns
type Record struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Status    string    `json:"status"`
	ImageURL  string    `json:"imageUrl"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	TeamID    *int      `json:"teamId"`
}

// CreatePlayerInput contains parameters for storing a player
type CreatePlayerInput struct {
	Name     string
	Breed    string
	Status   string
	ImageURL string

	// At stamps createdAt and updatedAt
	At time.Time
}

// CreatePlayerOutput contains the stored record
type CreatePlayerOutput struct {
	Player *Record
}

// ListPlayersInput contains parameters for listing players
type ListPlayersInput struct{}

// ListPlayersOutput contains the result of listing players
type ListPlayersOutput struct {
	Players []*Record
}

// UpdatePositionInput contains parameters for moving a player
type UpdatePositionInput struct {
	ID       int
	Position int
	At       time.Time
}
