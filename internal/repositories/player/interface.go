package player

import (
	"context"
)

// Repository defines the interface for the players collection behind the fake API
type Repository interface {
	// CreatePlayer stores a new player and assigns its id and position
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error)

	// ListPlayers returns every player in id order
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// UpdatePosition moves a player to a new sort position
	UpdatePosition(ctx context.Context, input *UpdatePositionInput) error
}
