package puppybowl

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/puppybowl/internal/clients/puppybowl Client

// Client talks to the remote players collection
type Client interface {
	// ListPlayers fetches the whole roster sorted by position ascending
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// CreatePlayer sends a draft as a new player record
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error)
}
