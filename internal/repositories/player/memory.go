package player

import (
	"context"
	"errors"
	"sync"
)

// memoryRepository implements the Repository interface in process memory
type memoryRepository struct {
	mu      sync.Mutex
	players []*Record
}

// NewMemory creates an empty in-memory player repository
func NewMemory() *memoryRepository {
	return &memoryRepository{}
}

// CreatePlayer stores a player with the next id; its position starts equal to its id
func (r *memoryRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := len(r.players) + 1
	record := newRecord(id, input)
	r.players = append(r.players, record)

	cp := *record
	return &CreatePlayerOutput{Player: &cp}, nil
}

// ListPlayers returns copies of every stored player in id order
func (r *memoryRepository) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]*Record, 0, len(r.players))
	for _, p := range r.players {
		cp := *p
		players = append(players, &cp)
	}

	return &ListPlayersOutput{Players: players}, nil
}

// UpdatePosition moves a stored player
func (r *memoryRepository) UpdatePosition(ctx context.Context, input *UpdatePositionInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.players {
		if p.ID == input.ID {
			p.Position = input.Position
			p.UpdatedAt = input.At
			return nil
		}
	}

	return ErrPlayerNotFound
}

func newRecord(id int, input *CreatePlayerInput) *Record {
	return &Record{
		ID:        id,
		Name:      input.Name,
		Breed:     input.Breed,
		Status:    input.Status,
		ImageURL:  input.ImageURL,
		Position:  id,
		CreatedAt: input.At,
		UpdatedAt: input.At,
	}
}
