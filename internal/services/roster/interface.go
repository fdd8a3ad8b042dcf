package roster

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/puppybowl/internal/services/roster Service

// Service holds the roster view state and the draft of a single user
type Service interface {
	// Start performs the initial roster load; later calls do nothing
	Start(ctx context.Context) error

	// LoadRoster replaces the roster with the latest server snapshot
	LoadRoster(ctx context.Context) (*LoadRosterOutput, error)

	// UpdateDraftField replaces exactly one field of the draft
	UpdateDraftField(ctx context.Context, input *UpdateDraftFieldInput) (*UpdateDraftFieldOutput, error)

	// SubmitDraft sends the draft as a new player and reloads the roster on success
	SubmitDraft(ctx context.Context) (*SubmitDraftOutput, error)

	// GetState returns a copy of the current view state
	GetState(ctx context.Context) *State
}
