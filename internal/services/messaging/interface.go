package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRosterMessage returns the header shown above the roster
	GetRosterMessage(ctx context.Context, input *GetRosterMessageInput) (*GetRosterMessageOutput, error)

	// GetDraftMessage returns a message describing the state of the draft form
	GetDraftMessage(ctx context.Context, input *GetDraftMessageInput) (*GetDraftMessageOutput, error)

	// GetPlayerAddedMessage returns a message for a successfully submitted player
	GetPlayerAddedMessage(ctx context.Context, input *GetPlayerAddedMessageInput) (*GetPlayerAddedMessageOutput, error)
}
