package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/models"
)

// service implements the Service interface
type service struct {
	// rand is not safe for concurrent use
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	r := config.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

// GetRosterMessage returns the header shown above the roster
func (s *service) GetRosterMessage(ctx context.Context, input *GetRosterMessageInput) (*GetRosterMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	// An empty roster always reads as loading, same as the web form did
	if input.PlayerCount == 0 {
		return &GetRosterMessageOutput{
			Title:   RosterTitle,
			Message: LoadingMessage,
			Tone:    ToneNeutral,
		}, nil
	}

	var messages []string
	if tone == ToneNeutral {
		messages = []string{
			fmt.Sprintf("%d players on the roster.", input.PlayerCount),
		}
	} else {
		messages = []string{
			fmt.Sprintf("%d good dogs and counting.", input.PlayerCount),
			fmt.Sprintf("%d pups ready for kickoff!", input.PlayerCount),
			fmt.Sprintf("The kennel is %d strong. Who's a good roster?", input.PlayerCount),
			fmt.Sprintf("%d tails wagging on the sideline.", input.PlayerCount),
		}
	}

	return &GetRosterMessageOutput{
		Title:   RosterTitle,
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetDraftMessage returns a message describing the state of the draft form
func (s *service) GetDraftMessage(ctx context.Context, input *GetDraftMessageInput) (*GetDraftMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Missing) > 0 {
		names := make([]string, 0, len(input.Missing))
		for _, field := range input.Missing {
			names = append(names, fieldLabel(field))
		}
		return &GetDraftMessageOutput{
			Title:   "Add Puppy",
			Message: fmt.Sprintf("Still needed: %s.", strings.Join(names, ", ")),
		}, nil
	}

	messages := []string{
		fmt.Sprintf("%s the %s is ready to join the roster.", input.Draft.Name, input.Draft.Breed),
		fmt.Sprintf("%s is stretching on the sideline. Hit Add Puppy when ready.", input.Draft.Name),
		fmt.Sprintf("One %s, freshly groomed. Send %s in?", input.Draft.Breed, input.Draft.Name),
	}

	return &GetDraftMessageOutput{
		Title:         "Add Puppy",
		Message:       s.pick(messages),
		ReadyToSubmit: true,
	}, nil
}

// GetPlayerAddedMessage returns a message for a successfully submitted player
func (s *service) GetPlayerAddedMessage(ctx context.Context, input *GetPlayerAddedMessageInput) (*GetPlayerAddedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	if input.Status == models.PlayerStatusField {
		messages = []string{
			fmt.Sprintf("%s sprints straight onto the field!", input.PlayerName),
			fmt.Sprintf("Straight into the game, %s? Bold.", input.PlayerName),
		}
	} else {
		messages = []string{
			fmt.Sprintf("Welcome to the bowl, %s! Grab a spot on the bench.", input.PlayerName),
			fmt.Sprintf("%s has joined the roster. Bench warmers unite!", input.PlayerName),
			fmt.Sprintf("A new challenger appears: %s!", input.PlayerName),
		}
	}

	return &GetPlayerAddedMessageOutput{
		Message: s.pick(messages),
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

func fieldLabel(field models.DraftField) string {
	switch field {
	case models.DraftFieldName:
		return "Name"
	case models.DraftFieldBreed:
		return "Breed"
	case models.DraftFieldImageURL:
		return "Image URL"
	case models.DraftFieldStatus:
		return "Status"
	}
	return string(field)
}
