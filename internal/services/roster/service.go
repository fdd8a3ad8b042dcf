package roster

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/clients/puppybowl"
	"github.com/KirkDiggler/puppybowl/internal/common/clock"
	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	client puppybowl.Client
	clock  clock.Clock
	logger zerolog.Logger

	mu       sync.Mutex
	started  bool
	players  []*models.Player
	draft    models.DraftPlayer
	loaded   bool
	loadedAt time.Time

	// loadSeq numbers load requests; appliedSeq is the newest one applied to players
	loadSeq      uint64
	appliedSeq   uint64
	loadsPending int
	submitting   bool
}

// New creates a new roster service with an empty roster and an empty draft
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Client == nil {
		return nil, ErrNilClient
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		client:  cfg.Client,
		clock:   clk,
		logger:  logger.With().Str("component", "roster").Logger(),
		players: []*models.Player{},
		draft:   models.NewDraftPlayer(),
	}, nil
}

// Start performs the initial roster load once
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	_, err := s.LoadRoster(ctx)
	return err
}

// LoadRoster fetches the roster and replaces the local copy wholesale
func (s *service) LoadRoster(ctx context.Context) (*LoadRosterOutput, error) {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.loadsPending++
	s.mu.Unlock()

	output, err := s.client.ListPlayers(ctx, &puppybowl.ListPlayersInput{})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadsPending--

	if err != nil {
		s.logNetworkError(err, "error fetching roster")
		return nil, err
	}

	// An older response never overwrites a newer snapshot
	if seq > s.appliedSeq {
		s.appliedSeq = seq
		s.players = output.Players
		s.loaded = true
		s.loadedAt = s.clock.Now()
	}

	s.logger.Debug().
		Int("players", len(output.Players)).
		Str("request_id", output.RequestID).
		Msg("roster loaded")

	return &LoadRosterOutput{
		Players: copyPlayers(s.players),
	}, nil
}

// UpdateDraftField replaces one field of the draft
func (s *service) UpdateDraftField(ctx context.Context, input *UpdateDraftFieldInput) (*UpdateDraftFieldOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft.With(input.Field, input.Value)
	if err != nil {
		return nil, ErrUnknownDraftField
	}
	s.draft = draft

	return &UpdateDraftFieldOutput{
		Draft: s.draft,
	}, nil
}

// SubmitDraft creates a player from the draft, then resets the draft and reloads
func (s *service) SubmitDraft(ctx context.Context) (*SubmitDraftOutput, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	draft := s.draft
	s.mu.Unlock()

	s.logger.Debug().Interface("player", draft).Msg("creating player")

	created, err := s.client.CreatePlayer(ctx, &puppybowl.CreatePlayerInput{
		Draft: draft,
	})

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.mu.Unlock()
		s.logNetworkError(err, "error creating a new player")
		return nil, err
	}
	s.draft = models.NewDraftPlayer()
	s.mu.Unlock()

	s.logger.Debug().
		Int("status", created.StatusCode).
		Str("body", created.Body).
		Str("request_id", created.RequestID).
		Msg("player created")

	output := &SubmitDraftOutput{
		Submitted: draft,
		Created:   created.Player,
	}

	loaded, err := s.LoadRoster(ctx)
	if err == nil {
		output.Reloaded = true
		output.Players = loaded.Players
	} else {
		output.Players = s.GetState(ctx).Players
	}

	return output, nil
}

// GetState returns a copy of the current view state
func (s *service) GetState(ctx context.Context) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase := PhaseIdle
	switch {
	case s.submitting:
		phase = PhaseSubmitting
	case s.loadsPending > 0:
		phase = PhaseLoading
	}

	return &State{
		Players:  copyPlayers(s.players),
		Draft:    s.draft,
		Loaded:   s.loaded,
		LoadedAt: s.loadedAt,
		Phase:    phase,
	}
}

// logNetworkError writes the tagged detail of a failed request
func (s *service) logNetworkError(err error, msg string) {
	event := s.logger.Error().Err(err)

	var netErr *puppybowl.NetworkError
	if errors.As(err, &netErr) {
		event = event.
			Str("kind", string(netErr.Kind)).
			Str("method", netErr.Method).
			Str("url", netErr.URL)
		if netErr.Kind == puppybowl.ErrorKindStatus {
			event = event.
				Int("status", netErr.StatusCode).
				Str("body", netErr.Body)
		}
	}

	event.Msg(msg)
}

func copyPlayers(players []*models.Player) []*models.Player {
	out := make([]*models.Player, len(players))
	for idx, p := range players {
		if p == nil {
			continue
		}
		cp := *p
		out[idx] = &cp
	}
	return out
}
