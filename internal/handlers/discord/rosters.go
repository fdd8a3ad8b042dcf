package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/services/roster"
	"github.com/rs/zerolog"
)

// startTimeout bounds the initial roster load kicked off for a new user
const startTimeout = 30 * time.Second

// RosterFactory builds the roster client for one Discord user
type RosterFactory func(userID string) (roster.Service, error)

// rosterRegistry keeps one started roster client per Discord user
type rosterRegistry struct {
	factory RosterFactory
	logger  zerolog.Logger

	mu      sync.Mutex
	rosters map[string]roster.Service

	// starting tracks initial loads still in flight
	starting sync.WaitGroup
}

func newRosterRegistry(factory RosterFactory, logger zerolog.Logger) (*rosterRegistry, error) {
	if factory == nil {
		return nil, errors.New("roster factory cannot be nil")
	}

	return &rosterRegistry{
		factory: factory,
		logger:  logger,
		rosters: make(map[string]roster.Service),
	}, nil
}

// Get returns the user's roster client. A new client starts its initial load in the
// background so the interaction can be answered within Discord's deadline.
// TODO: evict clients of users that have been idle for a day.
func (r *rosterRegistry) Get(ctx context.Context, userID string) (roster.Service, error) {
	if userID == "" {
		return nil, errors.New("user id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.rosters[userID]; ok {
		return svc, nil
	}

	svc, err := r.factory(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster for user %s: %w", userID, err)
	}
	r.rosters[userID] = svc

	r.starting.Add(1)
	go func() {
		defer r.starting.Done()

		startCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), startTimeout)
		defer cancel()

		// A failed initial load leaves the roster empty; the roster logs the cause
		if err := svc.Start(startCtx); err != nil {
			r.logger.Debug().Err(err).Str("user_id", userID).Msg("initial roster load failed")
		}
	}()

	return svc, nil
}

// Wait blocks until every initial load has finished
func (r *rosterRegistry) Wait() {
	r.starting.Wait()
}

// Len returns the number of users with a roster client
func (r *rosterRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rosters)
}
