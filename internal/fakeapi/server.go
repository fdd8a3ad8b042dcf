package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/puppybowl/internal/common/clock"
	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/KirkDiggler/puppybowl/internal/repositories/player"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// DefaultImageURL is used when a player is created without a picture
const DefaultImageURL = "https://learndotresources.s3.amazonaws.com/workshop/60ad725bbe74cd0004a6cba0/puppybowl-default-dog.png"

// Config holds configuration for the fake players API
type Config struct {
	// Repository stores the players; defaults to an in-memory store
	Repository player.Repository

	// Clock stamps createdAt/updatedAt; defaults to the system clock
	Clock clock.Clock

	// Logger is optional
	Logger *zerolog.Logger
}

// Player is a stored record in the shape the hosted API returns
type Player = player.Record

type envelope struct {
	Success bool        `json:"success"`
	Error   *apiError   `json:"error"`
	Data    interface{} `json:"data"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Server is a stand-in for the hosted players collection
type Server struct {
	repo   player.Repository
	clock  clock.Clock
	logger zerolog.Logger
}

// New creates a fake API over the configured repository
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	repo := cfg.Repository
	if repo == nil {
		repo = player.NewMemory()
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Server{
		repo:   repo,
		clock:  clk,
		logger: logger.With().Str("component", "fakeapi").Logger(),
	}, nil
}

// Handler serves /players and /health with permissive CORS like the hosted API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /players", s.handleList)
	mux.HandleFunc("POST /players", s.handleCreate)
	mux.HandleFunc("PATCH /players/{id}", s.handleUpdatePosition)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Warn().Err(err).Msg("failed to write health check response")
		}
	})

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(mux)
}

// Add stores a player and returns the stored record
func (s *Server) Add(ctx context.Context, draft models.DraftPlayer) (*Player, error) {
	status := string(draft.Status)
	if status == "" {
		status = string(models.PlayerStatusBench)
	}
	imageURL := draft.ImageURL
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	out, err := s.repo.CreatePlayer(ctx, &player.CreatePlayerInput{
		Name:     draft.Name,
		Breed:    draft.Breed,
		Status:   status,
		ImageURL: imageURL,
		At:       s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return out.Player, nil
}

// Seed loads a few players for local runs into an empty store
func (s *Server) Seed(ctx context.Context) error {
	existing, err := s.Players(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, draft := range []models.DraftPlayer{
		{Name: "Rex", Breed: "Labrador", Status: models.PlayerStatusField},
		{Name: "Biscuit", Breed: "Corgi", Status: models.PlayerStatusBench},
		{Name: "Pepper", Breed: "Border Collie", Status: models.PlayerStatusField},
	} {
		if _, err := s.Add(ctx, draft); err != nil {
			return fmt.Errorf("failed to seed %s: %w", draft.Name, err)
		}
	}
	return nil
}

// Players returns the stored records in id order
func (s *Server) Players(ctx context.Context) ([]*Player, error) {
	out, err := s.repo.ListPlayers(ctx, &player.ListPlayersInput{})
	if err != nil {
		return nil, err
	}
	return out.Players, nil
}

// SetPosition moves a player to a new position; backs PATCH /players/{id}
func (s *Server) SetPosition(ctx context.Context, id, position int) error {
	return s.repo.UpdatePosition(ctx, &player.UpdatePositionInput{
		ID:       id,
		Position: position,
		At:       s.clock.Now().UTC(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	players, err := s.Players(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		s.respondError(w, http.StatusInternalServerError, "InternalServerError", "failed to list players")
		return
	}

	query := r.URL.Query()
	if query.Get("sort") == "position" {
		desc := strings.EqualFold(query.Get("order"), "desc")
		sort.SliceStable(players, func(i, j int) bool {
			if desc {
				return players[i].Position > players[j].Position
			}
			return players[i].Position < players[j].Position
		})
	}

	s.logger.Debug().
		Str("request_id", r.Header.Get("X-Request-ID")).
		Int("players", len(players)).
		Msg("listed players")

	s.respond(w, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]interface{}{"players": players},
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft models.DraftPlayer
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, http.StatusBadRequest, "BadRequest", "request body must be a JSON object")
		return
	}

	draft.Name = strings.TrimSpace(draft.Name)
	draft.Breed = strings.TrimSpace(draft.Breed)
	if draft.Name == "" || draft.Breed == "" {
		s.respondError(w, http.StatusBadRequest, "ValidationError", "name and breed are required")
		return
	}

	if draft.Status != "" && !draft.Status.IsValid() {
		s.respondError(w, http.StatusBadRequest, "ValidationError", "status must be bench or field")
		return
	}

	created, err := s.Add(r.Context(), draft)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create player")
		s.respondError(w, http.StatusInternalServerError, "InternalServerError", "failed to create player")
		return
	}

	s.logger.Info().
		Str("request_id", r.Header.Get("X-Request-ID")).
		Int("id", created.ID).
		Str("name", created.Name).
		Msg("created player")

	s.respond(w, http.StatusCreated, envelope{
		Success: true,
		Data:    map[string]interface{}{"newPlayer": created},
	})
}

type positionRequest struct {
	Position *int `json:"position"`
}

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		s.respondError(w, http.StatusBadRequest, "BadRequest", "player id must be a positive integer")
		return
	}

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position == nil {
		s.respondError(w, http.StatusBadRequest, "ValidationError", "position is required")
		return
	}

	err = s.SetPosition(r.Context(), id, *req.Position)
	if errors.Is(err, player.ErrPlayerNotFound) {
		s.respondError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("player %d does not exist", id))
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("failed to move player")
		s.respondError(w, http.StatusInternalServerError, "InternalServerError", "failed to move player")
		return
	}

	players, err := s.Players(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		s.respondError(w, http.StatusInternalServerError, "InternalServerError", "failed to list players")
		return
	}

	var moved *Player
	for _, p := range players {
		if p.ID == id {
			moved = p
			break
		}
	}

	s.logger.Info().
		Str("request_id", r.Header.Get("X-Request-ID")).
		Int("id", id).
		Int("position", *req.Position).
		Msg("moved player")

	s.respond(w, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]interface{}{"player": moved},
	})
}

func (s *Server) respondError(w http.ResponseWriter, status int, name, message string) {
	s.respond(w, status, envelope{
		Success: false,
		Error:   &apiError{Name: name, Message: message},
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write response")
	}
}
