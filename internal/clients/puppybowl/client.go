package puppybowl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/KirkDiggler/puppybowl/internal/common/uuid"
	"github.com/KirkDiggler/puppybowl/internal/models"
)

const (
	// listQuery asks the server for the roster in position order
	listQuery = "sort=position&order=asc"

	// maxErrorBody caps how much of a failed response we keep for logging
	maxErrorBody = 4 << 10

	headerRequestID = "X-Request-ID"
)

// client implements the Client interface over HTTP
type client struct {
	baseURL    string
	httpClient *http.Client
	uuidGen    uuid.UUID
}

// New creates a new players API client
func New(cfg *Config) (*client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrEmptyBaseURL
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "?"),
		httpClient: httpClient,
		uuidGen:    cfg.UUIDGenerator,
	}, nil
}

// ListPlayers fetches the roster sorted by position ascending
func (c *client) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	url := c.baseURL + "?" + listQuery
	if strings.Contains(c.baseURL, "?") {
		url = c.baseURL + "&" + listQuery
	}

	requestID := c.uuidGen.NewUUID()
	body, _, err := c.do(ctx, http.MethodGet, url, requestID, nil)
	if err != nil {
		return nil, err
	}

	var envelope playersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &NetworkError{Kind: ErrorKindDecode, Method: http.MethodGet, URL: url, Err: err}
	}

	if envelope.Data == nil {
		return nil, &NetworkError{
			Kind:   ErrorKindDecode,
			Method: http.MethodGet,
			URL:    url,
			Err:    errors.New("response has no data object"),
		}
	}

	players := envelope.Data.Players
	if players == nil {
		players = []*models.Player{}
	}

	// The roster must mirror the server's sequence, so a hole in it is unusable
	for idx, p := range players {
		if p == nil {
			return nil, &NetworkError{
				Kind:   ErrorKindDecode,
				Method: http.MethodGet,
				URL:    url,
				Err:    fmt.Errorf("player %d is null", idx),
			}
		}
	}

	return &ListPlayersOutput{
		Players:   players,
		RequestID: requestID,
	}, nil
}

// CreatePlayer posts the draft as a new player
func (c *client) CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	payload, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	requestID := c.uuidGen.NewUUID()
	body, status, err := c.do(ctx, http.MethodPost, c.baseURL, requestID, payload)
	if err != nil {
		return nil, err
	}

	output := &CreatePlayerOutput{
		StatusCode: status,
		Body:       string(body),
		RequestID:  requestID,
	}

	// The create response is informational only
	var envelope playersEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		output.Player = envelope.Data.NewPlayer
	}

	return output, nil
}

// do sends one request and classifies any failure into a NetworkError
func (c *client) do(ctx context.Context, method, url, requestID string, payload []byte) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, &NetworkError{Kind: ErrorKindTransport, Method: method, URL: url, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Kind: ErrorKindTransport, Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.StatusCode, &NetworkError{
			Kind:       ErrorKindStatus,
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(responseBody)),
		}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &NetworkError{Kind: ErrorKindTransport, Method: method, URL: url, Err: err}
	}

	return responseBody, resp.StatusCode, nil
}
