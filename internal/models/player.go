package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlayerStatus represents where a player currently sits on the roster
type PlayerStatus string

const (
	// PlayerStatusBench indicates a player waiting on the bench
	PlayerStatusBench PlayerStatus = "bench"

	// PlayerStatusField indicates a player out on the field
	PlayerStatusField PlayerStatus = "field"
)

// IsValid reports whether the status is one of the known values
func (s PlayerStatus) IsValid() bool {
	return s == PlayerStatusBench || s == PlayerStatusField
}

// PlayerID is the server-assigned identifier of a player.
// The API sends numbers today; we keep it opaque.
type PlayerID string

// UnmarshalJSON accepts both JSON numbers and strings
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid player id: %w", err)
		}
		*id = PlayerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid player id: %w", err)
	}
	*id = PlayerID(n.String())
	return nil
}

// Player represents a roster entry owned by the remote API
type Player struct {
	// ID is assigned by the server
	ID PlayerID `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Breed is the dog breed of the player
	Breed string `json:"breed"`

	// ImageURL points at the player's picture
	ImageURL string `json:"imageUrl"`

	// Status is bench or field
	Status PlayerStatus `json:"status"`
}
