package models

import "fmt"

// DraftField names one editable field of a DraftPlayer
type DraftField string

const (
	DraftFieldName     DraftField = "name"
	DraftFieldBreed    DraftField = "breed"
	DraftFieldStatus   DraftField = "status"
	DraftFieldImageURL DraftField = "imageUrl"
)

// DraftFields lists the editable fields in form order
var DraftFields = []DraftField{
	DraftFieldName,
	DraftFieldBreed,
	DraftFieldImageURL,
	DraftFieldStatus,
}

// ParseDraftField converts a form field name into a DraftField
func ParseDraftField(name string) (DraftField, error) {
	switch DraftField(name) {
	case DraftFieldName, DraftFieldBreed, DraftFieldStatus, DraftFieldImageURL:
		return DraftField(name), nil
	default:
		return "", fmt.Errorf("unknown draft field %q", name)
	}
}

// DraftPlayer is the locally held candidate player that has not been submitted yet.
// Field order matches the create request body.
type DraftPlayer struct {
	Name     string       `json:"name"`
	Breed    string       `json:"breed"`
	Status   PlayerStatus `json:"status"`
	ImageURL string       `json:"imageUrl"`
}

// NewDraftPlayer returns the empty draft a form starts with
func NewDraftPlayer() DraftPlayer {
	return DraftPlayer{
		Status: PlayerStatusBench,
	}
}

// Get returns the value of a single field
func (d DraftPlayer) Get(field DraftField) string {
	switch field {
	case DraftFieldName:
		return d.Name
	case DraftFieldBreed:
		return d.Breed
	case DraftFieldStatus:
		return string(d.Status)
	case DraftFieldImageURL:
		return d.ImageURL
	}
	return ""
}

// With returns a copy of the draft with exactly one field replaced
func (d DraftPlayer) With(field DraftField, value string) (DraftPlayer, error) {
	switch field {
	case DraftFieldName:
		d.Name = value
	case DraftFieldBreed:
		d.Breed = value
	case DraftFieldStatus:
		d.Status = PlayerStatus(value)
	case DraftFieldImageURL:
		d.ImageURL = value
	default:
		return d, fmt.Errorf("unknown draft field %q", field)
	}
	return d, nil
}

// MissingRequired lists the required text fields that are still empty
func (d DraftPlayer) MissingRequired() []DraftField {
	var missing []DraftField
	if d.Name == "" {
		missing = append(missing, DraftFieldName)
	}
	if d.Breed == "" {
		missing = append(missing, DraftFieldBreed)
	}
	if d.ImageURL == "" {
		missing = append(missing, DraftFieldImageURL)
	}
	return missing
}
