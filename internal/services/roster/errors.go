package roster

// RosterError is a custom error type for roster-related errors
type RosterError string

// Error implements the error interface
func (e RosterError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         RosterError = "config cannot be nil"
	ErrNilClient         RosterError = "players client cannot be nil"
	ErrNilInput          RosterError = "input cannot be nil"
	ErrUnknownDraftField RosterError = "unknown draft field"
	ErrSubmitInFlight    RosterError = "a submit is already in flight"
)
