package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/KirkDiggler/puppybowl/internal/services/messaging"
	"github.com/KirkDiggler/puppybowl/internal/services/roster"
)

const prompt = "> "

const helpText = `commands:
  list                   show the roster
  reload                 fetch the roster again
  set <field> <value>    edit the draft (name, breed, imageUrl, status)
  draft                  show the draft
  submit                 add the draft to the roster
  help                   show this help
  quit                   exit`

// Config holds the configuration for the terminal handler
type Config struct {
	RosterService    roster.Service
	MessagingService messaging.Service

	In  io.Reader
	Out io.Writer
}

// Handler is a line-oriented UI over one roster service
type Handler struct {
	roster    roster.Service
	messaging messaging.Service
	in        io.Reader
	out       io.Writer
}

// New creates a new terminal handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RosterService == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.In == nil || cfg.Out == nil {
		return nil, errors.New("input and output cannot be nil")
	}

	return &Handler{
		roster:    cfg.RosterService,
		messaging: cfg.MessagingService,
		in:        cfg.In,
		out:       cfg.Out,
	}, nil
}

// Run loads the roster, prints it and then reads commands until quit or EOF
func (h *Handler) Run(ctx context.Context) error {
	// Load failures are logged by the roster service; the list just stays empty
	_ = h.roster.Start(ctx)
	if err := h.printRoster(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, prompt)
		if !scanner.Scan() {
			break
		}

		quit, err := h.dispatch(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	fmt.Fprintln(h.out)
	return scanner.Err()
}

func (h *Handler) dispatch(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(h.out, helpText)
	case "list":
		return false, h.printRoster(ctx)
	case "reload":
		_, _ = h.roster.LoadRoster(ctx)
		return false, h.printRoster(ctx)
	case "draft":
		return false, h.printDraft(ctx)
	case "set":
		return false, h.handleSet(ctx, line)
	case "submit":
		return false, h.handleSubmit(ctx)
	default:
		fmt.Fprintf(h.out, "unknown command %q, type help\n", fields[0])
	}

	return false, nil
}

func (h *Handler) handleSet(ctx context.Context, line string) error {
	name, value, ok := splitSet(line)
	if !ok {
		fmt.Fprintln(h.out, "usage: set <field> <value>")
		return nil
	}

	field, err := models.ParseDraftField(name)
	if err != nil {
		fmt.Fprintf(h.out, "unknown field %q (name, breed, imageUrl, status)\n", name)
		return nil
	}

	if field == models.DraftFieldStatus && !models.PlayerStatus(value).IsValid() {
		fmt.Fprintln(h.out, "status must be bench or field")
		return nil
	}

	_, err = h.roster.UpdateDraftField(ctx, &roster.UpdateDraftFieldInput{
		Field: field,
		Value: value,
	})
	return err
}

func (h *Handler) handleSubmit(ctx context.Context) error {
	draft := h.roster.GetState(ctx).Draft

	// Same as a browser refusing to submit a form with empty required inputs
	if missing := draft.MissingRequired(); len(missing) > 0 {
		return h.printDraftMessage(ctx, draft, missing)
	}

	output, err := h.roster.SubmitDraft(ctx)
	if err != nil {
		if errors.Is(err, roster.ErrSubmitInFlight) {
			return nil
		}
		// Already logged; the form keeps its values so the user can try again
		return h.printDraft(ctx)
	}

	added, err := h.messaging.GetPlayerAddedMessage(ctx, &messaging.GetPlayerAddedMessageInput{
		PlayerName: output.Submitted.Name,
		Status:     output.Submitted.Status,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(h.out, added.Message)

	return h.printRoster(ctx)
}

func (h *Handler) printRoster(ctx context.Context) error {
	state := h.roster.GetState(ctx)

	header, err := h.messaging.GetRosterMessage(ctx, &messaging.GetRosterMessageInput{
		PlayerCount: len(state.Players),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(h.out, header.Title)
	fmt.Fprint(h.out, RenderRoster(state.Players))
	return nil
}

func (h *Handler) printDraft(ctx context.Context) error {
	draft := h.roster.GetState(ctx).Draft
	return h.printDraftMessage(ctx, draft, draft.MissingRequired())
}

func (h *Handler) printDraftMessage(ctx context.Context, draft models.DraftPlayer, missing []models.DraftField) error {
	msg, err := h.messaging.GetDraftMessage(ctx, &messaging.GetDraftMessageInput{
		Draft:   draft,
		Missing: missing,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(h.out, RenderDraft(draft))
	fmt.Fprintln(h.out, msg.Message)
	return nil
}

// splitSet reads "set <field> <value>". The value is the raw rest of the line after the
// single space following the field, so inner and surrounding spaces are kept.
func splitSet(line string) (field, value string, ok bool) {
	rest := strings.TrimLeft(line, " \t")
	idx := strings.IndexAny(rest, " \t")
	if idx < 0 {
		return "", "", false
	}

	rest = strings.TrimLeft(rest[idx:], " \t")
	if rest == "" {
		return "", "", false
	}

	idx = strings.IndexAny(rest, " \t")
	if idx < 0 {
		return rest, "", true
	}
	return rest[:idx], rest[idx+1:], true
}

// RenderRoster prints one "Name / Breed / status" line per player, or Loading... when empty
func RenderRoster(players []*models.Player) string {
	if len(players) == 0 {
		return messaging.LoadingMessage + "\n"
	}

	var b strings.Builder
	for _, p := range players {
		fmt.Fprintf(&b, "%s / %s / %s\n", p.Name, p.Breed, p.Status)
	}
	return b.String()
}

// RenderDraft prints the draft form
func RenderDraft(draft models.DraftPlayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:      %s\n", draft.Name)
	fmt.Fprintf(&b, "Breed:     %s\n", draft.Breed)
	fmt.Fprintf(&b, "Image URL: %s\n", draft.ImageURL)
	fmt.Fprintf(&b, "Status:    %s\n", draft.Status)
	return b.String()
}
