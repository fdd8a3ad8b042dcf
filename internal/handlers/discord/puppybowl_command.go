package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/KirkDiggler/puppybowl/internal/services/messaging"
	"github.com/KirkDiggler/puppybowl/internal/services/roster"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// PuppyBowlCommand handles the /puppybowl command and its form
type PuppyBowlCommand struct {
	BaseCommand
	rosters          *rosterRegistry
	messagingService messaging.Service
	logger           zerolog.Logger
}

// NewPuppyBowlCommand creates a new puppybowl command handler
func NewPuppyBowlCommand(rosters *rosterRegistry, messagingService messaging.Service, logger zerolog.Logger) *PuppyBowlCommand {
	return &PuppyBowlCommand{
		BaseCommand: BaseCommand{
			Name:        "puppybowl",
			Description: "Puppy Bowl roster",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roster",
					Description: "Show the players",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a new puppy",
				},
			},
		},
		rosters:          rosters,
		messagingService: messagingService,
		logger:           logger,
	}
}

// Handle processes a Discord interaction for the puppybowl command
func (c *PuppyBowlCommand) Handle(r Responder, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	if len(data.Options) == 0 {
		return errors.New("missing subcommand")
	}

	switch data.Options[0].Name {
	case "roster":
		return c.handleRoster(r, i)
	case "add":
		return c.handleOpenForm(r, i)
	default:
		return fmt.Errorf("unknown subcommand %q", data.Options[0].Name)
	}
}

// ComponentHandlers maps the buttons and select menus to their handlers
func (c *PuppyBowlCommand) ComponentHandlers() map[string]InteractionHandler {
	return map[string]InteractionHandler{
		ButtonRefresh:  c.handleRefresh,
		ButtonOpenForm: c.handleOpenForm,
		ButtonSubmit:   c.handleSubmit,
		SelectStatus:   c.handleStatusSelect,
	}
}

// ModalHandlers maps the draft form to its handler
func (c *PuppyBowlCommand) ModalHandlers() map[string]InteractionHandler {
	return map[string]InteractionHandler{
		ModalDraft: c.handleDraftModal,
	}
}

func (c *PuppyBowlCommand) rosterFor(ctx context.Context, r Responder, i *discordgo.InteractionCreate) (roster.Service, error) {
	svc, err := c.rosters.Get(ctx, interactionUserID(i))
	if err != nil {
		c.logger.Error().Err(err).Msg("error getting roster")
		return nil, RespondWithEphemeralMessage(r, i, "Something went wrong, try again later.")
	}
	return svc, nil
}

// handleRoster shows the user's roster
func (c *PuppyBowlCommand) handleRoster(r Responder, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.rosterFor(ctx, r, i)
	if svc == nil {
		return err
	}

	v, err := c.rosterView(ctx, svc.GetState(ctx).Players, "")
	if err != nil {
		return err
	}
	return RespondWithEphemeralView(r, i, v)
}

// handleRefresh reloads the roster in place
func (c *PuppyBowlCommand) handleRefresh(r Responder, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.rosterFor(ctx, r, i)
	if svc == nil {
		return err
	}

	if err := DeferUpdate(r, i); err != nil {
		return err
	}

	// A failed load keeps the last roster
	_, _ = svc.LoadRoster(ctx)

	v, err := c.rosterView(ctx, svc.GetState(ctx).Players, "")
	if err != nil {
		return err
	}
	return EditWithView(r, i, v)
}

// handleOpenForm opens the draft form prefilled with what the user typed so far
func (c *PuppyBowlCommand) handleOpenForm(r Responder, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.rosterFor(ctx, r, i)
	if svc == nil {
		return err
	}

	return RespondWithModal(r, i, renderDraftModal(svc.GetState(ctx).Draft))
}

// handleDraftModal copies the submitted text fields into the draft and shows the preview
func (c *PuppyBowlCommand) handleDraftModal(r Responder, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.rosterFor(ctx, r, i)
	if svc == nil {
		return err
	}

	values := modalValues(i.ModalSubmitData().Components)
	for _, field := range []models.DraftField{models.DraftFieldName, models.DraftFieldBreed, models.DraftFieldImageURL} {
		value, ok := values[string(field)]
		if !ok {
			continue
		}
		if _, err := svc.UpdateDraftField(ctx, &roster.UpdateDraftFieldInput{Field: field, Value: value}); err != nil {
			return err
		}
	}

	v, err := c.draftView(ctx, svc.GetState(ctx).Draft)
	if err != nil {
		return err
	}
	return RespondWithEphemeralView(r, i, v)
}

// handleStatusSelect sets the draft status from the select menu
func (c *PuppyBowlCommand) handleStatusSelect(r Responder, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.rosterFor(ctx, r, i)
	if svc == nil {
		return err
	}

	values := i.MessageComponentData().Values
	if len(values) > 0 && models.PlayerStatus(values[0]).IsValid() {
		if _, err := svc.UpdateDraftField(ctx, &roster.UpdateDraftFieldInput{
			Field: models.DraftFieldStatus,
			Value: values[0],
		}); err != nil {
			return err
		}
	}

	v, err := c.draftView(ctx, svc.GetState(ctx).Draft)
	if err != nil {
		return err
	}
	return UpdateWithView(r, i, v)
}

// handleSubmit sends the draft and shows the refreshed roster, or the unchanged draft on failure
func (c *PuppyBowlCommand) handleSubmit(r Responder, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	svc, err := c.rosterFor(ctx, r, i)
	if svc == nil {
		return err
	}

	draft := svc.GetState(ctx).Draft
	if len(draft.MissingRequired()) > 0 {
		v, err := c.draftView(ctx, draft)
		if err != nil {
			return err
		}
		return UpdateWithView(r, i, v)
	}

	if err := DeferUpdate(r, i); err != nil {
		return err
	}

	output, err := svc.SubmitDraft(ctx)
	if err != nil {
		if errors.Is(err, roster.ErrSubmitInFlight) {
			return nil
		}
		// Logged by the roster; the user sees their draft again
		v, viewErr := c.draftView(ctx, svc.GetState(ctx).Draft)
		if viewErr != nil {
			return viewErr
		}
		return EditWithView(r, i, v)
	}

	added, err := c.messagingService.GetPlayerAddedMessage(ctx, &messaging.GetPlayerAddedMessageInput{
		PlayerName: output.Submitted.Name,
		Status:     output.Submitted.Status,
	})
	if err != nil {
		return err
	}

	v, err := c.rosterView(ctx, output.Players, added.Message)
	if err != nil {
		return err
	}
	return EditWithView(r, i, v)
}

func (c *PuppyBowlCommand) rosterView(ctx context.Context, players []*models.Player, note string) (*view, error) {
	header, err := c.messagingService.GetRosterMessage(ctx, &messaging.GetRosterMessageInput{
		PlayerCount: len(players),
	})
	if err != nil {
		return nil, err
	}
	return renderRosterView(header, players, note), nil
}

func (c *PuppyBowlCommand) draftView(ctx context.Context, draft models.DraftPlayer) (*view, error) {
	msg, err := c.messagingService.GetDraftMessage(ctx, &messaging.GetDraftMessageInput{
		Draft:   draft,
		Missing: draft.MissingRequired(),
	})
	if err != nil {
		return nil, err
	}
	return renderDraftView(draft, msg), nil
}
