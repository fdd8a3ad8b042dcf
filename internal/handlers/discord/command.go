package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Responder is the part of a Discord session used to answer interactions
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// InteractionHandler handles a single component or modal interaction
type InteractionHandler func(r Responder, i *discordgo.InteractionCreate) error

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(r Responder, i *discordgo.InteractionCreate) error

	// ComponentHandlers maps component custom IDs to their handlers
	ComponentHandlers() map[string]InteractionHandler

	// ModalHandlers maps modal custom IDs to their handlers
	ModalHandlers() map[string]InteractionHandler
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(r Responder, i *discordgo.InteractionCreate, message string) error {
	return r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondWithEphemeralView sends an ephemeral embed with components, visible only to the user
func RespondWithEphemeralView(r Responder, i *discordgo.InteractionCreate, v *view) error {
	return r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    v.Content,
			Embeds:     []*discordgo.MessageEmbed{v.Embed},
			Components: v.Components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// UpdateWithView replaces the message the clicked component belongs to
func UpdateWithView(r Responder, i *discordgo.InteractionCreate, v *view) error {
	return r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    v.Content,
			Embeds:     []*discordgo.MessageEmbed{v.Embed},
			Components: v.Components,
		},
	})
}

// DeferUpdate acknowledges a component click; the message is edited later with EditWithView
func DeferUpdate(r Responder, i *discordgo.InteractionCreate) error {
	return r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// EditWithView edits the original response after a deferred acknowledgement
func EditWithView(r Responder, i *discordgo.InteractionCreate, v *view) error {
	embeds := []*discordgo.MessageEmbed{v.Embed}
	components := v.Components
	content := v.Content

	_, err := r.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}

// RespondWithModal opens a modal form
func RespondWithModal(r Responder, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	return r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
}

// interactionUserID returns the invoking user for guild and DM interactions
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
