package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/KirkDiggler/puppybowl/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Component and modal custom IDs
const (
	ButtonRefresh  = "puppybowl_refresh"
	ButtonOpenForm = "puppybowl_open_form"
	ButtonSubmit   = "puppybowl_submit"
	SelectStatus   = "puppybowl_status"
	ModalDraft     = "puppybowl_draft"
)

const (
	colorRoster = 0x00ff00
	colorDraft  = 0x3498db

	// maxDescription is Discord's limit for an embed description
	maxDescription = 4096
)

// view is one renderable message: text, an embed and its components
type view struct {
	Content    string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

// renderRosterView renders the roster as one "Name / Breed / status" line per player
func renderRosterView(header *messaging.GetRosterMessageOutput, players []*models.Player, note string) *view {
	var description string
	if len(players) == 0 {
		description = messaging.LoadingMessage
	} else {
		description = rosterLines(players)
	}

	embed := &discordgo.MessageEmbed{
		Title:       header.Title,
		Description: description,
		Color:       colorRoster,
		Footer: &discordgo.MessageEmbedFooter{
			Text: header.Message,
		},
	}

	return &view{
		Content: note,
		Embed:   embed,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Refresh",
						Style:    discordgo.SecondaryButton,
						CustomID: ButtonRefresh,
					},
					discordgo.Button{
						Label:    "New Puppy",
						Style:    discordgo.PrimaryButton,
						CustomID: ButtonOpenForm,
					},
				},
			},
		},
	}
}

func rosterLines(players []*models.Player) string {
	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("%s / %s / %s", p.Name, p.Breed, p.Status))
	}

	full := strings.Join(lines, "\n")
	if len(full) <= maxDescription {
		return full
	}

	// Room for the "...and N more" marker
	const reserve = 32
	var b strings.Builder
	for idx, line := range lines {
		if b.Len()+len(line)+1 > maxDescription-reserve {
			fmt.Fprintf(&b, "...and %d more", len(lines)-idx)
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderDraftView renders the draft preview with the status select and the Add Puppy button
func renderDraftView(draft models.DraftPlayer, msg *messaging.GetDraftMessageOutput) *view {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Message,
		Color:       colorDraft,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: valueOrDash(draft.Name), Inline: true},
			{Name: "Breed", Value: valueOrDash(draft.Breed), Inline: true},
			{Name: "Status", Value: valueOrDash(string(draft.Status)), Inline: true},
			{Name: "Image URL", Value: valueOrDash(draft.ImageURL)},
		},
	}
	if draft.ImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: draft.ImageURL}
	}

	statusOptions := make([]discordgo.SelectMenuOption, 0, 2)
	for _, status := range []models.PlayerStatus{models.PlayerStatusBench, models.PlayerStatusField} {
		statusOptions = append(statusOptions, discordgo.SelectMenuOption{
			Label:   string(status),
			Value:   string(status),
			Default: draft.Status == status,
		})
	}

	return &view{
		Embed: embed,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType:    discordgo.StringSelectMenu,
						CustomID:    SelectStatus,
						Placeholder: "Status",
						Options:     statusOptions,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Edit",
						Style:    discordgo.SecondaryButton,
						CustomID: ButtonOpenForm,
					},
					discordgo.Button{
						Label:    "Add Puppy",
						Style:    discordgo.SuccessButton,
						CustomID: ButtonSubmit,
						Disabled: !msg.ReadyToSubmit,
					},
				},
			},
		},
	}
}

// renderDraftModal renders the form for the text fields, prefilled from the draft
func renderDraftModal(draft models.DraftPlayer) *discordgo.InteractionResponseData {
	input := func(field models.DraftField, label, placeholder, value string) discordgo.MessageComponent {
		return discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    string(field),
					Label:       label,
					Style:       discordgo.TextInputShort,
					Placeholder: placeholder,
					Value:       value,
					Required:    true,
				},
			},
		}
	}

	return &discordgo.InteractionResponseData{
		CustomID: ModalDraft,
		Title:    "Add Puppy",
		Components: []discordgo.MessageComponent{
			input(models.DraftFieldName, "Name", "Sir Barks A Lot", draft.Name),
			input(models.DraftFieldBreed, "Breed", "Corgi", draft.Breed),
			input(models.DraftFieldImageURL, "Image URL", "https://example.com/puppy.png", draft.ImageURL),
		},
	}
}

// modalValues collects text input values by custom ID from a modal submit
func modalValues(components []discordgo.MessageComponent) map[string]string {
	values := make(map[string]string)
	for _, component := range components {
		var children []discordgo.MessageComponent
		switch row := component.(type) {
		case *discordgo.ActionsRow:
			children = row.Components
		case discordgo.ActionsRow:
			children = row.Components
		}

		for _, child := range children {
			switch input := child.(type) {
			case *discordgo.TextInput:
				values[input.CustomID] = input.Value
			case discordgo.TextInput:
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

func valueOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
