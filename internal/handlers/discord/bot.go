package discord

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/KirkDiggler/puppybowl/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session *discordgo.Session

	// mu guards the routing maps; interactions are handled on gateway goroutines
	mu         sync.RWMutex
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	components map[string]InteractionHandler
	modals     map[string]InteractionHandler
	rosters    *rosterRegistry
	messaging  messaging.Service
	logger     zerolog.Logger
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// NewRoster builds the roster client for a user on their first interaction
	NewRoster RosterFactory

	// MessagingService picks the flavor text
	MessagingService messaging.Service

	// Logger is optional
	Logger *zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", "discord").Logger()

	rosters, err := newRosterRegistry(cfg.NewRoster, logger)
	if err != nil {
		return nil, err
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		components: make(map[string]InteractionHandler),
		modals:     make(map[string]InteractionHandler),
		rosters:    rosters,
		messaging:  cfg.MessagingService,
		logger:     logger,
		config:     cfg,
	}

	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		bot.handleInteraction(s, i)
	})

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Routes exist before the gateway can deliver the first interaction
	cmd := NewPuppyBowlCommand(b.rosters, b.messaging, b.logger)
	b.addHandlers(cmd)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(cmd); err != nil {
		return fmt.Errorf("failed to register puppybowl command: %w", err)
	}

	b.logger.Info().Msg("bot is now running, press CTRL-C to exit")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	b.mu.RLock()
	commandIDs := make(map[string]string, len(b.commandIDs))
	for name, id := range b.commandIDs {
		commandIDs[name] = id
	}
	b.mu.RUnlock()

	for cmdName, cmdID := range commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Error().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			b.logger.Info().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
		}
	}

	err := b.session.Close()
	b.rosters.Wait()
	return err
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.appID()

	// Guild commands update instantly, global ones can take an hour
	if b.config.GuildID != "" {
		b.logger.Info().Str("command", cmd.GetName()).Str("guild_id", b.config.GuildID).Msg("registering command for guild")
	} else {
		b.logger.Info().Str("command", cmd.GetName()).Msg("registering command globally")
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.addHandlers(cmd)
	b.mu.Lock()
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.mu.Unlock()
	b.logger.Info().Str("command", cmd.GetName()).Str("command_id", createdCmd.ID).Msg("registered command")

	return nil
}

// addHandlers routes the command and its components and modals
func (b *Bot) addHandlers(cmd CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.commands[cmd.GetName()] = cmd
	for id, h := range cmd.ComponentHandlers() {
		b.components[id] = h
	}
	for id, h := range cmd.ModalHandlers() {
		b.modals[id] = h
	}
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(r Responder, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		b.mu.RLock()
		h, ok := b.commands[name]
		b.mu.RUnlock()
		if ok {
			if err := h.Handle(r, i); err != nil {
				b.logger.Error().Err(err).Str("command", name).Msg("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		b.dispatch(r, i, b.components, customID, "component")
	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		b.dispatch(r, i, b.modals, customID, "modal")
	}
}

func (b *Bot) dispatch(r Responder, i *discordgo.InteractionCreate, handlers map[string]InteractionHandler, customID, kind string) {
	b.mu.RLock()
	h, ok := handlers[customID]
	b.mu.RUnlock()
	if !ok {
		b.logger.Warn().Str(kind, customID).Msg("unknown interaction")
		if err := RespondWithEphemeralMessage(r, i, fmt.Sprintf("Unknown %s: %s", kind, strings.TrimPrefix(customID, "puppybowl_"))); err != nil {
			b.logger.Error().Err(err).Msg("error responding to unknown interaction")
		}
		return
	}

	if err := h(r, i); err != nil {
		b.logger.Error().Err(err).Str(kind, customID).Msg("error handling interaction")
	}
}
