package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/partybac/internal/services/messaging"
	"github.com/KirkDiggler/partybac/internal/services/party"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session      *discordgo.Session
	commands     map[string]CommandHandler
	commandIDs   map[string]string // Maps command name to command ID
	partyService party.Service
	messaging    messaging.Service
	log          *slog.Logger
	config       *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	PartyService party.Service
	Messaging    messaging.Service

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.PartyService == nil {
		return nil, errors.New("party service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:      session,
		commands:     make(map[string]CommandHandler),
		commandIDs:   make(map[string]string),
		partyService: cfg.PartyService,
		messaging:    cfg.Messaging,
		log:          logger.With("component", "discord"),
		config:       cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	partyCmd := NewPartyCommand(b.partyService, b.messaging, b.log)
	if err := b.RegisterCommand(partyCmd); err != nil {
		return fmt.Errorf("failed to register party command: %w", err)
	}

	b.log.Info("bot is running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn("failed to delete command", "command", cmdName, "id", cmdID, "error", err)
		} else {
			b.log.Info("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.Info("registering command for guild", "command", cmd.GetName(), "guild", guildID)
	} else {
		b.log.Info("registering command globally", "command", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info("registered command", "command", cmd.GetName(), "id", createdCmd.ID)

	return nil
}

// Button IDs
const (
	ButtonRefreshLeaderboard = "party_refresh_leaderboard"
	ButtonShowActivity       = "party_show_activity"
)

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.log.Error("error handling command", "command", i.ApplicationCommandData().Name, "error", err)
			}
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if err := b.handleAutocomplete(s, i); err != nil {
			b.log.Warn("error handling autocomplete", "error", err)
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.log.Error("error handling component interaction", "error", err)
		}
	}
}

// handleAutocomplete suggests participant names for the focused option
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}

	prefix := ""
	for _, opt := range data.Options[0].Options {
		if opt.Focused {
			prefix = opt.StringValue()
		}
	}

	out, err := b.partyService.GetLeaderboard(context.Background(), &party.GetLeaderboardInput{})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(out.Leaderboard.Entries))
	for _, entry := range out.Leaderboard.Entries {
		names = append(names, entry.Name)
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: nameChoices(names, prefix),
		},
	})
}

// nameChoices filters names by a case-insensitive prefix. Discord accepts at
// most 25 choices.
func nameChoices(names []string, prefix string) []*discordgo.ApplicationCommandOptionChoice {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
		if len(choices) == 25 {
			break
		}
	}
	return choices
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	switch customID := i.MessageComponentData().CustomID; customID {
	case ButtonRefreshLeaderboard:
		out, err := b.partyService.GetLeaderboard(ctx, &party.GetLeaderboardInput{})
		if err != nil {
			return RespondWithEphemeralMessage(s, i, err.Error())
		}
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{renderLeaderboardEmbed(out.Leaderboard)},
				Components: leaderboardButtons(),
			},
		})
	case ButtonShowActivity:
		out, err := b.partyService.GetActivityLog(ctx, &party.GetActivityLogInput{Limit: activityPageSize})
		if err != nil {
			return RespondWithEphemeralMessage(s, i, err.Error())
		}
		return RespondWithEphemeralEmbed(s, i, renderActivityEmbed(out.Entries))
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}
