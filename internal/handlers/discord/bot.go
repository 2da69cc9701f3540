package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/teampicker/internal/handlers/command"
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/services/channel"
)

const eventTimeout = 30 * time.Second

const commandFailed = "Something went wrong running that command."

// Bot represents the Discord bot instance
type Bot struct {
	client     *Client
	dispatcher *command.Dispatcher
	registry   *channel.Registry
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *zap.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Client is the Discord session wrapper shared with the services
	Client *Client

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Dispatcher runs chat and slash commands
	Dispatcher *command.Dispatcher

	// Registry routes reactions to queue channel sessions
	Registry *channel.Registry

	Logger *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Client == nil {
		return nil, errors.New("client cannot be nil")
	}

	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bot := &Bot{
		client:     cfg.Client,
		dispatcher: cfg.Dispatcher,
		registry:   cfg.Registry,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger.Named("bot"),
	}

	// Register the gateway event handlers
	session := cfg.Client.Session()
	session.AddHandler(bot.handleMessageCreate)
	session.AddHandler(bot.handleReactionAdd)
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the gateway connection and registers the slash command
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.client.Session().Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register the teampicker command
	if err := b.RegisterCommand(NewTeamPickerCommand(b.dispatcher)); err != nil {
		return fmt.Errorf("failed to register teampicker command: %w", err)
	}

	b.logger.Info("bot is running", zap.Strings("queue_channels", b.registry.ChannelIDs()))
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	session := b.client.Session()
	appID := b.appID()

	// Remove all commands
	for cmdName, cmdID := range b.commandIDs {
		if err := session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", zap.String("command", cmdName), zap.String("command_id", cmdID), zap.Error(err))
		}
	}

	return session.Close()
}

// RegisterCommand registers a command with Discord. Commands are
// registered globally unless a guild ID is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// An empty guild ID registers the command globally
	createdCmd, err := b.client.Session().ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID))

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.client.botUserID()
}

// handleInteraction handles slash commands
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Only slash commands are handled
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}

	if err := h.Handle(s, i); err != nil {
		b.logger.Error("failed to handle interaction", zap.String("command", name), zap.Error(err))
	}
}

// handleMessageCreate runs prefix commands
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from bots, including our own replies
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	out, err := b.dispatcher.Dispatch(ctx, &command.DispatchInput{
		ChannelID: m.ChannelID,
		Player:    playerFromMember(m.Member, m.Author),
		Content:   m.Content,
	})

	// Unhandled messages get no reply
	body := ""
	switch {
	case err != nil:
		b.logger.Error("failed to dispatch message",
			zap.String("channel_id", m.ChannelID),
			zap.String("user_id", m.Author.ID),
			zap.Error(err))
		body = commandFailed
	case out.Handled && out.Response != nil:
		body = out.Response.Body
	}

	if body == "" {
		return
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, body, discordgo.WithContext(ctx)); err != nil {
		b.logger.Warn("failed to reply", zap.String("channel_id", m.ChannelID), zap.Error(err))
	}
}

// handleReactionAdd routes reactions on status messages to their session
func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	// Ignore the reactions the bot places itself
	if r.MessageReaction == nil || r.UserID == b.client.botUserID() {
		return
	}

	// Only reactions on a status message are signals
	if !b.registry.IsStatusMessage(r.ChannelID, r.MessageID) {
		return
	}

	input, ok := reactionInput(r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if err := b.registry.RouteReaction(ctx, input); err != nil {
		b.logger.Warn("failed to route reaction",
			zap.String("channel_id", r.ChannelID),
			zap.String("user_id", r.UserID),
			zap.Error(err))
	}

	// players signal again by reacting again, so their own reaction is cleared
	if err := b.client.RemoveReaction(ctx, r.ChannelID, r.MessageID, input.Emoji, r.UserID); err != nil {
		b.logger.Debug("failed to clear reaction", zap.String("user_id", r.UserID), zap.Error(err))
	}
}

func reactionInput(r *discordgo.MessageReactionAdd) (*channel.ReactionInput, bool) {
	if r.MessageReaction == nil || r.Member == nil {
		return nil, false
	}

	// Reaction events do not always carry the member's user
	user := r.Member.User
	if user == nil {
		user = &discordgo.User{ID: r.UserID}
	}

	return &channel.ReactionInput{
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		Player:    playerFromMember(r.Member, user),
		Emoji:     r.Emoji.APIName(),
	}, true
}

// playerFromMember prefers the guild nickname, then the global display name
func playerFromMember(member *discordgo.Member, user *discordgo.User) models.Player {
	if user == nil && member != nil {
		user = member.User
	}
	if user == nil {
		return models.Player{}
	}

	name := user.Username
	if user.GlobalName != "" {
		name = user.GlobalName
	}
	if member != nil && member.Nick != "" {
		name = member.Nick
	}

	return models.Player{ID: user.ID, Name: name}
}
