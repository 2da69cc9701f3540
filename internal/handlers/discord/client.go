package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/teampicker/internal/platform"
)

const ownUser = "@me"

const (
	groupPermissions = discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect | discordgo.PermissionVoiceSpeak
	botPermissions   = discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect | discordgo.PermissionManageChannels
	hiddenFromOthers = discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect
)

// ClientConfig holds the configuration for the Discord client
type ClientConfig struct {
	// Discord bot token
	Token string

	// DebugChannelID receives operator reports. Reports are only logged when empty.
	DebugChannelID string

	Logger *zap.Logger
}

// Client implements the platform ports over a discordgo session
type Client struct {
	session        *discordgo.Session
	debugChannelID string
	logger         *zap.Logger
}

// NewClient creates a Discord session. The gateway connection is opened by the Bot.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	return &Client{
		session:        session,
		debugChannelID: cfg.DebugChannelID,
		logger:         logger.Named("discord"),
	}, nil
}

// Session exposes the underlying discordgo session
func (c *Client) Session() *discordgo.Session {
	return c.session
}

// GuildOf returns the guild a channel belongs to
func (c *Client) GuildOf(ctx context.Context, channelID string) (string, error) {
	if ch, err := c.session.State.Channel(channelID); err == nil {
		return ch.GuildID, nil
	}

	ch, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", classify(err)
	}
	return ch.GuildID, nil
}

func (c *Client) botUserID() string {
	if c.session.State == nil || c.session.State.User == nil {
		return ""
	}
	return c.session.State.User.ID
}

// SendMessage posts a message and returns its ID
func (c *Client) SendMessage(ctx context.Context, channelID, body string) (string, error) {
	msg, err := c.session.ChannelMessageSend(channelID, body, discordgo.WithContext(ctx))
	if err != nil {
		return "", classify(err)
	}
	return msg.ID, nil
}

// EditMessage replaces a message body
func (c *Client) EditMessage(ctx context.Context, channelID, messageID, body string) error {
	_, err := c.session.ChannelMessageEdit(channelID, messageID, body, discordgo.WithContext(ctx))
	return classify(err)
}

// OwnReactions lists the emoji the bot has placed on a message
func (c *Client) OwnReactions(ctx context.Context, channelID, messageID string) ([]string, error) {
	msg, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classify(err)
	}
	return ownReactions(msg), nil
}

func ownReactions(msg *discordgo.Message) []string {
	var emoji []string
	for _, r := range msg.Reactions {
		if r == nil || r.Emoji == nil || !r.Me {
			continue
		}
		emoji = append(emoji, r.Emoji.APIName())
	}
	return emoji
}

// AddReaction reacts to a message as the bot
func (c *Client) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return classify(c.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)))
}

// RemoveOwnReaction removes the bot's reaction from a message
func (c *Client) RemoveOwnReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return classify(c.session.MessageReactionRemove(channelID, messageID, emoji, ownUser, discordgo.WithContext(ctx)))
}

// RemoveReaction removes a user's reaction from a message
func (c *Client) RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error {
	return classify(c.session.MessageReactionRemove(channelID, messageID, emoji, userID, discordgo.WithContext(ctx)))
}

// SendDirect opens a DM channel with the user and posts to it
func (c *Client) SendDirect(ctx context.Context, userID, body string) error {
	dm, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return classify(err)
	}

	_, err = c.session.ChannelMessageSend(dm.ID, body, discordgo.WithContext(ctx))
	return classify(err)
}

// CreateGroup creates a role
func (c *Client) CreateGroup(ctx context.Context, input *platform.CreateGroupInput) (string, error) {
	if input == nil {
		return "", errors.New("input cannot be nil")
	}

	mentionable := false
	role, err := c.session.GuildRoleCreate(input.GuildID, &discordgo.RoleParams{
		Name:        input.Name,
		Mentionable: &mentionable,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", classify(err)
	}
	return role.ID, nil
}

// DeleteGroup deletes a role
func (c *Client) DeleteGroup(ctx context.Context, guildID, groupID string) error {
	return classify(c.session.GuildRoleDelete(guildID, groupID, discordgo.WithContext(ctx)))
}

// AddGroupMember grants a role to a member
func (c *Client) AddGroupMember(ctx context.Context, guildID, groupID, userID string) error {
	return classify(c.session.GuildMemberRoleAdd(guildID, userID, groupID, discordgo.WithContext(ctx)))
}

// CreateSpace creates a category or voice channel
func (c *Client) CreateSpace(ctx context.Context, input *platform.CreateSpaceInput) (string, error) {
	if input == nil {
		return "", errors.New("input cannot be nil")
	}

	ch, err := c.session.GuildChannelCreateComplex(input.GuildID, channelCreateData(input, c.botUserID()), discordgo.WithContext(ctx))
	if err != nil {
		return "", classify(err)
	}
	return ch.ID, nil
}

func channelCreateData(input *platform.CreateSpaceInput, botID string) discordgo.GuildChannelCreateData {
	data := discordgo.GuildChannelCreateData{
		Name:     input.Name,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: input.ParentID,
	}
	if input.Kind == platform.SpaceKindContainer {
		data.Type = discordgo.ChannelTypeGuildCategory
		data.ParentID = ""
	}

	data.PermissionOverwrites = permissionOverwrites(input.GuildID, botID, input.VisibleTo)
	return data
}

// permissionOverwrites hides a channel from @everyone and opens it to the
// given roles. No overwrites are returned for an empty role list so the
// channel syncs with its category.
func permissionOverwrites(guildID, botID string, visibleTo []string) []*discordgo.PermissionOverwrite {
	if len(visibleTo) == 0 {
		return nil
	}

	// @everyone shares its ID with the guild
	overwrites := []*discordgo.PermissionOverwrite{{
		ID:   guildID,
		Type: discordgo.PermissionOverwriteTypeRole,
		Deny: hiddenFromOthers,
	}}

	for _, roleID := range visibleTo {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: groupPermissions,
		})
	}

	if botID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: botPermissions,
		})
	}

	return overwrites
}

// DeleteSpace deletes a channel or category
func (c *Client) DeleteSpace(ctx context.Context, spaceID string) error {
	_, err := c.session.ChannelDelete(spaceID, discordgo.WithContext(ctx))
	return classify(err)
}

// Report posts a message to the debug channel
func (c *Client) Report(ctx context.Context, message string) {
	c.logger.Warn("report", zap.String("message", message))
	if c.debugChannelID == "" {
		return
	}

	if _, err := c.session.ChannelMessageSend(c.debugChannelID, message, discordgo.WithContext(ctx)); err != nil {
		c.logger.Error("failed to post report", zap.String("channel_id", c.debugChannelID), zap.Error(err))
	}
}
