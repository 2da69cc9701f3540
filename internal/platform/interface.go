package platform

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_platform.go github.com/KirkDiggler/teampicker/internal/platform Messenger,Resources,Reporter

// Messenger renders channel messages and delivers direct messages
type Messenger interface {
	// SendMessage posts a new message and returns its ID
	SendMessage(ctx context.Context, channelID, body string) (string, error)

	// EditMessage replaces the body of an existing message.
	// Returns ErrNotFound when the message no longer exists.
	EditMessage(ctx context.Context, channelID, messageID, body string) error

	// OwnReactions lists the reactions the bot itself has placed on a message
	OwnReactions(ctx context.Context, channelID, messageID string) ([]string, error)

	// AddReaction places the bot's reaction on a message
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error

	// RemoveOwnReaction removes the bot's reaction from a message
	RemoveOwnReaction(ctx context.Context, channelID, messageID, emoji string) error

	// SendDirect delivers a private message to a user
	SendDirect(ctx context.Context, userID, body string) error
}

// Resources creates and deletes access groups and communication spaces
type Resources interface {
	// CreateGroup creates an access group and returns its ID
	CreateGroup(ctx context.Context, input *CreateGroupInput) (string, error)

	// DeleteGroup removes an access group. Returns ErrNotFound if absent.
	DeleteGroup(ctx context.Context, guildID, groupID string) error

	// AddGroupMember grants a group to a user
	AddGroupMember(ctx context.Context, guildID, groupID, userID string) error

	// CreateSpace creates a container or sub-space and returns its ID
	CreateSpace(ctx context.Context, input *CreateSpaceInput) (string, error)

	// DeleteSpace removes a space. Returns ErrNotFound if absent.
	DeleteSpace(ctx context.Context, spaceID string) error
}

// Reporter surfaces operator-visible problems
type Reporter interface {
	Report(ctx context.Context, message string)
}
