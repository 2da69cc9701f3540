package platform

// SpaceKind distinguishes containers from the spaces inside them
type SpaceKind string

const (
	// SpaceKindContainer groups the spaces of one match
	SpaceKindContainer SpaceKind = "container"

	// SpaceKindVoice is a voice space players join to play
	SpaceKindVoice SpaceKind = "voice"
)

// CreateGroupInput contains parameters for creating an access group
type CreateGroupInput struct {
	// GuildID is the Discord server the group belongs to
	GuildID string

	// Name is the display name of the group
	Name string
}

// CreateSpaceInput contains parameters for creating a space
type CreateSpaceInput struct {
	// GuildID is the Discord server the space belongs to
	GuildID string

	// ParentID is the container the space is created in, empty for a container
	ParentID string

	// Name is the display name of the space
	Name string

	// Kind selects a container or a voice space
	Kind SpaceKind

	// VisibleTo lists the group IDs allowed to see the space. When empty the
	// space inherits the visibility of its parent. Everyone else except the
	// bot is denied.
	VisibleTo []string
}
