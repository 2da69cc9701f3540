package models

import (
	"time"
)

// Team identifies one side of a match
type Team string

const (
	// TeamA is the side led by the first captain
	TeamA Team = "a"

	// TeamB is the side led by the second captain
	TeamB Team = "b"
)

// Match is the result of a completed draft plus the handles of the
// resources provisioned for it
type Match struct {
	// ID is the unique identifier for the match
	ID string

	// ChannelID is the queue channel the match was drafted in
	ChannelID string

	// GuildID is the Discord server that owns the queue channel
	GuildID string

	// TeamA lists the first captain followed by their picks in order
	TeamA []Player

	// TeamB lists the second captain followed by their picks in order
	TeamB []Player

	// CreatedAt is when the draft completed
	CreatedAt time.Time

	// Resources holds the handles of everything provisioned so far
	Resources ResourceSet
}

// Players returns the members of the given team
func (m *Match) Players(team Team) []Player {
	if team == TeamB {
		return m.TeamB
	}
	return m.TeamA
}

// ShortID returns a compact form of the match ID for channel and role names
func (m *Match) ShortID() string {
	if len(m.ID) > 8 {
		return m.ID[:8]
	}
	return m.ID
}

// ResourceSet holds the Discord object IDs provisioned for one match.
// An empty field means the resource is not held.
type ResourceSet struct {
	// GroupA is the role granted to team A
	GroupA string

	// GroupB is the role granted to team B
	GroupB string

	// Container is the category holding the match channels
	Container string

	// Shared is the voice channel visible to both teams
	Shared string

	// PrivateA is the voice channel visible only to team A
	PrivateA string

	// PrivateB is the voice channel visible only to team B
	PrivateB string
}

// Empty reports whether no resource is held
func (r *ResourceSet) Empty() bool {
	return *r == ResourceSet{}
}
