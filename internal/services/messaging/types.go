package messaging

import (
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/random"
	"github.com/KirkDiggler/teampicker/internal/services/draft"
)

// Phase mirrors the channel lifecycle state shown in the status message
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseQueueing Phase = "queueing"
	PhasePicking  Phase = "picking"
)

// Config holds configuration for the messaging service
type Config struct {
	// Random picks sign-off lines for team messages. Defaults to a time-seeded source.
	Random random.Source
}

// StatusView is everything the status message shows about one channel
type StatusView struct {
	Phase    Phase
	Capacity int

	// Queue is the roster in arrival order
	Queue []models.Player

	// Draft details, set while picking
	CaptainA   models.Player
	CaptainB   models.Player
	TeamA      []models.Player
	TeamB      []models.Player
	Picker     models.Player
	Candidates []draft.Candidate

	// Provisioning is set while the previous match's channels are being created
	Provisioning bool

	// LastMatch is the most recent match drafted in the channel, if any
	LastMatch *models.Match

	JoinEmoji  string
	LeaveEmoji string
}

// GetStatusMessageInput contains parameters for rendering a status message
type GetStatusMessageInput struct {
	View *StatusView
}

// GetStatusMessageOutput contains the rendered status message
type GetStatusMessageOutput struct {
	Body string
}

// GetTeamMessageInput contains parameters for rendering a team message
type GetTeamMessageInput struct {
	Match *models.Match
	Team  models.Team
}

// GetTeamMessageOutput contains the rendered team message
type GetTeamMessageOutput struct {
	Body string
}

// GetMatchListMessageInput contains parameters for rendering a match list
type GetMatchListMessageInput struct {
	Matches []*models.Match
}

// GetMatchListMessageOutput contains the rendered match list
type GetMatchListMessageOutput struct {
	Body string
}
