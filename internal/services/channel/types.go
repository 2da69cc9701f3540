package channel

import (
	"time"

	"github.com/KirkDiggler/teampicker/internal/common/clock"
	"github.com/KirkDiggler/teampicker/internal/common/uuid"
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/platform"
	"github.com/KirkDiggler/teampicker/internal/random"
	"github.com/KirkDiggler/teampicker/internal/services/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"go.uber.org/zap"
)

// State is the lifecycle state of a queue channel
type State string

const (
	// StateIdle means nobody is queued
	StateIdle State = "idle"

	// StateQueueing means players are waiting for the roster to fill
	StateQueueing State = "queueing"

	// StatePicking means captains are drafting teams
	StatePicking State = "picking"
)

// Reactions offered on the status message outside the draft
const (
	JoinEmoji  = "✅"
	LeaveEmoji = "❌"
)

// Event is an input to Machine.Apply
type Event interface{ isEvent() }

// QueueSignal asks to add a player to the roster
type QueueSignal struct {
	Player models.Player
}

// CancelSignal asks to remove a player from the roster
type CancelSignal struct {
	Player models.Player
}

// PickSignal is a captain choosing a player by token
type PickSignal struct {
	Actor models.Player
	Token string
}

// ProvisionFinished reports that resource creation for a match has ended,
// successfully or not
type ProvisionFinished struct {
	MatchID string
	Err     error
}

func (QueueSignal) isEvent()       {}
func (CancelSignal) isEvent()      {}
func (PickSignal) isEvent()        {}
func (ProvisionFinished) isEvent() {}

// Effect is work Machine.Apply asks its caller to perform
type Effect interface{ isEffect() }

// Render refreshes the status message and its reactions
type Render struct{}

// StartMatch provisions resources for a drafted match and notifies its players
type StartMatch struct {
	Match *models.Match
}

// Report surfaces an unexpected failure to the operator
type Report struct {
	Err error
}

func (Render) isEffect()     {}
func (StartMatch) isEffect() {}
func (Report) isEffect()     {}

// MachineConfig holds configuration for a Machine
type MachineConfig struct {
	ChannelID string
	GuildID   string

	// Capacity is the number of players per match
	Capacity int

	// Alphabet is the ordered set of pick tokens. Defaults to draft.DefaultAlphabet.
	Alphabet []string

	Random random.Source
	Clock  clock.Clock
	UUID   uuid.UUID
}

// SessionConfig holds configuration for a Session
type SessionConfig struct {
	Machine *MachineConfig

	// RenderInterval is how often the status message is refreshed
	// regardless of activity
	RenderInterval time.Duration

	Messenger platform.Messenger
	Reporter  platform.Reporter
	Matches   match.Service
	Messaging messaging.Service
	Logger    *zap.Logger
}

// ReactionInput is a reaction a user placed on a message in a queue channel
type ReactionInput struct {
	ChannelID string
	MessageID string
	Player    models.Player
	Emoji     string
}

// RegistryConfig holds configuration for a Registry
type RegistryConfig struct {
	Sessions []*Session
	Logger   *zap.Logger
}
