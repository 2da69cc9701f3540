package match

import (
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/platform"
	matchRepo "github.com/KirkDiggler/teampicker/internal/repositories/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"go.uber.org/zap"
)

// Config holds configuration for the match service
type Config struct {
	Resources platform.Resources
	Messenger platform.Messenger
	Reporter  platform.Reporter
	MatchRepo matchRepo.Repository
	Messaging messaging.Service

	// NotifyConcurrency bounds parallel direct messages. Defaults to 5.
	NotifyConcurrency int

	Logger *zap.Logger
}

// ProvisionInput contains parameters for provisioning a match
type ProvisionInput struct {
	Match *models.Match
}

// ProvisionOutput contains the match with the handles that were created
type ProvisionOutput struct {
	Match *models.Match
}

// ReleaseInput contains parameters for releasing a match
type ReleaseInput struct {
	// MatchID is a full match ID or a unique prefix of one
	MatchID string

	// ChannelID narrows prefix lookups to one queue channel when set
	ChannelID string
}

// ReleaseOutput contains the match after release. Resources still set
// could not be deleted. Match is nil when nothing was held under the ID.
type ReleaseOutput struct {
	Match *models.Match
}

// NotifyTeamsInput contains parameters for notifying a match's players
type NotifyTeamsInput struct {
	Match *models.Match
}

// NotifyTeamsOutput reports how many direct messages were delivered
type NotifyTeamsOutput struct {
	Delivered int
	Failed    int
}

// ListMatchesInput contains parameters for listing held matches
type ListMatchesInput struct {
	// ChannelID restricts the listing to one queue channel when set
	ChannelID string
}

// ListMatchesOutput contains the held matches, oldest first
type ListMatchesOutput struct {
	Matches []*models.Match
}

// ReleaseHeldInput contains parameters for releasing every held match
type ReleaseHeldInput struct{}

// ReleaseHeldOutput reports the outcome of a bulk release
type ReleaseHeldOutput struct {
	Released int
	Failed   int
}
