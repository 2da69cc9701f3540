package match

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/teampicker/internal/services/match Service

// Service manages the Discord resources that back a drafted match
type Service interface {
	// Provision creates both team roles and the match's channels in
	// dependency order. On failure the handles created so far stay recorded
	// so Release can clean them up.
	Provision(ctx context.Context, input *ProvisionInput) (*ProvisionOutput, error)

	// Release deletes every resource still held for a match. Safe to call
	// repeatedly and on partially provisioned matches; an ID with nothing
	// held releases nothing and is not an error.
	Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error)

	// NotifyTeams sends each player their team roster privately.
	// Delivery failures never fail the call.
	NotifyTeams(ctx context.Context, input *NotifyTeamsInput) (*NotifyTeamsOutput, error)

	// ListMatches returns the matches whose resources are still held
	ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error)

	// ReleaseHeld releases every held match, used for the startup sweep and
	// at shutdown
	ReleaseHeld(ctx context.Context, input *ReleaseHeldInput) (*ReleaseHeldOutput, error)
}
