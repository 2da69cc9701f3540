package match

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/teampicker/internal/repositories/match Repository

import (
	"context"

	"github.com/KirkDiggler/teampicker/internal/models"
)

// Repository defines the interface for the match resource ledger. It
// tracks matches whose resources are still held so they can be released
// later, including by a restarted process.
type Repository interface {
	// SaveMatch persists a match and its resource handles
	SaveMatch(ctx context.Context, input *SaveMatchInput) error

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, input *GetMatchInput) (*models.Match, error)

	// ListMatches retrieves held matches, oldest first
	ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error)

	// DeleteMatch removes a match from the ledger. Deleting an unknown match is a no-op.
	DeleteMatch(ctx context.Context, input *DeleteMatchInput) error
}
