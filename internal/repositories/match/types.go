package match

import "github.com/KirkDiggler/teampicker/internal/models"

type SaveMatchInput struct {
	Match *models.Match
}

type GetMatchInput struct {
	MatchID string
}

type ListMatchesInput struct {
	// ChannelID restricts the listing to one queue channel when set
	ChannelID string
}

type ListMatchesOutput struct {
	Matches []*models.Match
}

type DeleteMatchInput struct {
	MatchID string
}
