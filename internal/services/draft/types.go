package draft

import (
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/random"
)

// Status is the lifecycle state of a draft
type Status string

const (
	// StatusNotStarted indicates captains have not been chosen yet
	StatusNotStarted Status = "not_started"

	// StatusDrafting indicates captains are taking turns picking
	StatusDrafting Status = "drafting"

	// StatusComplete indicates every player has been assigned a team
	StatusComplete Status = "complete"
)

// Config holds configuration for a draft
type Config struct {
	// Size is the number of players in the draft. Must be even.
	Size int

	// Alphabet is the ordered set of pick tokens. Defaults to DefaultAlphabet.
	Alphabet []string

	// Random chooses the captains
	Random random.Source
}

// Candidate is an undrafted player and the token used to pick them
type Candidate struct {
	Token  string
	Player models.Player
}

// DefaultAlphabet is the regional indicator emoji A through Z, which
// Discord renders as reactions.
var DefaultAlphabet = func() []string {
	letters := make([]string, 0, 26)
	for i := 0; i < 26; i++ {
		letters = append(letters, string(rune(0x1F1E6+i)))
	}
	return letters
}()
