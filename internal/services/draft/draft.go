package draft

import (
	"fmt"

	"github.com/KirkDiggler/teampicker/internal/models"
)

// Draft splits a fixed pool of players into two teams by letting two
// randomly chosen captains pick in alternation. It is owned by a single
// session goroutine and is not safe for concurrent use.
type Draft struct {
	config    *Config
	status    Status
	captains  [2]models.Player
	teams     [2][]models.Player
	remaining []Candidate
	picker    int
}

// New creates a draft that has not started yet
func New(cfg *Config) (*Draft, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Size < 2 || cfg.Size%2 != 0 {
		return nil, ErrOddSize
	}

	if cfg.Alphabet == nil {
		cfg.Alphabet = DefaultAlphabet
	}

	if len(cfg.Alphabet) < cfg.Size-2 {
		return nil, ErrAlphabetTooSmall
	}

	return &Draft{
		config: cfg,
		status: StatusNotStarted,
	}, nil
}

// Start chooses two captains from players, seeds each team with its
// captain and hands out pick tokens to everyone else in roster order.
func (d *Draft) Start(players []models.Player) error {
	if d.status != StatusNotStarted {
		return &PreconditionError{Op: "start", Reason: fmt.Sprintf("draft is %s", d.status)}
	}

	if len(players) != d.config.Size {
		return &PreconditionError{
			Op:     "start",
			Reason: fmt.Sprintf("need exactly %d players, got %d", d.config.Size, len(players)),
		}
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return &PreconditionError{Op: "start", Reason: fmt.Sprintf("player %s listed twice", p.ID)}
		}
		seen[p.ID] = true
	}

	pool := make([]models.Player, len(players))
	copy(pool, players)

	first := d.config.Random.Intn(len(pool))
	d.captains[0] = pool[first]
	pool = append(pool[:first], pool[first+1:]...)

	second := d.config.Random.Intn(len(pool))
	d.captains[1] = pool[second]
	pool = append(pool[:second], pool[second+1:]...)

	d.teams[0] = []models.Player{d.captains[0]}
	d.teams[1] = []models.Player{d.captains[1]}

	d.remaining = make([]Candidate, 0, len(pool))
	for i, p := range pool {
		d.remaining = append(d.remaining, Candidate{
			Token:  d.config.Alphabet[i],
			Player: p,
		})
	}

	d.picker = 0
	d.status = StatusDrafting
	if len(d.remaining) == 0 {
		d.status = StatusComplete
	}

	return nil
}

// Pick moves the player holding token onto the acting captain's team and
// passes the turn to the other captain.
func (d *Draft) Pick(actingPlayerID, token string) (models.Player, error) {
	if d.status != StatusDrafting {
		return models.Player{}, ErrDraftNotActive
	}

	if actingPlayerID != d.captains[d.picker].ID {
		return models.Player{}, ErrNotYourTurn
	}

	index := -1
	for i, c := range d.remaining {
		if c.Token == token {
			index = i
			break
		}
	}
	if index < 0 {
		return models.Player{}, ErrUnknownToken
	}

	picked := d.remaining[index].Player
	d.remaining = append(d.remaining[:index], d.remaining[index+1:]...)
	d.teams[d.picker] = append(d.teams[d.picker], picked)
	d.picker = 1 - d.picker

	if len(d.remaining) == 0 {
		d.status = StatusComplete
	}

	return picked, nil
}

// IsComplete reports whether the undrafted pool is empty
func (d *Draft) IsComplete() bool {
	return d.status == StatusComplete
}

// Status returns the lifecycle state
func (d *Draft) Status() Status {
	return d.status
}

// Captains returns captain A and captain B
func (d *Draft) Captains() (models.Player, models.Player) {
	return d.captains[0], d.captains[1]
}

// CurrentPicker returns the captain whose turn it is
func (d *Draft) CurrentPicker() models.Player {
	return d.captains[d.picker]
}

// TeamA returns a copy of captain A's team in pick order
func (d *Draft) TeamA() []models.Player {
	return clonePlayers(d.teams[0])
}

// TeamB returns a copy of captain B's team in pick order
func (d *Draft) TeamB() []models.Player {
	return clonePlayers(d.teams[1])
}

// Remaining returns a copy of the undrafted pool in token order
func (d *Draft) Remaining() []Candidate {
	remaining := make([]Candidate, len(d.remaining))
	copy(remaining, d.remaining)
	return remaining
}

func clonePlayers(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	copy(out, players)
	return out
}
