package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/random"
)

// service implements the Service interface
type service struct {
	random random.Source
}

// NewService creates a new messaging service
func NewService(cfg *Config) (Service, error) {
	source := random.Source(random.New(nil))
	if cfg != nil && cfg.Random != nil {
		source = cfg.Random
	}

	return &service{
		random: source,
	}, nil
}

// GetStatusMessage renders the body of a channel's status message
func (s *service) GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error) {
	if input == nil || input.View == nil {
		return nil, errors.New("input and view cannot be nil")
	}

	view := input.View
	var b strings.Builder

	switch view.Phase {
	case PhaseIdle:
		b.WriteString("**Team Picker** | queue is empty\n")
		fmt.Fprintf(&b, "React %s to join the queue.", view.JoinEmoji)

	case PhaseQueueing:
		fmt.Fprintf(&b, "**Team Picker** | %d/%d queued\n", len(view.Queue), view.Capacity)
		for i, p := range view.Queue {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		}
		fmt.Fprintf(&b, "React %s to join or %s to leave.", view.JoinEmoji, view.LeaveEmoji)
		if view.Provisioning && len(view.Queue) >= view.Capacity {
			b.WriteString("\nThe draft starts once the previous match's channels are ready.")
		}

	case PhasePicking:
		fmt.Fprintf(&b, "**Team Picker** | draft: %s vs %s\n", view.CaptainA.Name, view.CaptainB.Name)
		fmt.Fprintf(&b, "**Team %s**: %s\n", view.CaptainA.Name, joinNames(view.TeamA))
		fmt.Fprintf(&b, "**Team %s**: %s\n", view.CaptainB.Name, joinNames(view.TeamB))
		b.WriteString("**Available**:\n")
		for _, c := range view.Candidates {
			fmt.Fprintf(&b, "%s %s\n", c.Token, c.Player.Name)
		}
		fmt.Fprintf(&b, "%s, react with a letter to pick.", view.Picker.Mention())

	default:
		return nil, fmt.Errorf("unknown phase %q", view.Phase)
	}

	if view.LastMatch != nil && view.Phase != PhasePicking {
		fmt.Fprintf(&b, "\n\nLast match `%s`: %s vs %s",
			view.LastMatch.ShortID(), joinNames(view.LastMatch.TeamA), joinNames(view.LastMatch.TeamB))
	}

	return &GetStatusMessageOutput{
		Body: b.String(),
	}, nil
}

// GetTeamMessage renders the private roster sent to a team's members
func (s *service) GetTeamMessage(ctx context.Context, input *GetTeamMessageInput) (*GetTeamMessageOutput, error) {
	if input == nil || input.Match == nil {
		return nil, errors.New("input and match cannot be nil")
	}

	players := input.Match.Players(input.Team)
	if len(players) == 0 {
		return nil, fmt.Errorf("team %q has no players", input.Team)
	}

	signOffs := []string{
		"Good luck, have fun!",
		"Go get 'em.",
		"May your aim be true.",
		"No pressure. Well, some pressure.",
		"Remember: the captain picked you for a reason.",
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You're on **Team %s** for match `%s`.\n", players[0].Name, input.Match.ShortID())
	for i, p := range players {
		if i == 0 {
			fmt.Fprintf(&b, "- %s (captain)\n", p.Name)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", p.Name)
	}
	b.WriteString(signOffs[s.random.Intn(len(signOffs))])

	return &GetTeamMessageOutput{
		Body: b.String(),
	}, nil
}

// GetMatchListMessage renders the matches whose resources are still held
func (s *service) GetMatchListMessage(ctx context.Context, input *GetMatchListMessageInput) (*GetMatchListMessageOutput, error) {
	if input == nil || len(input.Matches) == 0 {
		return &GetMatchListMessageOutput{Body: "No matches are running."}, nil
	}

	var b strings.Builder
	b.WriteString("Running matches:")
	for _, m := range input.Matches {
		fmt.Fprintf(&b, "\n`%s` %s vs %s (started %s)",
			m.ShortID(), joinNames(m.TeamA), joinNames(m.TeamB), m.CreatedAt.UTC().Format("15:04 MST"))
	}

	return &GetMatchListMessageOutput{
		Body: b.String(),
	}, nil
}

func joinNames(players []models.Player) string {
	if len(players) == 0 {
		return "-"
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
