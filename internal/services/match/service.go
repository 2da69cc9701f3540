package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/platform"
	matchRepo "github.com/KirkDiggler/teampicker/internal/repositories/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultNotifyConcurrency = 5

// service implements the Service interface
type service struct {
	resources         platform.Resources
	messenger         platform.Messenger
	reporter          platform.Reporter
	matchRepo         matchRepo.Repository
	messaging         messaging.Service
	notifyConcurrency int
	logger            *zap.Logger

	mu   sync.Mutex
	busy map[string]struct{}
}

// NewService creates a new match service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Resources == nil {
		return nil, ErrNilResources
	}

	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
	}

	if cfg.Reporter == nil {
		return nil, ErrNilReporter
	}

	if cfg.MatchRepo == nil {
		return nil, ErrNilMatchRepo
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	concurrency := cfg.NotifyConcurrency
	if concurrency <= 0 {
		concurrency = defaultNotifyConcurrency
	}

	return &service{
		resources:         cfg.Resources,
		messenger:         cfg.Messenger,
		reporter:          cfg.Reporter,
		matchRepo:         cfg.MatchRepo,
		messaging:         cfg.Messaging,
		notifyConcurrency: concurrency,
		logger:            logger.Named("match"),
		busy:              make(map[string]struct{}),
	}, nil
}

// provisionStep creates one resource and records its handle on the match
type provisionStep struct {
	name string
	run  func(ctx context.Context, m *models.Match) error
}

// Provision creates the match's resources in dependency order
func (s *service) Provision(ctx context.Context, input *ProvisionInput) (*ProvisionOutput, error) {
	if input == nil || input.Match == nil {
		return nil, errors.New("input and match cannot be nil")
	}

	m := input.Match
	if m.ID == "" || len(m.TeamA) == 0 || len(m.TeamB) == 0 {
		return nil, ErrInvalidMatch
	}

	if !s.acquire(m.ID) {
		return nil, ErrMatchBusy
	}
	defer s.unlock(m.ID)

	log := s.logger.With(zap.String("match_id", m.ID), zap.String("channel_id", m.ChannelID))

	if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: m}); err != nil {
		log.Error("failed to record match", zap.Error(err))
		s.reporter.Report(ctx, fmt.Sprintf("Match `%s` was not set up because it could not be recorded: %s. Nothing was created.",
			m.ShortID(), describe(err)))
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	for _, step := range s.provisionSteps() {
		stepErr := step.run(ctx, m)

		// Record whatever the step managed to create before looking at its error
		if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: m}); err != nil {
			log.Error("failed to record provisioned resources, rolling back",
				zap.String("step", step.name), zap.Error(err))
			s.rollback(ctx, m, step.name, multierr.Append(err, stepErr))
			return &ProvisionOutput{Match: m}, fmt.Errorf("failed to record match resources: %w", multierr.Append(err, stepErr))
		}

		if stepErr != nil {
			log.Error("provisioning failed", zap.String("step", step.name), zap.Error(stepErr))
			s.reporter.Report(ctx, fmt.Sprintf("Provisioning match `%s` failed while creating the %s: %s. Run `!end %s` to clean up what was created.",
				m.ShortID(), step.name, describe(stepErr), m.ShortID()))
			return &ProvisionOutput{Match: m}, fmt.Errorf("failed to create %s: %w", step.name, stepErr)
		}
	}

	log.Info("match provisioned", zap.Any("resources", m.Resources))

	return &ProvisionOutput{Match: m}, nil
}

// rollback deletes what provisioning created after the ledger stopped
// accepting writes. Anything that survives is recorded again so a later
// release can still find it.
func (s *service) rollback(ctx context.Context, m *models.Match, stepName string, cause error) {
	log := s.logger.With(zap.String("match_id", m.ID), zap.String("channel_id", m.ChannelID))

	releaseErr := s.releaseResources(ctx, m)
	if releaseErr == nil {
		if err := s.matchRepo.DeleteMatch(ctx, &matchRepo.DeleteMatchInput{MatchID: m.ID}); err != nil {
			log.Warn("failed to drop rolled back match from ledger", zap.Error(err))
		}
		s.reporter.Report(ctx, fmt.Sprintf("Match `%s` was rolled back after the %s: it could not be recorded (%s).",
			m.ShortID(), stepName, describe(cause)))
		return
	}

	log.Error("rollback left resources behind", zap.Any("remaining", m.Resources), zap.Error(releaseErr))

	recorded := "Run `!end " + m.ShortID() + "` to retry."
	if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: m}); err != nil {
		log.Error("failed to record leftover resources", zap.Any("remaining", m.Resources), zap.Error(err))
		recorded = fmt.Sprintf("They are not recorded and must be deleted by hand: %s.", describeHeld(m.Resources))
	}

	s.reporter.Report(ctx, fmt.Sprintf("Match `%s` could not be recorded after the %s (%s) and rolling back failed (%s). %s",
		m.ShortID(), stepName, describe(cause), describe(releaseErr), recorded))
}

func describeHeld(r models.ResourceSet) string {
	held := []struct{ name, id string }{
		{"team A role", r.GroupA},
		{"team B role", r.GroupB},
		{"category", r.Container},
		{"lobby", r.Shared},
		{"team A voice", r.PrivateA},
		{"team B voice", r.PrivateB},
	}

	var parts []string
	for _, h := range held {
		if h.id != "" {
			parts = append(parts, h.name+" "+h.id)
		}
	}
	return strings.Join(parts, ", ")
}

func (s *service) provisionSteps() []provisionStep {
	return []provisionStep{
		{name: "team A role", run: func(ctx context.Context, m *models.Match) error {
			return s.createGroup(ctx, m, models.TeamA, &m.Resources.GroupA)
		}},
		{name: "team B role", run: func(ctx context.Context, m *models.Match) error {
			return s.createGroup(ctx, m, models.TeamB, &m.Resources.GroupB)
		}},
		{name: "match category", run: func(ctx context.Context, m *models.Match) error {
			return s.createSpace(ctx, m, &m.Resources.Container, &platform.CreateSpaceInput{
				Name:      "Match " + m.ShortID(),
				Kind:      platform.SpaceKindContainer,
				VisibleTo: []string{m.Resources.GroupA, m.Resources.GroupB},
			})
		}},
		{name: "shared voice channel", run: func(ctx context.Context, m *models.Match) error {
			return s.createSpace(ctx, m, &m.Resources.Shared, &platform.CreateSpaceInput{
				ParentID:  m.Resources.Container,
				Name:      "Lobby",
				Kind:      platform.SpaceKindVoice,
				VisibleTo: []string{m.Resources.GroupA, m.Resources.GroupB},
			})
		}},
		{name: "team A voice channel", run: func(ctx context.Context, m *models.Match) error {
			return s.createSpace(ctx, m, &m.Resources.PrivateA, &platform.CreateSpaceInput{
				ParentID:  m.Resources.Container,
				Name:      "Team " + m.TeamA[0].Name,
				Kind:      platform.SpaceKindVoice,
				VisibleTo: []string{m.Resources.GroupA},
			})
		}},
		{name: "team B voice channel", run: func(ctx context.Context, m *models.Match) error {
			return s.createSpace(ctx, m, &m.Resources.PrivateB, &platform.CreateSpaceInput{
				ParentID:  m.Resources.Container,
				Name:      "Team " + m.TeamB[0].Name,
				Kind:      platform.SpaceKindVoice,
				VisibleTo: []string{m.Resources.GroupB},
			})
		}},
	}
}

func (s *service) createGroup(ctx context.Context, m *models.Match, team models.Team, handle *string) error {
	groupID, err := s.resources.CreateGroup(ctx, &platform.CreateGroupInput{
		GuildID: m.GuildID,
		Name:    fmt.Sprintf("match-%s-%s", m.ShortID(), team),
	})
	if err != nil {
		return err
	}
	*handle = groupID

	for _, p := range m.Players(team) {
		if err := s.resources.AddGroupMember(ctx, m.GuildID, groupID, p.ID); err != nil {
			return fmt.Errorf("failed to add %s to role: %w", p.ID, err)
		}
	}

	return nil
}

func (s *service) createSpace(ctx context.Context, m *models.Match, handle *string, input *platform.CreateSpaceInput) error {
	input.GuildID = m.GuildID
	spaceID, err := s.resources.CreateSpace(ctx, input)
	if err != nil {
		return err
	}
	*handle = spaceID
	return nil
}

// Release deletes every resource still held for a match
func (s *service) Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	matchID, err := s.resolveMatchID(ctx, input.MatchID, input.ChannelID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return &ReleaseOutput{}, nil
		}
		return nil, err
	}

	if !s.acquire(matchID) {
		return nil, ErrMatchBusy
	}
	defer s.unlock(matchID)

	// Read the ledger only once the match is ours so a finished provision is seen in full
	m, err := s.matchRepo.GetMatch(ctx, &matchRepo.GetMatchInput{MatchID: matchID})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return &ReleaseOutput{}, nil
		}
		return nil, err
	}

	return s.releaseMatch(ctx, m)
}

func (s *service) releaseMatch(ctx context.Context, m *models.Match) (*ReleaseOutput, error) {
	log := s.logger.With(zap.String("match_id", m.ID), zap.String("channel_id", m.ChannelID))

	releaseErr := s.releaseResources(ctx, m)

	var ledgerErr error
	if m.Resources.Empty() {
		ledgerErr = s.matchRepo.DeleteMatch(ctx, &matchRepo.DeleteMatchInput{MatchID: m.ID})
	} else {
		ledgerErr = s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: m})
	}
	if ledgerErr != nil {
		ledgerErr = fmt.Errorf("failed to update match ledger: %w", ledgerErr)
	}

	if err := multierr.Append(releaseErr, ledgerErr); err != nil {
		log.Error("release incomplete", zap.Any("remaining", m.Resources), zap.Error(err))
		s.reporter.Report(ctx, fmt.Sprintf("Releasing match `%s` left resources behind: %s. Run `!end %s` to retry.",
			m.ShortID(), describe(err), m.ShortID()))
		return &ReleaseOutput{Match: m}, err
	}

	log.Info("match released")

	return &ReleaseOutput{Match: m}, nil
}

// releaseResources deletes held spaces children first, then the container,
// then both groups concurrently. Handles are cleared as they are deleted.
func (s *service) releaseResources(ctx context.Context, m *models.Match) error {
	var errs error

	children := []struct {
		name   string
		handle *string
	}{
		{"team B voice channel", &m.Resources.PrivateB},
		{"team A voice channel", &m.Resources.PrivateA},
		{"shared voice channel", &m.Resources.Shared},
	}
	for _, child := range children {
		if err := s.deleteSpace(ctx, *child.handle); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to delete %s: %w", child.name, err))
			continue
		}
		*child.handle = ""
	}

	// A category that still has channels in it is left for the next attempt
	if errs == nil {
		if err := s.deleteSpace(ctx, m.Resources.Container); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to delete match category: %w", err))
		} else {
			m.Resources.Container = ""
		}
	}

	groups := []*string{&m.Resources.GroupA, &m.Resources.GroupB}
	groupErrs := make([]error, len(groups))

	var g errgroup.Group
	for i, handle := range groups {
		i, handle := i, handle
		if *handle == "" {
			continue
		}
		g.Go(func() error {
			err := s.resources.DeleteGroup(ctx, m.GuildID, *handle)
			if err != nil && !platform.IsNotFound(err) {
				groupErrs[i] = fmt.Errorf("failed to delete team role: %w", err)
				return nil
			}
			*handle = ""
			return nil
		})
	}
	_ = g.Wait()

	return multierr.Combine(append([]error{errs}, groupErrs...)...)
}

func (s *service) deleteSpace(ctx context.Context, spaceID string) error {
	if spaceID == "" {
		return nil
	}
	if err := s.resources.DeleteSpace(ctx, spaceID); err != nil && !platform.IsNotFound(err) {
		return err
	}
	return nil
}

// NotifyTeams sends each player their team roster privately
func (s *service) NotifyTeams(ctx context.Context, input *NotifyTeamsInput) (*NotifyTeamsOutput, error) {
	if input == nil || input.Match == nil {
		return nil, errors.New("input and match cannot be nil")
	}

	m := input.Match
	var delivered, failed atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.notifyConcurrency)

	for _, team := range []models.Team{models.TeamA, models.TeamB} {
		msg, err := s.messaging.GetTeamMessage(ctx, &messaging.GetTeamMessageInput{Match: m, Team: team})
		if err != nil {
			s.logger.Warn("failed to render team message",
				zap.String("match_id", m.ID), zap.String("team", string(team)), zap.Error(err))
			failed.Add(int32(len(m.Players(team))))
			continue
		}

		for _, p := range m.Players(team) {
			p := p
			g.Go(func() error {
				if err := s.messenger.SendDirect(gctx, p.ID, msg.Body); err != nil {
					s.logger.Warn("failed to deliver team message",
						zap.String("match_id", m.ID), zap.String("user_id", p.ID), zap.Error(err))
					failed.Add(1)
					return nil
				}
				delivered.Add(1)
				return nil
			})
		}
	}
	_ = g.Wait()

	return &NotifyTeamsOutput{
		Delivered: int(delivered.Load()),
		Failed:    int(failed.Load()),
	}, nil
}

// ListMatches returns the matches whose resources are still held
func (s *service) ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error) {
	channelID := ""
	if input != nil {
		channelID = input.ChannelID
	}

	out, err := s.matchRepo.ListMatches(ctx, &matchRepo.ListMatchesInput{ChannelID: channelID})
	if err != nil {
		return nil, err
	}

	return &ListMatchesOutput{Matches: out.Matches}, nil
}

// ReleaseHeld releases every match in the ledger. Matches another
// operation is working on are skipped and counted as failed.
func (s *service) ReleaseHeld(ctx context.Context, input *ReleaseHeldInput) (*ReleaseHeldOutput, error) {
	out, err := s.matchRepo.ListMatches(ctx, &matchRepo.ListMatchesInput{})
	if err != nil {
		return nil, err
	}

	result := &ReleaseHeldOutput{}
	var errs error
	for _, m := range out.Matches {
		if !s.acquire(m.ID) {
			result.Failed++
			errs = multierr.Append(errs, fmt.Errorf("match %s: %w", m.ID, ErrMatchBusy))
			continue
		}

		_, err := s.releaseMatch(ctx, m)
		s.unlock(m.ID)
		if err != nil {
			result.Failed++
			errs = multierr.Append(errs, fmt.Errorf("match %s: %w", m.ID, err))
			continue
		}
		result.Released++
	}

	s.logger.Info("released held matches",
		zap.Int("released", result.Released), zap.Int("failed", result.Failed))

	return result, errs
}

// resolveMatchID accepts a full ID or a unique prefix such as the short ID
// shown in status messages
func (s *service) resolveMatchID(ctx context.Context, ref, channelID string) (string, error) {
	_, err := s.matchRepo.GetMatch(ctx, &matchRepo.GetMatchInput{MatchID: ref})
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, matchRepo.ErrMatchNotFound) {
		return "", err
	}

	out, err := s.matchRepo.ListMatches(ctx, &matchRepo.ListMatchesInput{ChannelID: channelID})
	if err != nil {
		return "", err
	}

	found := ""
	for _, m := range out.Matches {
		if !strings.HasPrefix(m.ID, ref) {
			continue
		}
		if found != "" {
			return "", ErrAmbiguousMatch
		}
		found = m.ID
	}

	if found == "" {
		return "", ErrMatchNotFound
	}

	return found, nil
}

func (s *service) acquire(matchID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.busy[matchID]; ok {
		return false
	}
	s.busy[matchID] = struct{}{}
	return true
}

func (s *service) unlock(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.busy, matchID)
}

// describe turns a platform failure into operator-facing text
func describe(err error) string {
	switch {
	case errors.Is(err, platform.ErrResourceQuota):
		return "the server has reached a Discord limit"
	case errors.Is(err, platform.ErrTransient):
		return "Discord is temporarily unavailable"
	default:
		return err.Error()
	}
}
