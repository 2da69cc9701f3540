package channel

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/teampicker/internal/common/clock"
	uuidMocks "github.com/KirkDiggler/teampicker/internal/common/uuid/mocks"
	"github.com/KirkDiggler/teampicker/internal/models"
	platformMocks "github.com/KirkDiggler/teampicker/internal/platform/mocks"
	"github.com/KirkDiggler/teampicker/internal/platform"
	randomMocks "github.com/KirkDiggler/teampicker/internal/random/mocks"
	"github.com/KirkDiggler/teampicker/internal/services/draft"
	"github.com/KirkDiggler/teampicker/internal/services/match"
	matchMocks "github.com/KirkDiggler/teampicker/internal/services/match/mocks"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	testInterval = 30 * time.Second
	waitFor      = 2 * time.Second
	tick         = 5 * time.Millisecond
)

// fakeMessenger keeps messages and the bot's reactions in memory so
// render results can be inspected
type fakeMessenger struct {
	mu        sync.Mutex
	nextID    int
	messages  map[string]string
	reactions map[string][]string
	edits     int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		messages:  make(map[string]string),
		reactions: make(map[string][]string),
	}
}

func (f *fakeMessenger) SendMessage(ctx context.Context, channelID, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("msg-%d", f.nextID)
	f.messages[id] = body
	return id, nil
}

func (f *fakeMessenger) EditMessage(ctx context.Context, channelID, messageID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[messageID]; !ok {
		return platform.ErrNotFound
	}
	f.messages[messageID] = body
	f.edits++
	return nil
}

func (f *fakeMessenger) OwnReactions(ctx context.Context, channelID, messageID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[messageID]; !ok {
		return nil, platform.ErrNotFound
	}
	return append([]string(nil), f.reactions[messageID]...), nil
}

func (f *fakeMessenger) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[messageID]; !ok {
		return platform.ErrNotFound
	}
	f.reactions[messageID] = append(f.reactions[messageID], emoji)
	return nil
}

func (f *fakeMessenger) RemoveOwnReaction(ctx context.Context, channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.reactions[messageID][:0]
	for _, r := range f.reactions[messageID] {
		if r != emoji {
			kept = append(kept, r)
		}
	}
	f.reactions[messageID] = kept
	return nil
}

func (f *fakeMessenger) SendDirect(ctx context.Context, userID, body string) error {
	return nil
}

func (f *fakeMessenger) body(messageID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[messageID]
}

func (f *fakeMessenger) ownReactions(messageID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reactions[messageID]...)
}

func (f *fakeMessenger) setReactions(messageID string, reactions []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions[messageID] = reactions
}

func (f *fakeMessenger) deleteMessage(messageID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, messageID)
	delete(f.reactions, messageID)
}

type SessionTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockRandom   *randomMocks.MockSource
	mockUUID     *uuidMocks.MockUUID
	mockMatches  *matchMocks.MockService
	mockReporter *platformMocks.MockReporter
	messenger    *fakeMessenger
	clock        *clock.FakeClock
	session      *Session
	ctx          context.Context

	a models.Player
	b models.Player
	c models.Player
	d models.Player
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRandom = randomMocks.NewMockSource(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockMatches = matchMocks.NewMockService(s.mockCtrl)
	s.mockReporter = platformMocks.NewMockReporter(s.mockCtrl)
	s.messenger = newFakeMessenger()
	s.clock = clock.NewFake(time.Date(2025, 4, 5, 20, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	s.mockRandom.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()

	s.a = models.Player{ID: "a", Name: "A"}
	s.b = models.Player{ID: "b", Name: "B"}
	s.c = models.Player{ID: "c", Name: "C"}
	s.d = models.Player{ID: "d", Name: "D"}
}

func (s *SessionTestSuite) TearDownTest() {
	if s.session != nil {
		s.session.Stop()
	}
	s.mockCtrl.Finish()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) startSession(capacity int) {
	msgService, err := messaging.NewService(&messaging.Config{Random: s.mockRandom})
	s.Require().NoError(err)

	session, err := NewSession(&SessionConfig{
		Machine: &MachineConfig{
			ChannelID: "queue",
			GuildID:   "guild",
			Capacity:  capacity,
			Random:    s.mockRandom,
			Clock:     s.clock,
			UUID:      s.mockUUID,
		},
		RenderInterval: testInterval,
		Messenger:      s.messenger,
		Reporter:       s.mockReporter,
		Matches:        s.mockMatches,
		Messaging:      msgService,
	})
	s.Require().NoError(err)
	s.session = session

	session.Start(s.ctx)
	s.Require().Eventually(func() bool {
		return session.MessageID() != "" && len(s.messenger.ownReactions(session.MessageID())) == 2
	}, waitFor, tick)
}

func (s *SessionTestSuite) react(player models.Player, emoji string) {
	s.Require().NoError(s.session.HandleReaction(s.ctx, &ReactionInput{
		ChannelID: "queue",
		MessageID: s.session.MessageID(),
		Player:    player,
		Emoji:     emoji,
	}))
}

func (s *SessionTestSuite) status() *messaging.StatusView {
	view, err := s.session.Status(s.ctx)
	s.Require().NoError(err)
	return view
}

func (s *SessionTestSuite) expectMatch(id string, provisioned chan<- *models.Match, gate <-chan struct{}) {
	s.mockUUID.EXPECT().NewUUID().Return(id)
	s.mockMatches.EXPECT().Provision(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *match.ProvisionInput) (*match.ProvisionOutput, error) {
			if gate != nil {
				<-gate
			}
			provisioned <- input.Match
			return &match.ProvisionOutput{Match: input.Match}, nil
		})
	s.mockMatches.EXPECT().NotifyTeams(gomock.Any(), gomock.Any()).Return(&match.NotifyTeamsOutput{Delivered: 2}, nil)
}

func (s *SessionTestSuite) TestStartRendersIdleStatus() {
	s.startSession(2)

	messageID := s.session.MessageID()
	s.Contains(s.messenger.body(messageID), "queue is empty")
	s.Equal([]string{JoinEmoji, LeaveEmoji}, s.messenger.ownReactions(messageID))
	s.Equal(messaging.PhaseIdle, s.status().Phase)
}

func (s *SessionTestSuite) TestReactionsDraftAndProvisionMatch() {
	s.startSession(2)
	provisioned := make(chan *models.Match, 1)
	s.expectMatch("match-1", provisioned, nil)

	s.react(s.a, JoinEmoji)
	view := s.status()
	s.Equal(messaging.PhaseQueueing, view.Phase)
	s.Equal([]models.Player{s.a}, view.Queue)
	s.Contains(s.messenger.body(s.session.MessageID()), "1/2 queued")

	s.react(s.b, JoinEmoji)

	select {
	case m := <-provisioned:
		s.Equal("match-1", m.ID)
		s.Equal([]models.Player{s.a}, m.TeamA)
		s.Equal([]models.Player{s.b}, m.TeamB)
	case <-time.After(waitFor):
		s.FailNow("match was not provisioned")
	}

	s.Eventually(func() bool {
		view := s.status()
		return view.Phase == messaging.PhaseIdle && !view.Provisioning && view.LastMatch != nil
	}, waitFor, tick)
}

func (s *SessionTestSuite) TestReactionsOnOtherMessagesAreIgnored() {
	s.startSession(2)

	s.Require().NoError(s.session.HandleReaction(s.ctx, &ReactionInput{
		ChannelID: "queue",
		MessageID: "someone-elses-message",
		Player:    s.a,
		Emoji:     JoinEmoji,
	}))

	s.Empty(s.status().Queue)
}

func (s *SessionTestSuite) TestPickingReactionsOfferTokens() {
	s.startSession(4)

	for _, p := range []models.Player{s.a, s.b, s.c, s.d} {
		s.react(p, JoinEmoji)
	}

	view := s.status()
	s.Require().Equal(messaging.PhasePicking, view.Phase)
	s.Equal([]string{draft.DefaultAlphabet[0], draft.DefaultAlphabet[1]}, s.messenger.ownReactions(s.session.MessageID()))

	// A non-captain's pick changes nothing
	s.react(s.c, draft.DefaultAlphabet[0])
	s.Len(s.status().Candidates, 2)

	s.react(s.a, draft.DefaultAlphabet[0])
	view = s.status()
	s.Equal([]models.Player{s.a, s.c}, view.TeamA)
	s.Equal([]string{draft.DefaultAlphabet[1]}, s.messenger.ownReactions(s.session.MessageID()))
}

func (s *SessionTestSuite) TestNextDraftWaitsForProvisioning() {
	s.startSession(2)
	provisioned := make(chan *models.Match, 2)
	gate := make(chan struct{})
	s.expectMatch("match-1", provisioned, gate)

	s.react(s.a, JoinEmoji)
	s.react(s.b, JoinEmoji)
	s.react(s.c, JoinEmoji)
	s.react(s.d, JoinEmoji)

	view := s.status()
	s.Equal(messaging.PhaseQueueing, view.Phase)
	s.Equal([]models.Player{s.c, s.d}, view.Queue)
	s.True(view.Provisioning)

	s.expectMatch("match-2", provisioned, nil)
	close(gate)

	for _, id := range []string{"match-1", "match-2"} {
		select {
		case m := <-provisioned:
			s.Equal(id, m.ID)
		case <-time.After(waitFor):
			s.FailNow("match was not provisioned", id)
		}
	}
}

func (s *SessionTestSuite) TestCommandsGoThroughTheQueue() {
	s.startSession(4)

	changed, err := s.session.EnqueuePlayerByCommand(s.ctx, s.a)
	s.Require().NoError(err)
	s.True(changed)

	changed, err = s.session.EnqueuePlayerByCommand(s.ctx, s.a)
	s.Require().NoError(err)
	s.False(changed)

	changed, err = s.session.DequeuePlayerByCommand(s.ctx, s.b)
	s.Require().NoError(err)
	s.False(changed)

	changed, err = s.session.DequeuePlayerByCommand(s.ctx, s.a)
	s.Require().NoError(err)
	s.True(changed)
	s.Equal(messaging.PhaseIdle, s.status().Phase)
}

func (s *SessionTestSuite) TestTickerRepairsReactions() {
	s.startSession(2)
	messageID := s.session.MessageID()
	s.Require().Eventually(func() bool { return s.clock.ActiveTickers() == 1 }, waitFor, tick)

	s.messenger.setReactions(messageID, []string{LeaveEmoji, "🍕"})
	s.clock.Advance(testInterval)

	s.Eventually(func() bool {
		reactions := s.messenger.ownReactions(messageID)
		return len(reactions) == 2 && reactions[0] == LeaveEmoji && reactions[1] == JoinEmoji
	}, waitFor, tick)
	s.Equal(messageID, s.session.MessageID())
}

func (s *SessionTestSuite) TestDeletedStatusMessageIsSentAgain() {
	s.startSession(2)
	messageID := s.session.MessageID()
	s.Require().Eventually(func() bool { return s.clock.ActiveTickers() == 1 }, waitFor, tick)

	s.messenger.deleteMessage(messageID)
	s.clock.Advance(testInterval)

	s.Eventually(func() bool {
		current := s.session.MessageID()
		return current != "" && current != messageID && len(s.messenger.ownReactions(current)) == 2
	}, waitFor, tick)
}

func (s *SessionTestSuite) TestStopCancelsTicker() {
	s.startSession(2)
	s.Require().Eventually(func() bool { return s.clock.ActiveTickers() == 1 }, waitFor, tick)

	s.session.Stop()
	s.Equal(0, s.clock.ActiveTickers())

	_, err := s.session.Status(s.ctx)
	s.ErrorIs(err, ErrSessionStopped)
}
