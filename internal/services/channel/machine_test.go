package channel

import (
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/teampicker/internal/common/clock"
	uuidMocks "github.com/KirkDiggler/teampicker/internal/common/uuid/mocks"
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/random"
	randomMocks "github.com/KirkDiggler/teampicker/internal/random/mocks"
	"github.com/KirkDiggler/teampicker/internal/services/draft"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MachineTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRandom *randomMocks.MockSource
	mockUUID   *uuidMocks.MockUUID
	clock      *clock.FakeClock

	testTime time.Time
	a        models.Player
	b        models.Player
	c        models.Player
	d        models.Player
	t1       string
	t2       string
}

func (s *MachineTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRandom = randomMocks.NewMockSource(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.testTime = time.Date(2025, 4, 5, 20, 0, 0, 0, time.UTC)
	s.clock = clock.NewFake(s.testTime)

	// Always draw the first candidate
	s.mockRandom.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()

	s.a = models.Player{ID: "a", Name: "A"}
	s.b = models.Player{ID: "b", Name: "B"}
	s.c = models.Player{ID: "c", Name: "C"}
	s.d = models.Player{ID: "d", Name: "D"}
	s.t1 = draft.DefaultAlphabet[0]
	s.t2 = draft.DefaultAlphabet[1]
}

func (s *MachineTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMachineTestSuite(t *testing.T) {
	suite.Run(t, new(MachineTestSuite))
}

func (s *MachineTestSuite) newMachine(capacity int) *Machine {
	m, err := NewMachine(&MachineConfig{
		ChannelID: "queue",
		GuildID:   "guild",
		Capacity:  capacity,
		Random:    s.mockRandom,
		Clock:     s.clock,
		UUID:      s.mockUUID,
	})
	s.Require().NoError(err)
	return m
}

func startedMatch(effects []Effect) *models.Match {
	for _, e := range effects {
		if start, ok := e.(StartMatch); ok {
			return start.Match
		}
	}
	return nil
}

func (s *MachineTestSuite) TestNewMachineValidatesConfig() {
	_, err := NewMachine(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewMachine(&MachineConfig{Capacity: 2})
	s.ErrorIs(err, ErrMissingChannelID)

	_, err = NewMachine(&MachineConfig{ChannelID: "queue", Capacity: 1})
	s.ErrorIs(err, ErrInvalidCapacity)

	_, err = NewMachine(&MachineConfig{ChannelID: "queue", Capacity: 2, Random: s.mockRandom, Clock: s.clock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

func (s *MachineTestSuite) TestTwoPlayersDraftImmediately() {
	m := s.newMachine(2)
	s.mockUUID.EXPECT().NewUUID().Return("match-1")

	effects := m.Apply(QueueSignal{Player: s.a})
	s.Equal([]Effect{Render{}}, effects)
	s.Equal(StateQueueing, m.State())
	s.Equal([]models.Player{s.a}, m.Roster())

	effects = m.Apply(QueueSignal{Player: s.b})
	s.Equal(StateIdle, m.State())
	s.Empty(m.Roster())

	match := startedMatch(effects)
	s.Require().NotNil(match)
	s.Equal("match-1", match.ID)
	s.Equal("queue", match.ChannelID)
	s.Equal("guild", match.GuildID)
	s.Equal([]models.Player{s.a}, match.TeamA)
	s.Equal([]models.Player{s.b}, match.TeamB)
	s.Equal(s.testTime, match.CreatedAt)
	s.Equal("match-1", m.Provisioning())
}

func (s *MachineTestSuite) TestFourPlayerDraft() {
	m := s.newMachine(4)
	s.mockUUID.EXPECT().NewUUID().Return("match-1")

	for _, p := range []models.Player{s.a, s.b, s.c} {
		m.Apply(QueueSignal{Player: p})
		s.Equal(StateQueueing, m.State())
	}
	m.Apply(QueueSignal{Player: s.d})
	s.Require().Equal(StatePicking, m.State())

	captainA, captainB := m.Draft().Captains()
	s.Equal(s.a, captainA)
	s.Equal(s.b, captainB)
	s.Equal([]draft.Candidate{{Token: s.t1, Player: s.c}, {Token: s.t2, Player: s.d}}, m.Draft().Remaining())
	s.Equal([]string{s.t1, s.t2}, m.Affordances())

	effects := m.Apply(PickSignal{Actor: s.a, Token: s.t1})
	s.Equal([]Effect{Render{}}, effects)
	s.Equal([]models.Player{s.a, s.c}, m.Draft().TeamA())
	s.Equal(s.b, m.Draft().CurrentPicker())
	s.Equal([]string{s.t2}, m.Affordances())

	effects = m.Apply(PickSignal{Actor: s.b, Token: s.t2})
	match := startedMatch(effects)
	s.Require().NotNil(match)
	s.Equal([]models.Player{s.a, s.c}, match.TeamA)
	s.Equal([]models.Player{s.b, s.d}, match.TeamB)

	s.Equal(StateIdle, m.State())
	s.Empty(m.Roster())
	s.Nil(m.Draft())
	s.Equal([]string{JoinEmoji, LeaveEmoji}, m.Affordances())
}

func (s *MachineTestSuite) TestPickByNonCaptainIsIgnored() {
	m := s.newMachine(4)
	for _, p := range []models.Player{s.a, s.b, s.c, s.d} {
		m.Apply(QueueSignal{Player: p})
	}
	s.Require().Equal(StatePicking, m.State())

	s.Empty(m.Apply(PickSignal{Actor: s.c, Token: s.t1}))
	s.Empty(m.Apply(PickSignal{Actor: s.b, Token: s.t1}))
	s.Empty(m.Apply(PickSignal{Actor: s.a, Token: "🍕"}))

	s.Equal([]models.Player{s.a}, m.Draft().TeamA())
	s.Equal([]models.Player{s.b}, m.Draft().TeamB())
	s.Len(m.Draft().Remaining(), 2)
	s.Equal(s.a, m.Draft().CurrentPicker())
}

func (s *MachineTestSuite) TestCancelToEmptyReturnsToIdle() {
	m := s.newMachine(3)

	m.Apply(QueueSignal{Player: s.a})
	m.Apply(QueueSignal{Player: s.b})

	s.Equal([]Effect{Render{}}, m.Apply(CancelSignal{Player: s.a}))
	s.Equal(StateQueueing, m.State())
	s.Equal([]models.Player{s.b}, m.Roster())

	s.Equal([]Effect{Render{}}, m.Apply(CancelSignal{Player: s.b}))
	s.Equal(StateIdle, m.State())
	s.Empty(m.Roster())
}

func (s *MachineTestSuite) TestInvalidSignalsAreIgnored() {
	m := s.newMachine(4)

	s.Empty(m.Apply(CancelSignal{Player: s.a}))
	s.Empty(m.Apply(PickSignal{Actor: s.a, Token: s.t1}))
	s.Equal(StateIdle, m.State())

	m.Apply(QueueSignal{Player: s.a})
	s.Empty(m.Apply(QueueSignal{Player: s.a}))
	s.Empty(m.Apply(CancelSignal{Player: s.b}))
	s.Empty(m.Apply(ProvisionFinished{MatchID: "unknown"}))
	s.Equal([]models.Player{s.a}, m.Roster())
}

func (s *MachineTestSuite) TestPickingIgnoresQueueAndCancel() {
	m := s.newMachine(4)
	for _, p := range []models.Player{s.a, s.b, s.c, s.d} {
		m.Apply(QueueSignal{Player: p})
	}

	s.Empty(m.Apply(QueueSignal{Player: models.Player{ID: "e", Name: "E"}}))
	s.Empty(m.Apply(CancelSignal{Player: s.c}))
	s.Equal(StatePicking, m.State())
	s.Len(m.Draft().Remaining(), 2)
}

func (s *MachineTestSuite) TestNextDraftWaitsForProvisioning() {
	m := s.newMachine(2)
	s.mockUUID.EXPECT().NewUUID().Return("match-1")
	s.mockUUID.EXPECT().NewUUID().Return("match-2")

	m.Apply(QueueSignal{Player: s.a})
	m.Apply(QueueSignal{Player: s.b})
	s.Require().Equal("match-1", m.Provisioning())

	// A new roster fills while the first match is still provisioning
	m.Apply(QueueSignal{Player: s.c})
	effects := m.Apply(QueueSignal{Player: s.d})
	s.Equal([]Effect{Render{}}, effects)
	s.Equal(StateQueueing, m.State())
	s.Equal([]models.Player{s.c, s.d}, m.Roster())
	s.True(m.View().Provisioning)

	// Players can still leave and rejoin while held
	s.NotEmpty(m.Apply(CancelSignal{Player: s.d}))
	effects = m.Apply(QueueSignal{Player: s.d})
	s.Nil(startedMatch(effects))

	effects = m.Apply(ProvisionFinished{MatchID: "match-1"})
	match := startedMatch(effects)
	s.Require().NotNil(match)
	s.Equal("match-2", match.ID)
	s.Equal([]models.Player{s.c}, match.TeamA)
	s.Equal([]models.Player{s.d}, match.TeamB)
	s.Equal("match-2", m.Provisioning())
}

func (s *MachineTestSuite) TestProvisionFailureStillReleasesGuard() {
	m := s.newMachine(2)
	s.mockUUID.EXPECT().NewUUID().Return("match-1")

	m.Apply(QueueSignal{Player: s.a})
	m.Apply(QueueSignal{Player: s.b})

	effects := m.Apply(ProvisionFinished{MatchID: "match-1", Err: errors.New("quota reached")})
	s.Equal([]Effect{Render{}}, effects)
	s.Empty(m.Provisioning())
}

func (s *MachineTestSuite) TestView() {
	m := s.newMachine(4)
	s.Equal(messaging.PhaseIdle, m.View().Phase)

	m.Apply(QueueSignal{Player: s.a})
	view := m.View()
	s.Equal(messaging.PhaseQueueing, view.Phase)
	s.Equal(4, view.Capacity)
	s.Equal([]models.Player{s.a}, view.Queue)

	for _, p := range []models.Player{s.b, s.c, s.d} {
		m.Apply(QueueSignal{Player: p})
	}
	view = m.View()
	s.Equal(messaging.PhasePicking, view.Phase)
	s.Equal(s.a, view.CaptainA)
	s.Equal(s.b, view.CaptainB)
	s.Equal(s.a, view.Picker)
	s.Len(view.Candidates, 2)
}

func (s *MachineTestSuite) TestDraftInvariantsWithSeededRandom() {
	for seed := int64(1); seed <= 20; seed++ {
		m, err := NewMachine(&MachineConfig{
			ChannelID: "queue",
			Capacity:  6,
			Random:    random.New(&random.Config{Seed: seed}),
			Clock:     s.clock,
			UUID:      s.mockUUID,
		})
		s.Require().NoError(err)
		s.mockUUID.EXPECT().NewUUID().Return("match")

		players := []models.Player{s.a, s.b, s.c, s.d, {ID: "e", Name: "E"}, {ID: "f", Name: "F"}}
		for _, p := range players {
			m.Apply(QueueSignal{Player: p})
		}
		s.Require().Equal(StatePicking, m.State())

		var match *models.Match
		for match == nil {
			d := m.Draft()
			s.Require().NotNil(d)
			s.LessOrEqual(abs(len(d.TeamA())-len(d.TeamB())), 1)
			s.Equal(6, len(d.TeamA())+len(d.TeamB())+len(d.Remaining()))

			match = startedMatch(m.Apply(PickSignal{Actor: d.CurrentPicker(), Token: d.Remaining()[0].Token}))
		}

		s.Len(match.TeamA, 3)
		s.Len(match.TeamB, 3)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
