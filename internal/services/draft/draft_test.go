package draft

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/random"
	randomMocks "github.com/KirkDiggler/teampicker/internal/random/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DraftTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRandom *randomMocks.MockSource

	a, b, c, d models.Player
}

func (s *DraftTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRandom = randomMocks.NewMockSource(s.mockCtrl)

	s.a = models.Player{ID: "a-id", Name: "A"}
	s.b = models.Player{ID: "b-id", Name: "B"}
	s.c = models.Player{ID: "c-id", Name: "C"}
	s.d = models.Player{ID: "d-id", Name: "D"}
}

func (s *DraftTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDraftTestSuite(t *testing.T) {
	suite.Run(t, new(DraftTestSuite))
}

func (s *DraftTestSuite) newDraft(size int) *Draft {
	d, err := New(&Config{Size: size, Random: s.mockRandom})
	s.Require().NoError(err)
	return d
}

func (s *DraftTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{Size: 4})
	s.Equal(ErrNilRandom, err)

	_, err = New(&Config{Size: 3, Random: s.mockRandom})
	s.Equal(ErrOddSize, err)

	_, err = New(&Config{Size: 0, Random: s.mockRandom})
	s.Equal(ErrOddSize, err)

	_, err = New(&Config{Size: 6, Random: s.mockRandom, Alphabet: []string{"x", "y", "z"}})
	s.Equal(ErrAlphabetTooSmall, err)
}

func (s *DraftTestSuite) TestStartRejectsWrongPlayerCount() {
	d := s.newDraft(4)

	err := d.Start([]models.Player{s.a, s.b, s.c})

	var precondition *PreconditionError
	s.Require().True(errors.As(err, &precondition))
	s.Equal("start", precondition.Op)
	s.Equal(StatusNotStarted, d.Status())
}

func (s *DraftTestSuite) TestStartRejectsDuplicatePlayers() {
	d := s.newDraft(4)

	err := d.Start([]models.Player{s.a, s.b, s.c, s.a})

	var precondition *PreconditionError
	s.True(errors.As(err, &precondition))
}

func (s *DraftTestSuite) TestStartTwiceIsAPreconditionError() {
	d := s.newDraft(2)
	s.mockRandom.EXPECT().Intn(gomock.Any()).Return(0).Times(2)
	s.Require().NoError(d.Start([]models.Player{s.a, s.b}))

	var precondition *PreconditionError
	s.True(errors.As(d.Start([]models.Player{s.a, s.b}), &precondition))
}

func (s *DraftTestSuite) TestTwoPlayerDraftCompletesImmediately() {
	d := s.newDraft(2)
	s.mockRandom.EXPECT().Intn(2).Return(0)
	s.mockRandom.EXPECT().Intn(1).Return(0)

	s.Require().NoError(d.Start([]models.Player{s.a, s.b}))

	captainA, captainB := d.Captains()
	s.Equal(s.a, captainA)
	s.Equal(s.b, captainB)
	s.Empty(d.Remaining())
	s.True(d.IsComplete())
	s.Equal([]models.Player{s.a}, d.TeamA())
	s.Equal([]models.Player{s.b}, d.TeamB())
}

func (s *DraftTestSuite) TestCaptainsDrawnWithoutReplacement() {
	d := s.newDraft(4)
	// second draw indexes the pool with captain A already removed
	s.mockRandom.EXPECT().Intn(4).Return(2)
	s.mockRandom.EXPECT().Intn(3).Return(2)

	s.Require().NoError(d.Start([]models.Player{s.a, s.b, s.c, s.d}))

	captainA, captainB := d.Captains()
	s.Equal(s.c, captainA)
	s.Equal(s.d, captainB)
	s.Equal([]Candidate{
		{Token: DefaultAlphabet[0], Player: s.a},
		{Token: DefaultAlphabet[1], Player: s.b},
	}, d.Remaining())
}

func (s *DraftTestSuite) TestFourPlayerDraft() {
	d := s.newDraft(4)
	s.mockRandom.EXPECT().Intn(4).Return(0)
	s.mockRandom.EXPECT().Intn(3).Return(0)

	s.Require().NoError(d.Start([]models.Player{s.a, s.b, s.c, s.d}))
	s.Equal(StatusDrafting, d.Status())
	s.Equal(s.a, d.CurrentPicker())

	remaining := d.Remaining()
	s.Require().Len(remaining, 2)
	s.Equal(s.c, remaining[0].Player)
	s.Equal(s.d, remaining[1].Player)
	t1, t2 := remaining[0].Token, remaining[1].Token
	s.NotEqual(t1, t2)

	picked, err := d.Pick(s.a.ID, t1)
	s.Require().NoError(err)
	s.Equal(s.c, picked)
	s.Equal([]models.Player{s.a, s.c}, d.TeamA())
	s.Equal(s.b, d.CurrentPicker())
	s.False(d.IsComplete())

	picked, err = d.Pick(s.b.ID, t2)
	s.Require().NoError(err)
	s.Equal(s.d, picked)
	s.Equal([]models.Player{s.b, s.d}, d.TeamB())
	s.True(d.IsComplete())
	s.Equal(StatusComplete, d.Status())
}

func (s *DraftTestSuite) TestRejectedPicksLeaveStateUnchanged() {
	d := s.newDraft(4)
	s.mockRandom.EXPECT().Intn(gomock.Any()).Return(0).Times(2)
	s.Require().NoError(d.Start([]models.Player{s.a, s.b, s.c, s.d}))
	token := d.Remaining()[0].Token

	_, err := d.Pick(s.c.ID, token)
	s.Equal(ErrNotYourTurn, err)

	_, err = d.Pick(s.b.ID, token)
	s.Equal(ErrNotYourTurn, err)

	_, err = d.Pick(s.a.ID, "not-a-token")
	s.Equal(ErrUnknownToken, err)

	s.Equal(s.a, d.CurrentPicker())
	s.Len(d.Remaining(), 2)
	s.Equal([]models.Player{s.a}, d.TeamA())
	s.Equal([]models.Player{s.b}, d.TeamB())
}

func (s *DraftTestSuite) TestPickBeforeStartOrAfterCompletion() {
	d := s.newDraft(2)

	_, err := d.Pick(s.a.ID, DefaultAlphabet[0])
	s.Equal(ErrDraftNotActive, err)

	s.mockRandom.EXPECT().Intn(gomock.Any()).Return(0).Times(2)
	s.Require().NoError(d.Start([]models.Player{s.a, s.b}))

	_, err = d.Pick(s.a.ID, DefaultAlphabet[0])
	s.Equal(ErrDraftNotActive, err)
}

func (s *DraftTestSuite) TestInvariantsHoldForRandomDrafts() {
	for seed := int64(1); seed <= 25; seed++ {
		const size = 10
		src := random.New(&random.Config{Seed: seed})
		d, err := New(&Config{Size: size, Random: src})
		s.Require().NoError(err)

		players := make([]models.Player, 0, size)
		for i := 0; i < size; i++ {
			players = append(players, models.Player{ID: fmt.Sprintf("p%d", i)})
		}
		s.Require().NoError(d.Start(players))

		captainA, captainB := d.Captains()
		s.NotEqual(captainA.ID, captainB.ID)
		s.Contains(players, captainA)
		s.Contains(players, captainB)

		tokens := make(map[string]bool)
		for _, c := range d.Remaining() {
			s.False(tokens[c.Token], "duplicate token %s", c.Token)
			tokens[c.Token] = true
		}
		s.Len(tokens, size-2)

		for !d.IsComplete() {
			picker := d.CurrentPicker()
			remaining := d.Remaining()
			candidate := remaining[src.Intn(len(remaining))]

			_, err := d.Pick(picker.ID, candidate.Token)
			s.Require().NoError(err)

			s.NotEqual(picker.ID, d.CurrentPicker().ID)
			s.Equal(size, len(d.TeamA())+len(d.TeamB())+len(d.Remaining()))
			diff := len(d.TeamA()) - len(d.TeamB())
			s.LessOrEqual(diff, 1)
			s.GreaterOrEqual(diff, -1)
		}
		s.Len(d.TeamA(), size/2)
		s.Len(d.TeamB(), size/2)
	}
}
