package session_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/sfcrp/sfcrp-bot/internal/models"
	"github.com/sfcrp/sfcrp-bot/internal/services/session"
	sessionMocks "github.com/sfcrp/sfcrp-bot/internal/services/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VoteTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *sessionMocks.MockService
	vote        *session.Vote
	ctx         context.Context
}

func (s *VoteTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = sessionMocks.NewMockService(s.mockCtrl)

	vote, err := session.NewVote(&session.VoteConfig{
		Goal:    5,
		Service: s.mockService,
	})
	s.Require().NoError(err)
	s.vote = vote

	s.ctx = context.Background()
}

func (s *VoteTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVoteTestSuite(t *testing.T) {
	suite.Run(t, new(VoteTestSuite))
}

func (s *VoteTestSuite) TestNewVoteValidation() {
	_, err := session.NewVote(nil)
	s.ErrorIs(err, session.ErrNilConfig)

	_, err = session.NewVote(&session.VoteConfig{Goal: 5})
	s.ErrorIs(err, session.ErrNilService)

	_, err = session.NewVote(&session.VoteConfig{Goal: 0, Service: s.mockService})
	s.ErrorIs(err, session.ErrInvalidGoal)
}

func (s *VoteTestSuite) TestVoteHasInstanceID() {
	s.NotEmpty(s.vote.ID())

	other, err := session.NewVote(&session.VoteConfig{
		Goal:    5,
		Service: s.mockService,
	})
	s.Require().NoError(err)
	s.NotEqual(s.vote.ID(), other.ID())
}

func (s *VoteTestSuite) TestCastCountsUniqueVoters() {
	out, err := s.vote.Cast(s.ctx, "1", "Alice")
	s.Require().NoError(err)
	s.Equal(1, out.Count)
	s.False(out.GoalReached)

	out, err = s.vote.Cast(s.ctx, "2", "Bob")
	s.Require().NoError(err)
	s.Equal(2, out.Count)

	s.Equal(2, s.vote.Tally())
	s.Equal([]string{"Alice", "Bob"}, s.vote.VoterNames())
}

func (s *VoteTestSuite) TestCastTwiceFails() {
	_, err := s.vote.Cast(s.ctx, "1", "Alice")
	s.Require().NoError(err)

	_, err = s.vote.Cast(s.ctx, "1", "Alice")
	s.ErrorIs(err, session.ErrAlreadyVoted)
	s.Equal(1, s.vote.Tally())
}

func (s *VoteTestSuite) TestRetract() {
	_, err := s.vote.Cast(s.ctx, "1", "Alice")
	s.Require().NoError(err)
	_, err = s.vote.Cast(s.ctx, "2", "Bob")
	s.Require().NoError(err)

	out, err := s.vote.Retract(s.ctx, "1")
	s.Require().NoError(err)
	s.Equal(1, out.Count)
	s.Equal([]string{"Bob"}, s.vote.VoterNames())
}

func (s *VoteTestSuite) TestRetractWithoutVoteFails() {
	_, err := s.vote.Retract(s.ctx, "1")
	s.ErrorIs(err, session.ErrNotVoted)
	s.Equal(0, s.vote.Tally())
}

func (s *VoteTestSuite) TestGoalReachedStartsSessionOnce() {
	started := &session.StartSessionOutput{
		Session: &models.Session{ID: 1, HostID: "5", HostName: "Eve", VoteInitiated: true, VoterCount: 5},
	}

	// The goal-reaching voter becomes the session host
	s.mockService.EXPECT().StartSession(s.ctx, &session.StartSessionInput{
		HostID:        "5",
		HostName:      "Eve",
		VoteInitiated: true,
		VoterCount:    5,
	}).Return(started, nil).Times(1)

	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
	for i := 0; i < 4; i++ {
		out, err := s.vote.Cast(s.ctx, fmt.Sprintf("%d", i+1), names[i])
		s.Require().NoError(err)
		s.False(out.GoalReached)
	}

	out, err := s.vote.Cast(s.ctx, "5", "Eve")
	s.Require().NoError(err)
	s.True(out.GoalReached)
	s.Equal(5, out.Count)
	s.Equal(started.Session, out.Session)
	s.True(s.vote.Closed())
}

func (s *VoteTestSuite) TestClosedVoteRejectsFurtherOperations() {
	vote, err := session.NewVote(&session.VoteConfig{
		Goal:    1,
		Service: s.mockService,
	})
	s.Require().NoError(err)

	s.mockService.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(
		&session.StartSessionOutput{Session: &models.Session{ID: 1}}, nil)

	_, err = vote.Cast(s.ctx, "1", "Alice")
	s.Require().NoError(err)

	_, err = vote.Cast(s.ctx, "2", "Bob")
	s.ErrorIs(err, session.ErrVoteClosed)

	_, err = vote.Retract(s.ctx, "1")
	s.ErrorIs(err, session.ErrVoteClosed)
}

func (s *VoteTestSuite) TestGoalReachedWithActiveSessionPropagatesError() {
	vote, err := session.NewVote(&session.VoteConfig{
		Goal:    1,
		Service: s.mockService,
	})
	s.Require().NoError(err)

	s.mockService.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(
		nil, session.ErrSessionActive)

	_, err = vote.Cast(s.ctx, "1", "Alice")
	s.ErrorIs(err, session.ErrSessionActive)
	s.True(vote.Closed())
}
