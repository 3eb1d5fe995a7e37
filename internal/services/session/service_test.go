package session

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/sfcrp/sfcrp-bot/internal/common/clock/mocks"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	sessionMocks "github.com/sfcrp/sfcrp-bot/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockRepo  *sessionMocks.MockRepository
	mockClock *clockMocks.MockClock
	service   Service
	ctx       context.Context

	testTime     time.Time
	testHostID   string
	testHostName string
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	svc, err := New(&Config{
		Repo:  s.mockRepo,
		Clock: s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 11, 2, 19, 0, 0, 0, time.UTC)
	s.testHostID = "test-host-id"
	s.testHostName = "Test Host"
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) emptyDocument() *models.SessionDocument {
	return &models.SessionDocument{
		Sessions: []*models.Session{},
	}
}

func (s *SessionServiceTestSuite) activeDocument() *models.SessionDocument {
	return &models.SessionDocument{
		Sessions: []*models.Session{},
		CurrentSession: &models.Session{
			ID:            1,
			HostID:        s.testHostID,
			HostName:      s.testHostName,
			StartTime:     s.testTime,
			PlayerHistory: []int{},
		},
	}
}

func (s *SessionServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilRepository)
}

func (s *SessionServiceTestSuite) TestStartSession() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.emptyDocument(), nil)
	s.mockClock.EXPECT().Now().Return(s.testTime)

	var saved *models.SessionDocument
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, doc *models.SessionDocument) error {
			saved = doc
			return nil
		})

	out, err := s.service.StartSession(s.ctx, &StartSessionInput{
		HostID:   s.testHostID,
		HostName: s.testHostName,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)

	s.Equal(1, out.Session.ID)
	s.Equal(s.testHostID, out.Session.HostID)
	s.Equal(s.testHostName, out.Session.HostName)
	s.Equal(s.testTime, out.Session.StartTime)
	s.Nil(out.Session.EndTime)
	s.Zero(out.Session.CurrentPlayers)
	s.Zero(out.Session.PeakPlayers)
	s.False(out.Session.VoteInitiated)

	s.Require().NotNil(saved)
	s.Equal(out.Session, saved.CurrentSession)
	s.Empty(saved.Sessions)
}

func (s *SessionServiceTestSuite) TestStartSessionAssignsSequentialID() {
	doc := s.emptyDocument()
	doc.Sessions = []*models.Session{{ID: 1}, {ID: 2}, {ID: 3}}

	s.mockRepo.EXPECT().Load(s.ctx).Return(doc, nil)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.StartSession(s.ctx, &StartSessionInput{
		HostID:   s.testHostID,
		HostName: s.testHostName,
	})
	s.Require().NoError(err)
	s.Equal(4, out.Session.ID)
}

func (s *SessionServiceTestSuite) TestStartSessionCarriesVoteMetadata() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.emptyDocument(), nil)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.StartSession(s.ctx, &StartSessionInput{
		HostID:        s.testHostID,
		HostName:      s.testHostName,
		VoteInitiated: true,
		VoterCount:    5,
	})
	s.Require().NoError(err)
	s.True(out.Session.VoteInitiated)
	s.Equal(5, out.Session.VoterCount)
}

func (s *SessionServiceTestSuite) TestStartSessionFailsWhenActive() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.activeDocument(), nil)

	out, err := s.service.StartSession(s.ctx, &StartSessionInput{
		HostID:   "someone-else",
		HostName: "Someone Else",
	})
	s.Nil(out)
	s.ErrorIs(err, ErrSessionActive)
}

func (s *SessionServiceTestSuite) TestEndSession() {
	doc := s.activeDocument()
	endTime := s.testTime.Add(90 * time.Second)

	s.mockRepo.EXPECT().Load(s.ctx).Return(doc, nil)
	s.mockClock.EXPECT().Now().Return(endTime)

	var saved *models.SessionDocument
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, d *models.SessionDocument) error {
			saved = d
			return nil
		})

	out, err := s.service.EndSession(s.ctx, &EndSessionInput{
		EndedByID:   "mod-id",
		EndedByName: "Mod",
	})
	s.Require().NoError(err)

	// 90 seconds floors to 1 minute
	s.Equal(1, out.Session.DurationMinutes)
	s.Require().NotNil(out.Session.EndTime)
	s.Equal(endTime, *out.Session.EndTime)
	s.Equal("mod-id", out.Session.EndedByID)
	s.Equal("Mod", out.Session.EndedByName)

	s.Require().NotNil(saved)
	s.Nil(saved.CurrentSession)
	s.Require().Len(saved.Sessions, 1)
	s.Equal(out.Session, saved.Sessions[0])
}

func (s *SessionServiceTestSuite) TestEndSessionFailsWithoutActive() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.emptyDocument(), nil)

	out, err := s.service.EndSession(s.ctx, &EndSessionInput{
		EndedByID:   "mod-id",
		EndedByName: "Mod",
	})
	s.Nil(out)
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *SessionServiceTestSuite) TestEndSessionPropagatesSaveError() {
	saveErr := errors.New("disk full")

	s.mockRepo.EXPECT().Load(s.ctx).Return(s.activeDocument(), nil)
	s.mockClock.EXPECT().Now().Return(s.testTime.Add(time.Hour))
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(saveErr)

	_, err := s.service.EndSession(s.ctx, &EndSessionInput{
		EndedByID:   "mod-id",
		EndedByName: "Mod",
	})
	s.ErrorIs(err, saveErr)
}

func (s *SessionServiceTestSuite) TestGetCurrentStatus() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.activeDocument(), nil)
	s.mockClock.EXPECT().Now().Return(s.testTime.Add(95 * time.Minute))

	out, err := s.service.GetCurrentStatus(s.ctx, &GetCurrentStatusInput{})
	s.Require().NoError(err)
	s.Equal(1, out.Session.ID)
	s.Equal(95*time.Minute, out.Elapsed)
}

func (s *SessionServiceTestSuite) TestGetCurrentStatusFailsWithoutActive() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.emptyDocument(), nil)

	_, err := s.service.GetCurrentStatus(s.ctx, &GetCurrentStatusInput{})
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *SessionServiceTestSuite) TestGetHistorySortsNewestFirst() {
	doc := s.emptyDocument()
	for i := 0; i < 7; i++ {
		doc.Sessions = append(doc.Sessions, &models.Session{
			ID:        i + 1,
			StartTime: s.testTime.Add(time.Duration(i) * time.Hour),
		})
	}

	s.mockRepo.EXPECT().Load(s.ctx).Return(doc, nil)

	out, err := s.service.GetHistory(s.ctx, &GetHistoryInput{})
	s.Require().NoError(err)
	s.Equal(7, out.Total)
	s.Require().Len(out.Sessions, DefaultHistoryLimit)
	s.Equal(7, out.Sessions[0].ID)
	s.Equal(3, out.Sessions[4].ID)
}

func (s *SessionServiceTestSuite) TestGetHistoryFailsWhenEmpty() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.emptyDocument(), nil)

	_, err := s.service.GetHistory(s.ctx, &GetHistoryInput{})
	s.ErrorIs(err, ErrNoSessions)
}

func (s *SessionServiceTestSuite) TestGetStats() {
	doc := s.emptyDocument()
	doc.Sessions = []*models.Session{
		{HostName: "Alice", DurationMinutes: 60, PeakPlayers: 10},
		{HostName: "Bob", DurationMinutes: 30, PeakPlayers: 22},
		{HostName: "Alice", DurationMinutes: 45, PeakPlayers: 5},
	}

	s.mockRepo.EXPECT().Load(s.ctx).Return(doc, nil)

	out, err := s.service.GetStats(s.ctx, &GetStatsInput{})
	s.Require().NoError(err)
	s.Equal(3, out.TotalSessions)
	s.Equal(135, out.TotalMinutes)
	s.Equal(45, out.AverageMinutes)
	s.Equal(22, out.MaxPeakPlayers)
	s.Equal("Alice", out.MostActiveHost)
	s.Equal(2, out.MostActiveHostCount)
}

func (s *SessionServiceTestSuite) TestGetStatsTieGoesToFirstHost() {
	doc := s.emptyDocument()
	doc.Sessions = []*models.Session{
		{HostName: "Alice", DurationMinutes: 10},
		{HostName: "Alice", DurationMinutes: 10},
		{HostName: "Bob", DurationMinutes: 10},
		{HostName: "Bob", DurationMinutes: 10},
	}

	s.mockRepo.EXPECT().Load(s.ctx).Return(doc, nil)

	out, err := s.service.GetStats(s.ctx, &GetStatsInput{})
	s.Require().NoError(err)
	s.Equal("Alice", out.MostActiveHost)
	s.Equal(2, out.MostActiveHostCount)
}

func (s *SessionServiceTestSuite) TestStartEndPairsAccumulateHistory() {
	repo := newInMemoryRepo()
	svc, err := New(&Config{Repo: repo, Clock: s.mockClock})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	const n = 4
	for i := 0; i < n; i++ {
		_, err := svc.StartSession(s.ctx, &StartSessionInput{
			HostID:   s.testHostID,
			HostName: s.testHostName,
		})
		s.Require().NoError(err)

		_, err = svc.EndSession(s.ctx, &EndSessionInput{
			EndedByID:   s.testHostID,
			EndedByName: s.testHostName,
		})
		s.Require().NoError(err)
	}

	doc, err := repo.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(doc.Sessions, n)
	s.Nil(doc.CurrentSession)
}

// inMemoryRepo is a trivial Repository for multi-step flows where mock
// expectations would obscure the sequence under test.
type inMemoryRepo struct {
	doc *models.SessionDocument
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{
		doc: &models.SessionDocument{Sessions: []*models.Session{}},
	}
}

func (r *inMemoryRepo) Load(ctx context.Context) (*models.SessionDocument, error) {
	return r.doc, nil
}

func (r *inMemoryRepo) Save(ctx context.Context, doc *models.SessionDocument) error {
	r.doc = doc
	return nil
}
