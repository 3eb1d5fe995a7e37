package rplog

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/sfcrp/sfcrp-bot/internal/common/clock/mocks"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	rplogMocks "github.com/sfcrp/sfcrp-bot/internal/repositories/rplog/mocks"
	resolverMocks "github.com/sfcrp/sfcrp-bot/internal/services/rplog/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RPLogServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockRepo     *rplogMocks.MockRepository
	mockResolver *resolverMocks.MockMemberResolver
	mockClock    *clockMocks.MockClock
	service      Service
	ctx          context.Context

	testTime    time.Time
	testGuildID string
}

func (s *RPLogServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = rplogMocks.NewMockRepository(s.mockCtrl)
	s.mockResolver = resolverMocks.NewMockMemberResolver(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	svc, err := New(&Config{
		Repo:     s.mockRepo,
		Resolver: s.mockResolver,
		Clock:    s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 11, 2, 19, 0, 0, 0, time.UTC)
	s.testGuildID = "guild-1"
}

func (s *RPLogServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRPLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RPLogServiceTestSuite))
}

func (s *RPLogServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Resolver: s.mockResolver})
	s.ErrorIs(err, ErrNilRepository)

	_, err = New(&Config{Repo: s.mockRepo})
	s.ErrorIs(err, ErrNilResolver)
}

func (s *RPLogServiceTestSuite) TestCreateEntryParsesMentionsAndNames() {
	s.mockRepo.EXPECT().Load(s.ctx).Return([]*models.RPLogEntry{}, nil)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "123").Return("Charlie", nil)

	var saved []*models.RPLogEntry
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []*models.RPLogEntry) error {
			saved = entries
			return nil
		})

	out, err := s.service.CreateEntry(s.ctx, &CreateEntryInput{
		LoggerID:     "100",
		LoggerName:   "Alice",
		Location:     "Pier 39",
		Description:  "Traffic stop gone wrong",
		Participants: "<@123>, Bob",
		GuildID:      s.testGuildID,
	})
	s.Require().NoError(err)

	s.Equal(1, out.Entry.ID)
	s.Equal("pier 39", out.Entry.Location)
	s.Equal("<@123>, Bob", out.Entry.Participants)
	s.Equal([]string{"123"}, out.Entry.ParticipantIDs)
	s.Equal([]string{"Charlie", "Bob"}, out.Entry.ParticipantNames)
	s.Equal(s.testTime, out.Entry.Timestamp)

	s.Require().Len(saved, 1)
	s.Equal(out.Entry, saved[0])
}

func (s *RPLogServiceTestSuite) TestCreateEntryFallsBackOnUnresolvedMention() {
	s.mockRepo.EXPECT().Load(s.ctx).Return([]*models.RPLogEntry{}, nil)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "456").
		Return("", errors.New("member left"))
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.CreateEntry(s.ctx, &CreateEntryInput{
		LoggerID:     "100",
		LoggerName:   "Alice",
		Location:     "Docks",
		Description:  "Standoff",
		Participants: "<@!456>",
		GuildID:      s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal([]string{"456"}, out.Entry.ParticipantIDs)
	s.Equal([]string{"User_456"}, out.Entry.ParticipantNames)
}

func (s *RPLogServiceTestSuite) TestCreateEntryAssignsSequentialID() {
	existing := []*models.RPLogEntry{{ID: 1}, {ID: 2}}
	s.mockRepo.EXPECT().Load(s.ctx).Return(existing, nil)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.CreateEntry(s.ctx, &CreateEntryInput{
		LoggerID:   "100",
		LoggerName: "Alice",
		Location:   "Docks",
		GuildID:    s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal(3, out.Entry.ID)
}

func (s *RPLogServiceTestSuite) TestGetEntryFiltersByGuild() {
	entries := []*models.RPLogEntry{
		{ID: 1, GuildID: "other-guild", Description: "elsewhere"},
		{ID: 1, GuildID: s.testGuildID, Description: "here"},
	}
	s.mockRepo.EXPECT().Load(s.ctx).Return(entries, nil)

	out, err := s.service.GetEntry(s.ctx, &GetEntryInput{
		ID:      1,
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal("here", out.Entry.Description)
}

func (s *RPLogServiceTestSuite) TestGetEntryNotFound() {
	s.mockRepo.EXPECT().Load(s.ctx).Return([]*models.RPLogEntry{}, nil)

	_, err := s.service.GetEntry(s.ctx, &GetEntryInput{
		ID:      99,
		GuildID: s.testGuildID,
	})
	s.ErrorIs(err, ErrLogNotFound)
}

func (s *RPLogServiceTestSuite) guildLogs() []*models.RPLogEntry {
	return []*models.RPLogEntry{
		{ID: 1, GuildID: s.testGuildID, LoggerID: "100", Location: "pier", ParticipantIDs: []string{"123", "456"}},
		{ID: 2, GuildID: s.testGuildID, LoggerID: "200", Location: "pier", ParticipantIDs: []string{"123"}},
		{ID: 3, GuildID: s.testGuildID, LoggerID: "100", Location: "docks", ParticipantIDs: []string{}},
		{ID: 4, GuildID: "other-guild", LoggerID: "300", Location: "pier", ParticipantIDs: []string{"789"}},
	}
}

func (s *RPLogServiceTestSuite) TestLeaderboardByLocation() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.guildLogs(), nil)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID:  s.testGuildID,
		Category: CategoryLocations,
	})
	s.Require().NoError(err)
	s.Equal(3, out.TotalLogs)
	s.Require().Len(out.Entries, 2)

	s.Equal("pier", out.Entries[0].SubjectID)
	s.Equal("Pier", out.Entries[0].SubjectName)
	s.Equal(2, out.Entries[0].Count)
	s.Equal("docks", out.Entries[1].SubjectID)
	s.Equal(1, out.Entries[1].Count)
}

func (s *RPLogServiceTestSuite) TestLeaderboardByLogger() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.guildLogs(), nil)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "100").Return("Alice", nil)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "200").Return("Bob", nil)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID:  s.testGuildID,
		Category: CategoryLogged,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)
	s.Equal("Alice", out.Entries[0].SubjectName)
	s.Equal(2, out.Entries[0].Count)
	s.Equal("Bob", out.Entries[1].SubjectName)
	s.Equal(1, out.Entries[1].Count)
}

func (s *RPLogServiceTestSuite) TestLeaderboardDefaultsToLogged() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.guildLogs(), nil)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, gomock.Any()).
		Return("Someone", nil).AnyTimes()

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal(CategoryLogged, out.Category)
}

func (s *RPLogServiceTestSuite) TestLeaderboardByParticipant() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.guildLogs(), nil)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "123").Return("Charlie", nil)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "456").Return("Dana", nil)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID:  s.testGuildID,
		Category: CategoryParticipated,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)
	s.Equal("Charlie", out.Entries[0].SubjectName)
	s.Equal(2, out.Entries[0].Count)
	s.Equal("Dana", out.Entries[1].SubjectName)
	s.Equal(1, out.Entries[1].Count)
}

func (s *RPLogServiceTestSuite) TestLeaderboardDropsUnresolvableMembers() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.guildLogs(), nil)
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "100").
		Return("", errors.New("member left"))
	s.mockResolver.EXPECT().ResolveMember(s.ctx, s.testGuildID, "200").Return("Bob", nil)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID:  s.testGuildID,
		Category: CategoryLogged,
	})
	s.Require().NoError(err)

	// The unresolvable top logger is dropped from the listing; the
	// remaining row keeps its own count
	s.Require().Len(out.Entries, 1)
	s.Equal("Bob", out.Entries[0].SubjectName)
	s.Equal(1, out.Entries[0].Count)
}

func (s *RPLogServiceTestSuite) TestLeaderboardUnknownCategory() {
	s.mockRepo.EXPECT().Load(s.ctx).Return(s.guildLogs(), nil)

	_, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID:  s.testGuildID,
		Category: Category("bogus"),
	})
	s.ErrorIs(err, ErrUnknownCategory)
}

func (s *RPLogServiceTestSuite) TestLeaderboardNoLogsForGuild() {
	s.mockRepo.EXPECT().Load(s.ctx).Return([]*models.RPLogEntry{}, nil)

	_, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID:  s.testGuildID,
		Category: CategoryLocations,
	})
	s.ErrorIs(err, ErrNoLogs)
}
