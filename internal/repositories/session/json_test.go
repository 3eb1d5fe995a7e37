package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sfcrp/sfcrp-bot/internal/models"
	"github.com/stretchr/testify/suite"
)

type JSONRepositoryTestSuite struct {
	suite.Suite
	path    string
	repo    Repository
	testNow time.Time
}

func (s *JSONRepositoryTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "session_data.json")

	repo, err := NewJSON(&Config{
		Path: s.path,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 11, 2, 19, 0, 0, 0, time.UTC)
}

func TestJSONRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(JSONRepositoryTestSuite))
}

func (s *JSONRepositoryTestSuite) TestNewJSONValidation() {
	_, err := NewJSON(nil)
	s.Error(err)

	_, err = NewJSON(&Config{})
	s.Error(err)
}

func (s *JSONRepositoryTestSuite) TestLoadMissingFileReturnsEmptyDocument() {
	doc, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(doc)

	s.Empty(doc.Sessions)
	s.Nil(doc.CurrentSession)
}

func (s *JSONRepositoryTestSuite) TestLoadCorruptFileReturnsEmptyDocument() {
	err := os.WriteFile(s.path, []byte("{not json"), 0644)
	s.Require().NoError(err)

	doc, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(doc)

	s.Empty(doc.Sessions)
	s.Nil(doc.CurrentSession)
}

func (s *JSONRepositoryTestSuite) TestSaveAndLoadRoundTrip() {
	endTime := s.testNow.Add(90 * time.Minute)
	doc := &models.SessionDocument{
		Sessions: []*models.Session{
			{
				ID:              1,
				HostID:          "100",
				HostName:        "Alice",
				StartTime:       s.testNow,
				EndTime:         &endTime,
				PeakPlayers:     12,
				PlayerUpdates:   3,
				PlayerHistory:   []int{4, 12, 9},
				EndedByID:       "200",
				EndedByName:     "Bob",
				DurationMinutes: 90,
			},
		},
		CurrentSession: &models.Session{
			ID:            2,
			HostID:        "200",
			HostName:      "Bob",
			StartTime:     s.testNow.Add(2 * time.Hour),
			VoteInitiated: true,
			VoterCount:    5,
		},
	}

	err := s.repo.Save(context.Background(), doc)
	s.Require().NoError(err)

	loaded, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Equal(doc, loaded)
}

func (s *JSONRepositoryTestSuite) TestLoadLegacyNaiveTimestamps() {
	// Documents written by earlier deployments carry naive UTC timestamps
	// with no timezone offset
	raw := `{
  "sessions": [
    {
      "id": 1,
      "host_id": "100",
      "host_name": "Alice",
      "start_time": "2025-11-02T19:00:00.123456",
      "end_time": "2025-11-02T20:30:00.654321",
      "current_players": 0,
      "peak_players": 12,
      "player_updates": 3,
      "player_history": [4, 12, 9],
      "vote_initiated": false,
      "voter_count": 0,
      "duration_minutes": 90
    }
  ],
  "current_session": null
}`
	err := os.WriteFile(s.path, []byte(raw), 0644)
	s.Require().NoError(err)

	doc, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Require().Len(doc.Sessions, 1)

	sess := doc.Sessions[0]
	s.Equal(time.Date(2025, 11, 2, 19, 0, 0, 123456000, time.UTC), sess.StartTime)
	s.Require().NotNil(sess.EndTime)
	s.Equal(time.Date(2025, 11, 2, 20, 30, 0, 654321000, time.UTC), *sess.EndTime)
	s.Equal(90, sess.DurationMinutes)
	s.Nil(doc.CurrentSession)
}

func (s *JSONRepositoryTestSuite) TestSaveNilDocumentFails() {
	err := s.repo.Save(context.Background(), nil)
	s.Error(err)
}

func (s *JSONRepositoryTestSuite) TestSaveOverwritesCorruptFile() {
	err := os.WriteFile(s.path, []byte("garbage"), 0644)
	s.Require().NoError(err)

	doc := &models.SessionDocument{Sessions: []*models.Session{}}
	err = s.repo.Save(context.Background(), doc)
	s.Require().NoError(err)

	loaded, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(loaded.Sessions)
	s.Nil(loaded.CurrentSession)
}
