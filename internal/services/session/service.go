package session

import (
	"context"
	"sort"
	"sync"

	"github.com/sfcrp/sfcrp-bot/internal/common/clock"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	sessionRepo "github.com/sfcrp/sfcrp-bot/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	repo  sessionRepo.Repository
	clock clock.Clock

	// mu spans each full load-mutate-save sequence. Handlers run on
	// discordgo event goroutines, so two commands can race the
	// "no current session" check without it.
	mu sync.Mutex
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repo == nil {
		return nil, ErrNilRepository
	}

	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}

	return &service{
		repo:  cfg.Repo,
		clock: c,
	}, nil
}

// StartSession opens a new session; fails if one is already active
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if doc.CurrentSession != nil {
		return nil, ErrSessionActive
	}

	sess := &models.Session{
		ID:            len(doc.Sessions) + 1,
		HostID:        input.HostID,
		HostName:      input.HostName,
		StartTime:     s.clock.Now(),
		PlayerHistory: []int{},
		VoteInitiated: input.VoteInitiated,
		VoterCount:    input.VoterCount,
	}

	doc.CurrentSession = sess
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	return &StartSessionOutput{
		Session: sess,
	}, nil
}

// EndSession closes the active session and appends it to history
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	sess := doc.CurrentSession
	if sess == nil {
		return nil, ErrNoActiveSession
	}

	now := s.clock.Now()
	sess.EndTime = &now
	sess.EndedByID = input.EndedByID
	sess.EndedByName = input.EndedByName
	sess.DurationMinutes = int(now.Sub(sess.StartTime).Seconds()) / 60

	doc.Sessions = append(doc.Sessions, sess)
	doc.CurrentSession = nil

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	return &EndSessionOutput{
		Session: sess,
	}, nil
}

// GetCurrentStatus returns the active session with its live duration
func (s *service) GetCurrentStatus(ctx context.Context, input *GetCurrentStatusInput) (*GetCurrentStatusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if doc.CurrentSession == nil {
		return nil, ErrNoActiveSession
	}

	return &GetCurrentStatusOutput{
		Session: doc.CurrentSession,
		Elapsed: s.clock.Now().Sub(doc.CurrentSession.StartTime),
	}, nil
}

// GetHistory returns the most recent completed sessions, newest first
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(doc.Sessions) == 0 {
		return nil, ErrNoSessions
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	sessions := make([]*models.Session, len(doc.Sessions))
	copy(sessions, doc.Sessions)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})

	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	return &GetHistoryOutput{
		Sessions: sessions,
		Total:    len(doc.Sessions),
	}, nil
}

// GetStats returns aggregate statistics over all completed sessions
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(doc.Sessions) == 0 {
		return nil, ErrNoSessions
	}

	totalMinutes := 0
	maxPeak := 0
	hostCounts := make(map[string]int)
	bestHost := ""
	bestCount := 0

	for _, sess := range doc.Sessions {
		totalMinutes += sess.DurationMinutes
		if sess.PeakPlayers > maxPeak {
			maxPeak = sess.PeakPlayers
		}

		hostCounts[sess.HostName]++
		// Strictly greater keeps the first host to reach the top count
		if hostCounts[sess.HostName] > bestCount {
			bestCount = hostCounts[sess.HostName]
			bestHost = sess.HostName
		}
	}

	return &GetStatsOutput{
		TotalSessions:       len(doc.Sessions),
		TotalMinutes:        totalMinutes,
		AverageMinutes:      totalMinutes / len(doc.Sessions),
		MaxPeakPlayers:      maxPeak,
		MostActiveHost:      bestHost,
		MostActiveHostCount: bestCount,
	}, nil
}
