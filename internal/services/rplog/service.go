package rplog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/sfcrp/sfcrp-bot/internal/common/clock"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	rplogRepo "github.com/sfcrp/sfcrp-bot/internal/repositories/rplog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// participantPattern matches either a member mention or a bare word, in
// left-to-right order. Group 1 captures the mention ID, group 2 the word.
var participantPattern = regexp.MustCompile(`<@!?(\d+)>|([A-Za-z0-9_]+)`)

var titleCaser = cases.Title(language.English)

// service implements the Service interface
type service struct {
	repo     rplogRepo.Repository
	resolver MemberResolver
	clock    clock.Clock

	// mu spans each full load-mutate-save sequence
	mu sync.Mutex
}

// New creates a new RP log service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repo == nil {
		return nil, ErrNilRepository
	}

	if cfg.Resolver == nil {
		return nil, ErrNilResolver
	}

	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}

	return &service{
		repo:     cfg.Repo,
		resolver: cfg.Resolver,
		clock:    c,
	}, nil
}

// CreateEntry records a new roleplay log
func (s *service) CreateEntry(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	ids, names := s.parseParticipants(ctx, input.GuildID, input.Participants)

	entry := &models.RPLogEntry{
		ID:               len(entries) + 1,
		LoggerID:         input.LoggerID,
		LoggerName:       input.LoggerName,
		Location:         strings.ToLower(input.Location),
		Description:      input.Description,
		Participants:     input.Participants,
		ParticipantIDs:   ids,
		ParticipantNames: names,
		Timestamp:        s.clock.Now(),
		GuildID:          input.GuildID,
	}

	entries = append(entries, entry)
	if err := s.repo.Save(ctx, entries); err != nil {
		return nil, err
	}

	return &CreateEntryOutput{
		Entry: entry,
	}, nil
}

// parseParticipants scans the raw participants text for member mentions
// and bare names. Mention IDs are resolved best-effort; an unresolvable ID
// still gets a synthesized fallback name. Bare words become names with no
// matching ID.
func (s *service) parseParticipants(ctx context.Context, guildID, raw string) ([]string, []string) {
	ids := []string{}
	names := []string{}

	for _, match := range participantPattern.FindAllStringSubmatch(raw, -1) {
		mentionID, word := match[1], match[2]
		if mentionID != "" {
			ids = append(ids, mentionID)
			name, err := s.resolver.ResolveMember(ctx, guildID, mentionID)
			if err != nil || name == "" {
				name = fmt.Sprintf("User_%s", mentionID)
			}
			names = append(names, name)
		} else if word != "" {
			names = append(names, word)
		}
	}

	return ids, names
}

// GetEntry retrieves one log by ID within a guild
func (s *service) GetEntry(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.ID == input.ID && entry.GuildID == input.GuildID {
			return &GetEntryOutput{
				Entry: entry,
			}, nil
		}
	}

	return nil, ErrLogNotFound
}

// GetLeaderboard ranks loggers, participants or locations for a guild
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	guildLogs := make([]*models.RPLogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.GuildID == input.GuildID {
			guildLogs = append(guildLogs, entry)
		}
	}

	if len(guildLogs) == 0 {
		return nil, ErrNoLogs
	}

	category := input.Category
	if category == "" {
		category = CategoryLogged
	}

	var ranked []LeaderboardEntry
	switch category {
	case CategoryLogged:
		ranked = rankSubjects(guildLogs, func(e *models.RPLogEntry) []string {
			return []string{e.LoggerID}
		})
		ranked = s.resolveSubjects(ctx, input.GuildID, ranked)
	case CategoryParticipated:
		ranked = rankSubjects(guildLogs, func(e *models.RPLogEntry) []string {
			return e.ParticipantIDs
		})
		ranked = s.resolveSubjects(ctx, input.GuildID, ranked)
	case CategoryLocations:
		ranked = rankSubjects(guildLogs, func(e *models.RPLogEntry) []string {
			return []string{e.Location}
		})
		for i := range ranked {
			ranked[i].SubjectName = titleCaser.String(ranked[i].SubjectID)
		}
	default:
		return nil, ErrUnknownCategory
	}

	return &GetLeaderboardOutput{
		Category:  category,
		Entries:   ranked,
		TotalLogs: len(guildLogs),
	}, nil
}

// rankSubjects counts subject occurrences across logs and returns the top
// subjects sorted by count descending. Ties keep first-appearance order.
func rankSubjects(logs []*models.RPLogEntry, subjects func(*models.RPLogEntry) []string) []LeaderboardEntry {
	counts := make(map[string]int)
	var order []string

	for _, entry := range logs {
		for _, subject := range subjects(entry) {
			if subject == "" {
				continue
			}
			if _, seen := counts[subject]; !seen {
				order = append(order, subject)
			}
			counts[subject]++
		}
	}

	ranked := make([]LeaderboardEntry, 0, len(order))
	for _, subject := range order {
		ranked = append(ranked, LeaderboardEntry{
			SubjectID: subject,
			Count:     counts[subject],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > LeaderboardLimit {
		ranked = ranked[:LeaderboardLimit]
	}

	return ranked
}

// resolveSubjects fills in display names for member subjects. Subjects
// whose resolution fails are dropped from the listing; the counts of the
// remaining rows are unaffected.
func (s *service) resolveSubjects(ctx context.Context, guildID string, ranked []LeaderboardEntry) []LeaderboardEntry {
	resolved := make([]LeaderboardEntry, 0, len(ranked))
	for _, row := range ranked {
		name, err := s.resolver.ResolveMember(ctx, guildID, row.SubjectID)
		if err != nil || name == "" {
			continue
		}
		row.SubjectName = name
		resolved = append(resolved, row)
	}

	return resolved
}
