package session

import (
	"context"
	"sync"

	"github.com/sfcrp/sfcrp-bot/internal/common/uuid"
	"github.com/sfcrp/sfcrp-bot/internal/models"
)

// VoteConfig holds configuration for a session start vote
type VoteConfig struct {
	// Goal is the number of unique voters required to start the session
	Goal int

	// Service is called to start the session once the goal is reached
	Service Service

	// UUIDGenerator mints the vote instance ID used in component custom
	// IDs; defaults to the standard generator
	UUIDGenerator uuid.UUID
}

// Vote aggregates unique voters for one session start vote. It lives only
// in memory for the lifetime of a single vote message and is discarded on
// restart.
type Vote struct {
	id      string
	goal    int
	service Service

	mu     sync.Mutex
	votes  map[string]struct{}
	names  map[string]string
	order  []string
	closed bool
}

// CastVoteOutput contains the result of casting a vote
type CastVoteOutput struct {
	// Count is the tally after this vote
	Count int

	// GoalReached is true when this cast closed the vote
	GoalReached bool

	// Session is the session opened by reaching the goal, nil otherwise
	Session *models.Session
}

// RetractVoteOutput contains the result of retracting a vote
type RetractVoteOutput struct {
	// Count is the tally after the retraction
	Count int
}

// NewVote creates a new session start vote
func NewVote(cfg *VoteConfig) (*Vote, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Service == nil {
		return nil, ErrNilService
	}

	if cfg.Goal < 1 {
		return nil, ErrInvalidGoal
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	return &Vote{
		id:      gen.NewUUID(),
		goal:    cfg.Goal,
		service: cfg.Service,
		votes:   make(map[string]struct{}),
		names:   make(map[string]string),
	}, nil
}

// ID returns the vote instance ID
func (v *Vote) ID() string {
	return v.id
}

// Goal returns the configured vote goal
func (v *Vote) Goal() int {
	return v.goal
}

// Cast records a vote. Voting twice fails with ErrAlreadyVoted. The cast
// that reaches the goal closes the vote and starts the session with the
// goal-reaching voter as host; that happens at most once per vote.
func (v *Vote) Cast(ctx context.Context, voterID, displayName string) (*CastVoteOutput, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrVoteClosed
	}

	if _, ok := v.votes[voterID]; ok {
		return nil, ErrAlreadyVoted
	}

	v.votes[voterID] = struct{}{}
	v.names[voterID] = displayName
	v.order = append(v.order, voterID)

	count := len(v.votes)
	if count < v.goal {
		return &CastVoteOutput{
			Count: count,
		}, nil
	}

	v.closed = true

	started, err := v.service.StartSession(ctx, &StartSessionInput{
		HostID:        voterID,
		HostName:      displayName,
		VoteInitiated: true,
		VoterCount:    count,
	})
	if err != nil {
		return nil, err
	}

	return &CastVoteOutput{
		Count:       count,
		GoalReached: true,
		Session:     started.Session,
	}, nil
}

// Retract removes a voter's vote. Retracting without having voted fails
// with ErrNotVoted.
func (v *Vote) Retract(ctx context.Context, voterID string) (*RetractVoteOutput, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrVoteClosed
	}

	if _, ok := v.votes[voterID]; !ok {
		return nil, ErrNotVoted
	}

	delete(v.votes, voterID)
	delete(v.names, voterID)
	for i, id := range v.order {
		if id == voterID {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}

	return &RetractVoteOutput{
		Count: len(v.votes),
	}, nil
}

// Tally returns the current vote count
func (v *Vote) Tally() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.votes)
}

// VoterNames returns display names in the order votes were cast
func (v *Vote) VoterNames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	names := make([]string, 0, len(v.order))
	for _, id := range v.order {
		names = append(names, v.names[id])
	}

	return names
}

// Closed reports whether the vote has reached its goal
func (v *Vote) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.closed
}
