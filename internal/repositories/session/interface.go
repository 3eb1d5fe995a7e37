package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/sfcrp/sfcrp-bot/internal/repositories/session Repository

import (
	"context"

	"github.com/sfcrp/sfcrp-bot/internal/models"
)

// Repository defines the interface for session data persistence. One
// implementation owns exactly one document; callers must serialize their
// load-mutate-save sequences.
type Repository interface {
	// Load reads the session document. A missing or unparsable file yields
	// an empty document, never an error: the store prefers availability
	// over surfacing corruption, and self-heals on the next Save.
	Load(ctx context.Context) (*models.SessionDocument, error)

	// Save overwrites the full session document
	Save(ctx context.Context, doc *models.SessionDocument) error
}
