package rplog

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/sfcrp/sfcrp-bot/internal/repositories/rplog Repository

import (
	"context"

	"github.com/sfcrp/sfcrp-bot/internal/models"
)

// Repository defines the interface for RP log persistence. The document is
// a flat array of entries; callers must serialize their load-mutate-save
// sequences.
type Repository interface {
	// Load reads all RP log entries. A missing or unparsable file yields an
	// empty list, never an error.
	Load(ctx context.Context) ([]*models.RPLogEntry, error)

	// Save overwrites the full entry list
	Save(ctx context.Context, entries []*models.RPLogEntry) error
}
