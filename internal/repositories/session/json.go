package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sfcrp/sfcrp-bot/internal/models"
)

// Config holds configuration for the JSON file session repository
type Config struct {
	// Path to the session document on disk
	Path string
}

// jsonRepository implements the Repository interface on a flat JSON file
type jsonRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSON creates a new JSON-file-backed session repository
func NewJSON(cfg *Config) (*jsonRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Path == "" {
		return nil, errors.New("path cannot be empty")
	}

	return &jsonRepository{
		path: cfg.Path,
	}, nil
}

// Load reads the session document from disk
func (r *jsonRepository) Load(ctx context.Context) (*models.SessionDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := &models.SessionDocument{
		Sessions: []*models.Session{},
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		// Missing file is the empty state
		return doc, nil
	}

	if err := json.Unmarshal(data, doc); err != nil {
		// Corrupt state is treated as empty; the next Save rewrites it
		return &models.SessionDocument{Sessions: []*models.Session{}}, nil
	}

	if doc.Sessions == nil {
		doc.Sessions = []*models.Session{}
	}

	return doc, nil
}

// Save writes the full session document to disk
func (r *jsonRepository) Save(ctx context.Context, doc *models.SessionDocument) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session document: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session document: %w", err)
	}

	return nil
}
