package rplog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sfcrp/sfcrp-bot/internal/models"
)

// Config holds configuration for the JSON file RP log repository
type Config struct {
	// Path to the RP log document on disk
	Path string
}

// jsonRepository implements the Repository interface on a flat JSON file
type jsonRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSON creates a new JSON-file-backed RP log repository
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

// Load reads all RP log entries from disk
func (r *jsonRepository) Load(ctx context.Context) ([]*models.RPLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return []*models.RPLogEntry{}, nil
	}

	var entries []*models.RPLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []*models.RPLogEntry{}, nil
	}

	if entries == nil {
		entries = []*models.RPLogEntry{}
	}

	return entries, nil
}

// Save writes the full entry list to disk
func (r *jsonRepository) Save(ctx context.Context, entries []*models.RPLogEntry) error {
	if entries == nil {
		return errors.New("entries cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal RP logs: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write RP logs: %w", err)
	}

	return nil
}
