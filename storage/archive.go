// Package storage archives JSON snapshots of extractions and analyses on the
// local filesystem or in S3-compatible object storage.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/teedgg/linkintel/models"
	"github.com/teedgg/linkintel/slug"
)

const (
	extractionsDir = "extractions"
	analysesDir    = "analyses"
	jsonType       = "application/json"

	maxKeyAttempts = 100
)

// Archive writes snapshots to a Backend under dated keys:
// extractions/YYYY/MM/{slug}.json and analyses/YYYY/MM/{id}.json
type Archive struct {
	backend Backend
	now     func() time.Time
}

// NewArchive creates an archive on top of backend
func NewArchive(backend Backend) *Archive {
	return &Archive{backend: backend, now: time.Now}
}

// SaveExtraction stores an extraction result and returns its key.
// Colliding names get a numeric suffix so earlier snapshots are kept.
func (a *Archive) SaveExtraction(ctx context.Context, result models.ExtractionResult, name string) (string, error) {
	name = slug.GenerateWithFallback(name, slug.FromProductURL(result.URL))
	if name == "" {
		name = "extraction"
	}

	key, err := a.uniqueKey(ctx, extractionsDir, name)
	if err != nil {
		return "", err
	}
	if err := a.putJSON(ctx, key, result); err != nil {
		return "", err
	}
	return key, nil
}

// SaveAnalysis stores an analysis result under its id and returns the key
func (a *Archive) SaveAnalysis(ctx context.Context, result models.AnalysisResult) (string, error) {
	if result.ID == "" {
		return "", fmt.Errorf("analysis has no id")
	}
	key := a.datedKey(analysesDir, result.ID)
	if err := a.putJSON(ctx, key, result); err != nil {
		return "", err
	}
	return key, nil
}

// LoadExtraction reads an extraction snapshot
func (a *Archive) LoadExtraction(ctx context.Context, key string) (*models.ExtractionResult, error) {
	var result models.ExtractionResult
	if err := a.getJSON(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadAnalysis reads an analysis snapshot
func (a *Archive) LoadAnalysis(ctx context.Context, key string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := a.getJSON(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a snapshot
func (a *Archive) Delete(ctx context.Context, key string) error {
	return a.backend.Delete(ctx, key)
}

func (a *Archive) datedKey(dir, name string) string {
	now := a.now()
	return path.Join(dir, fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())), name+".json")
}

func (a *Archive) uniqueKey(ctx context.Context, dir, name string) (string, error) {
	for counter := 0; counter < maxKeyAttempts; counter++ {
		key := a.datedKey(dir, slug.MakeUnique(name, counter))
		exists, err := a.backend.Exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check key %s: %w", key, err)
		}
		if !exists {
			return key, nil
		}
	}
	return "", fmt.Errorf("no free key for %s after %d attempts", name, maxKeyAttempts)
}

func (a *Archive) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return a.backend.Put(ctx, key, data, jsonType)
}

func (a *Archive) getJSON(ctx context.Context, key string, v any) error {
	data, err := a.backend.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
	}
	return nil
}
