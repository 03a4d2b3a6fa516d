package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"poisurvey/internal/survey"
)

// ContentCacheRepositoryInterface persists the generated variants of one
// respondent so a repeated batch never calls the generation endpoint again.
type ContentCacheRepositoryInterface interface {
	// Load returns ok=false when no cache exists for the user.
	Load(userID string) (map[string]survey.GeneratedContent, bool, error)
	Save(userID string, content map[string]survey.GeneratedContent) error
}

type ContentCacheRepository struct {
	dir string
}

func NewContentCacheRepository(dir string) *ContentCacheRepository {
	return &ContentCacheRepository{dir: dir}
}

func (r *ContentCacheRepository) path(userID string) string {
	return filepath.Join(r.dir, "temp_poi_content_"+userID+".json")
}

func (r *ContentCacheRepository) Load(userID string) (map[string]survey.GeneratedContent, bool, error) {
	raw, err := os.ReadFile(r.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read content cache: %w", err)
	}

	var content map[string]survey.GeneratedContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, false, fmt.Errorf("decode content cache %s: %w", r.path(userID), err)
	}
	if content == nil {
		content = map[string]survey.GeneratedContent{}
	}
	return content, true, nil
}

// Save writes to a temp file in the same directory and renames it over the
// final path, so a reader never observes a half-written cache.
func (r *ContentCacheRepository) Save(userID string, content map[string]survey.GeneratedContent) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	raw, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encode content cache: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, ".poi_content_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, r.path(userID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}
