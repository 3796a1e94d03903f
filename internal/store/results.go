package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/pipeline"

	"github.com/gofrs/flock"
)

// DefaultResultsName is the timestamped name used when no path is given.
func DefaultResultsName(now time.Time) string {
	return "assets_" + now.Format("20060102_150405") + ".json"
}

func lockFor(path string) *flock.Flock {
	return flock.New(path + ".lock")
}

// SaveResults writes rs as an indented UTF-8 JSON array. The write goes to a
// temp file renamed into place while holding an exclusive lock.
func SaveResults(path string, rs []domain.Resource) error {
	if rs == nil {
		rs = []domain.Resource{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := lockFor(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadResults reads a saved result list verbatim. A missing file, malformed
// JSON, or entries without title/download_url are input errors.
func LoadResults(path string) ([]domain.Resource, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pipeline.Wrap(pipeline.ErrInput, "store", "load", path, err)
		}
		return nil, err
	}

	lock := lockFor(path)
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rs []domain.Resource
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrInput, "store", "load", "malformed result list", err)
	}
	for i, r := range rs {
		if r.Title == "" || r.DownloadURL == "" {
			return nil, pipeline.Wrap(pipeline.ErrInput, "store", "load",
				fmt.Sprintf("entry %d missing title or download_url", i), nil)
		}
	}
	return rs, nil
}
