package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// DefaultPath is used when New is given an empty path.
const DefaultPath = "/var/lib/ioracle/usage"

// CounterStore implements ports.CounterStore as decimal text in a single file.
type CounterStore struct {
	Path string
}

// New creates a CounterStore writing to path.
// If path is empty, it defaults to DefaultPath.
func New(path string) *CounterStore {
	if path == "" {
		path = DefaultPath
	}
	return &CounterStore{Path: path}
}

// Load reads the counter file.
func (s *CounterStore) Load(ctx context.Context) (int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, domain.ErrCounterNotFound
		}
		return 0, fmt.Errorf("failed to read counter file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %q in %s", domain.ErrCounterMalformed, text, s.Path)
	}
	return value, nil
}

// Save persists the counter atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *CounterStore) Save(ctx context.Context, value int) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure counter directory: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // No-op once renamed
	}()

	if _, err := tmpFile.WriteString(strconv.Itoa(value)); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to rename temp file to counter file: %w", err)
	}
	return nil
}
