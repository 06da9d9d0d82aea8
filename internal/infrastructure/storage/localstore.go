package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"opendesk/internal/application/ticket/usecases"
	"opendesk/internal/shared/id"
	"opendesk/internal/shared/logger"
)

// LocalStore writes attachment payloads under a per-ticket directory on
// local disk. Stored names are randomized so uploads cannot collide or
// traverse outside the base directory.
type LocalStore struct {
	baseDir string
	logger  logger.Interface
}

func NewLocalStore(baseDir string, log logger.Interface) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir, logger: log}, nil
}

func (s *LocalStore) Write(ctx context.Context, ticketID uint, files []usecases.UploadFile) ([]usecases.StoredFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	dir := filepath.Join(s.baseDir, fmt.Sprintf("%d", ticketID))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create ticket directory: %w", err)
	}

	stored := make([]usecases.StoredFile, 0, len(files))
	for _, f := range files {
		suffix, err := id.Digits(10)
		if err != nil {
			s.removeAll(stored)
			return nil, fmt.Errorf("failed to generate file name: %w", err)
		}

		name := suffix + "_" + sanitizeFileName(f.Name)
		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, f.Content, 0o640); err != nil {
			s.removeAll(stored)
			return nil, fmt.Errorf("failed to write attachment: %w", err)
		}

		stored = append(stored, usecases.StoredFile{
			OriginalName: f.Name,
			StoredPath:   path,
		})
	}

	return stored, nil
}

func (s *LocalStore) Remove(ctx context.Context, files []usecases.StoredFile) error {
	s.removeAll(files)
	return nil
}

func (s *LocalStore) removeAll(files []usecases.StoredFile) {
	for _, f := range files {
		if err := os.Remove(f.StoredPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warnw("failed to remove stored attachment",
				"path", f.StoredPath, "error", err)
		}
	}
}

// sanitizeFileName strips path separators and parent references from a
// client-supplied name.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "attachment"
	}
	return name
}
