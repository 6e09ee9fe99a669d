// Package storage persists uploaded files to the local uploads directory.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/observability"

	"github.com/google/uuid"
)

// FileStore writes uploaded files into a directory and maps them to the
// public URL prefix they are served from.
type FileStore struct {
	dir       string
	urlPrefix string
}

// NewFileStore creates the uploads directory if needed and returns a store
// serving files under urlPrefix (e.g. "/uploads").
func NewFileStore(dir, urlPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Dir returns the directory files are written to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk under a generated name and returns
// the public URL path for it. The name combines the upload timestamp with a
// random component so two uploads in the same millisecond cannot collide.
func (s *FileStore) Save(file *multipart.FileHeader) (string, error) {
	name := generateFilename(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o600); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	observability.UploadBytes.Add(float64(len(content)))
	return s.urlPrefix + "/" + name, nil
}

// generateFilename derives a stored name from the original filename's
// extension. Only the extension of the client-supplied name is kept, so path
// separators or other hostile characters in it never reach the filesystem.
func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}
