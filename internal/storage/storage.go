package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StoredFile describes an uploaded blob. Key identifies the blob at the
// provider; URL is what clients fetch.
type StoredFile struct {
	Key string
	URL string
}

// Uploader is the narrow interface the grievance workflow uses for
// attachment blobs. Implementations keep files in per-organization folders.
type Uploader interface {
	Upload(orgID uuid.UUID, filename string, content io.Reader) (*StoredFile, error)
	Delete(key string) error
}

// LocalStore keeps blobs on the local filesystem under a base directory.
type LocalStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates a filesystem-backed uploader
func NewLocalStore(baseDir, baseURL string) *LocalStore {
	return &LocalStore{baseDir: baseDir, baseURL: baseURL}
}

// Upload writes the content under <baseDir>/<orgID>/<uuid>-<filename>
func (s *LocalStore) Upload(orgID uuid.UUID, filename string, content io.Reader) (*StoredFile, error) {
	dir := filepath.Join(s.baseDir, orgID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	// Only the base name of the client-supplied filename is kept
	key := filepath.Join(orgID.String(), uuid.NewString()+"-"+filepath.Base(filename))
	path := filepath.Join(s.baseDir, key)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &StoredFile{
		Key: key,
		URL: s.baseURL + "/" + filepath.ToSlash(key),
	}, nil
}

// Delete removes a stored blob. Used for best-effort cleanup when a
// grievance creation rolls back after some uploads succeeded.
func (s *LocalStore) Delete(key string) error {
	return os.Remove(filepath.Join(s.baseDir, key))
}
