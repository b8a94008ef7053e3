package browser

import (
	"os"
	"path/filepath"
)

// StorageStateStore resolves and persists the on-disk cookie/storage
// snapshot for a session. The file content is an opaque blob written by
// the engine; the store only controls where it lives and who can read
// it. Storage state carries login credentials, so every write clamps
// the file to owner read/write.
type StorageStateStore struct {
	path string
}

// NewStorageStateStore creates a store for the resolved path. An empty
// path disables persistence.
func NewStorageStateStore(path string) *StorageStateStore {
	return &StorageStateStore{path: path}
}

// Path returns the resolved storage state path, empty when persistence
// is disabled.
func (s *StorageStateStore) Path() string {
	return s.path
}

// Configured reports whether a storage state path is set.
func (s *StorageStateStore) Configured() bool {
	return s.path != ""
}

// Exists reports whether a storage state file is present on disk.
// A missing file means "start clean", never an error.
func (s *StorageStateStore) Exists() bool {
	if s.path == "" {
		return false
	}
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Save serializes the context's storage state to the configured path,
// creating parent directories as needed and restricting permissions to
// owner read/write.
func (s *StorageStateStore) Save(ctx EngineContext) (string, error) {
	if s.path == "" {
		return "", newError(KindStorage, "no storage state path configured")
	}

	abs, err := filepath.Abs(s.path)
	if err != nil {
		return "", wrapError(KindStorage, err, "failed to resolve storage state path")
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0750); err != nil {
		return "", wrapError(KindStorage, err, "failed to create storage state directory")
	}
	if err := ctx.SaveStorageState(abs); err != nil {
		return "", wrapError(KindStorage, err, "failed to save storage state")
	}
	if err := os.Chmod(abs, 0600); err != nil {
		return "", wrapError(KindStorage, err, "failed to restrict storage state permissions")
	}
	return abs, nil
}
