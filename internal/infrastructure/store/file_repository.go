package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sicknote-hub/internal/domain"
)

// sessionRecord is the persisted shape: three scalar entries under fixed
// keys. Pointers distinguish "absent" from zero values so a partial
// record can be detected and rejected.
type sessionRecord struct {
	Token  *string `json:"token,omitempty"`
	Role   *string `json:"role,omitempty"`
	UserID *int64  `json:"user_id,omitempty"`
}

// FileRepository persists the session record as a single JSON file,
// written atomically via rename. Implements domain.SessionRecordRepository.
type FileRepository struct {
	path string
}

var _ domain.SessionRecordRepository = (*FileRepository)(nil)

// NewFileRepository creates a repository rooted at path, creating the
// parent directory with owner-only permissions.
func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: create session directory: %w", domain.ErrSessionStorage, err)
	}
	return &FileRepository{path: path}, nil
}

// DefaultPath returns the session file location under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolve home directory: %w", domain.ErrSessionStorage, err)
	}
	return filepath.Join(home, ".sicknote", "session.json"), nil
}

// Save writes all identity fields as one record. A reader never
// observes fields from two different saves interleaved.
func (r *FileRepository) Save(identity domain.Identity) error {
	if !identity.Valid() {
		return fmt.Errorf("%w: refusing to persist partial identity", domain.ErrPartialRecord)
	}

	role := string(identity.Role)
	record := sessionRecord{
		Token:  &identity.Token,
		Role:   &role,
		UserID: &identity.UserID,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal session record: %w", domain.ErrSessionStorage, err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: write session record: %w", domain.ErrSessionStorage, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("%w: commit session record: %w", domain.ErrSessionStorage, err)
	}
	return nil
}

// Load reconstructs the Identity from the persisted record. A record
// missing any of the three fields resolves to ErrPartialRecord, never to
// a partially valid identity.
func (r *FileRepository) Load() (*domain.Identity, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("%w: read session record: %w", domain.ErrSessionStorage, err)
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: decode session record: %w", domain.ErrPartialRecord, err)
	}

	if record.Token == nil || record.Role == nil || record.UserID == nil {
		return nil, domain.ErrPartialRecord
	}

	role, err := domain.ParseRole(*record.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: stored role invalid", domain.ErrPartialRecord)
	}

	identity := domain.Identity{
		Token:  *record.Token,
		Role:   role,
		UserID: *record.UserID,
	}
	if !identity.Valid() {
		return nil, domain.ErrPartialRecord
	}
	return &identity, nil
}

// Delete removes the persisted record. Missing records are not an error.
func (r *FileRepository) Delete() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: delete session record: %w", domain.ErrSessionStorage, err)
	}
	return nil
}
