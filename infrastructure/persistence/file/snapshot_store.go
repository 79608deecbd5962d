// Package file persists the social graph snapshot as a JSON document on
// local disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Kian-Chen/DSADesign/domain/social"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"go.uber.org/zap"
)

// SnapshotStore writes the snapshot to a single file. Writes go to a
// temporary file first and are renamed into place.
type SnapshotStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewSnapshotStore creates a store backed by path
func NewSnapshotStore(path string, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{path: path, logger: logger}
}

// Save serialises snapshot and replaces the file
func (s *SnapshotStore) Save(ctx context.Context, snapshot social.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return pkgerrors.NewInternalError("failed to encode snapshot").WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return pkgerrors.NewDatabaseError("mkdir", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return pkgerrors.NewDatabaseError("create", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pkgerrors.NewDatabaseError("write", err)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.NewDatabaseError("close", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return pkgerrors.NewDatabaseError("rename", err)
	}

	s.logger.Debug("Snapshot written",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)),
		zap.Int("users", len(snapshot.Users)),
	)
	return nil
}

// Load reads the file. A missing file means nothing was saved yet.
func (s *SnapshotStore) Load(ctx context.Context) (*social.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("read", err)
	}

	var snapshot social.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("corrupt snapshot file %s", s.path)).WithCause(err)
	}
	return &snapshot, nil
}
