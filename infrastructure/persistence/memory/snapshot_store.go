// Package memory holds the in-process snapshot store used in development
// and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Kian-Chen/DSADesign/domain/social"
)

// SnapshotStore keeps the last saved snapshot in memory
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *social.Snapshot
	saves    int
}

// NewSnapshotStore creates an empty store. initial may be nil.
func NewSnapshotStore(initial *social.Snapshot) *SnapshotStore {
	s := &SnapshotStore{}
	if initial != nil {
		c := clone(*initial)
		s.snapshot = &c
	}
	return s
}

// Save replaces the stored snapshot
func (s *SnapshotStore) Save(ctx context.Context, snapshot social.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := clone(snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &c
	s.saves++
	return nil
}

// Load returns a copy of the stored snapshot, or nil when nothing was saved
func (s *SnapshotStore) Load(ctx context.Context) (*social.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, nil
	}
	c := clone(*s.snapshot)
	return &c, nil
}

// Saves reports how many times Save succeeded
func (s *SnapshotStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func clone(s social.Snapshot) social.Snapshot {
	out := social.Snapshot{Friendships: slices.Clone(s.Friendships)}
	if s.Users != nil {
		out.Users = make([]social.User, 0, len(s.Users))
		for _, u := range s.Users {
			out.Users = append(out.Users, u.Clone())
		}
	}
	if s.Groups != nil {
		out.Groups = make(map[string][]string, len(s.Groups))
		for id, roster := range s.Groups {
			out.Groups[id] = slices.Clone(roster)
		}
	}
	return out
}
