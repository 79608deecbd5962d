package ports

import (
	"context"
	"time"

	"github.com/Kian-Chen/DSADesign/domain/social"
)

// SnapshotStore persists the social graph as one opaque snapshot.
// This is a port in hexagonal architecture - the domain only sees Save.
type SnapshotStore interface {
	social.Saver

	// Load returns the stored snapshot, or nil when nothing was saved yet
	Load(ctx context.Context) (*social.Snapshot, error)
}

// Metrics records application level measurements
type Metrics interface {
	// ListOperation counts an edit or query on a list session
	ListOperation(variant, operation string)

	// FriendshipChanged counts an applied friend add or remove
	FriendshipChanged(operation string)

	// RecommendationServed records how long a ranking took
	RecommendationServed(duration time.Duration)

	// SnapshotSaved counts snapshot saves by outcome ("ok" or "error")
	SnapshotSaved(outcome string)
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

func (NoopMetrics) ListOperation(string, string)       {}
func (NoopMetrics) FriendshipChanged(string)           {}
func (NoopMetrics) RecommendationServed(time.Duration) {}
func (NoopMetrics) SnapshotSaved(string)               {}
