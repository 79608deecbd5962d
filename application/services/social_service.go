package services

import (
	"context"
	"sync"
	"time"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/domain/social"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Profile is a user together with their resolved friends
type Profile struct {
	User    social.User   `json:"user"`
	Friends []social.User `json:"friends"`
}

// SocialService serialises access to the social graph and adds logging,
// metrics and tracing around it. Persistence runs inside the graph's own
// friendship mutators; save failures are logged and never rolled back.
type SocialService struct {
	mu                sync.Mutex
	graph             *social.Graph
	store             ports.SnapshotStore
	defaultMaxResults int
	loadOnce          sync.Once
	metrics           ports.Metrics
	tracer            trace.Tracer
	logger            *zap.Logger
}

// NewSocialService creates a new social service. store may be nil when
// nothing should be restored at startup.
func NewSocialService(
	graph *social.Graph,
	store ports.SnapshotStore,
	defaultMaxResults int,
	metrics ports.Metrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *SocialService {
	if defaultMaxResults <= 0 {
		defaultMaxResults = social.DefaultRecommendations
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &SocialService{
		graph:             graph,
		store:             store,
		defaultMaxResults: defaultMaxResults,
		metrics:           metrics,
		tracer:            tracer,
		logger:            logger,
	}
}

// Load restores the stored snapshot into the graph. Only the first call
// reads the store; a failed read keeps the seed data.
func (s *SocialService) Load(ctx context.Context) error {
	var loadErr error
	s.loadOnce.Do(func() {
		if s.store == nil {
			return
		}
		ctx, span := s.tracer.Start(ctx, "social.Load")
		defer span.End()

		snapshot, err := s.store.Load(ctx)
		if err != nil {
			span.RecordError(err)
			s.logger.Warn("Failed to load social graph snapshot, using seed data", zap.Error(err))
			loadErr = err
			return
		}
		if snapshot == nil {
			s.logger.Info("No stored social graph snapshot, using seed data")
			return
		}

		s.mu.Lock()
		s.graph.Restore(snapshot)
		count := len(s.graph.Users())
		s.mu.Unlock()

		span.SetAttributes(attribute.Int("users", count))
		s.logger.Info("Social graph restored from snapshot", zap.Int("users", count))
	})
	return loadErr
}

// Users lists every user in enumeration order
func (s *SocialService) Users(ctx context.Context) []social.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUsers(s.graph.Users())
}

// Profile returns a user and their friends
func (s *SocialService) Profile(ctx context.Context, userID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.graph.UserByID(userID)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return &Profile{
		User:    u.Clone(),
		Friends: copyUsers(s.graph.Friends(userID)),
	}, nil
}

// Friends returns a user's resolved friends
func (s *SocialService) Friends(ctx context.Context, userID string) ([]social.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graph.UserByID(userID); !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return copyUsers(s.graph.Friends(userID)), nil
}

// GroupMembers resolves a group roster. Unknown groups are empty.
func (s *SocialService) GroupMembers(ctx context.Context, groupID string) []social.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUsers(s.graph.GroupMembers(groupID))
}

// Groups lists the known group ids
func (s *SocialService) Groups(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.GroupIDs()
}

// AddFriend befriends two users
func (s *SocialService) AddFriend(ctx context.Context, userID, friendID string) error {
	return s.changeFriendship(ctx, "add", userID, friendID, s.graph.AddFriend)
}

// RemoveFriend ends a friendship
func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.changeFriendship(ctx, "remove", userID, friendID, s.graph.RemoveFriend)
}

func (s *SocialService) changeFriendship(
	ctx context.Context,
	operation, userID, friendID string,
	mutate func(context.Context, string, string) (bool, error),
) error {
	ctx, span := s.tracer.Start(ctx, "social.Friendship",
		trace.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("user.id", userID),
			attribute.String("friend.id", friendID),
		),
	)
	defer span.End()

	s.mu.Lock()
	applied, saveErr := mutate(ctx, userID, friendID)
	s.mu.Unlock()

	if !applied {
		if userID == friendID {
			return pkgerrors.NewValidationError("a user cannot befriend themselves")
		}
		return pkgerrors.NewNotFoundError("user")
	}

	s.metrics.FriendshipChanged(operation)
	if saveErr != nil {
		span.RecordError(saveErr)
		s.metrics.SnapshotSaved("error")
		s.logger.Error("Failed to persist social graph snapshot",
			zap.String("operation", operation),
			zap.String("userID", userID),
			zap.String("friendID", friendID),
			zap.Error(saveErr),
		)
	} else {
		s.metrics.SnapshotSaved("ok")
	}

	s.logger.Info("Friendship changed",
		zap.String("operation", operation),
		zap.String("userID", userID),
		zap.String("friendID", friendID),
	)
	return nil
}

// RecommendationView is a recommendation with a copied user record
type RecommendationView struct {
	User               social.User `json:"user"`
	CommonFriendsCount int         `json:"commonFriendsCount"`
}

// Recommendations ranks friend candidates for a user. maxCount <= 0 uses
// the configured default.
func (s *SocialService) Recommendations(ctx context.Context, userID string, maxCount int) ([]RecommendationView, error) {
	if maxCount <= 0 {
		maxCount = s.defaultMaxResults
	}
	_, span := s.tracer.Start(ctx, "social.Recommendations",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("max", maxCount),
		),
	)
	defer span.End()

	start := time.Now()
	s.mu.Lock()
	if _, ok := s.graph.UserByID(userID); !ok {
		s.mu.Unlock()
		return nil, pkgerrors.NewNotFoundError("user")
	}
	recs := s.graph.Recommendations(userID, maxCount)
	out := make([]RecommendationView, 0, len(recs))
	for _, r := range recs {
		out = append(out, RecommendationView{User: r.User.Clone(), CommonFriendsCount: r.CommonFriendsCount})
	}
	s.mu.Unlock()

	s.metrics.RecommendationServed(time.Since(start))
	span.SetAttributes(attribute.Int("results", len(out)))
	return out, nil
}

// Snapshot returns a copy of the whole graph
func (s *SocialService) Snapshot(ctx context.Context) social.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Snapshot()
}

func copyUsers(users []*social.User) []social.User {
	out := make([]social.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Clone())
	}
	return out
}
