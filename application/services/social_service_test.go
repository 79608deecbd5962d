package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kian-Chen/DSADesign/domain/social"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, s social.Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSnapshotStore) Load(ctx context.Context) (*social.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Snapshot), args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ListOperation(variant, operation string) { m.Called(variant, operation) }
func (m *MockMetrics) FriendshipChanged(operation string)      { m.Called(operation) }
func (m *MockMetrics) RecommendationServed(d time.Duration)    { m.Called(d) }
func (m *MockMetrics) SnapshotSaved(outcome string)            { m.Called(outcome) }

func newSocialService(t *testing.T, store *MockSnapshotStore, metrics *MockMetrics) *SocialService {
	t.Helper()
	seed, err := social.LoadSeed()
	require.NoError(t, err)

	var saver social.Saver
	if store != nil {
		saver = store
	}
	graph := social.NewGraph(seed, saver)

	svc := NewSocialService(graph, nil, 0, nil, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
	if store != nil {
		svc.store = store
	}
	if metrics != nil {
		svc.metrics = metrics
	}
	return svc
}

func userIDs(users []social.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestSocialService_Profile(t *testing.T) {
	svc := newSocialService(t, nil, nil)

	profile, err := svc.Profile(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.User.Name)
	assert.Equal(t, []string{"2", "3", "4"}, userIDs(profile.Friends))

	_, err = svc.Profile(context.Background(), "404")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSocialService_ProfileIsCopy(t *testing.T) {
	svc := newSocialService(t, nil, nil)

	profile, err := svc.Profile(context.Background(), "1")
	require.NoError(t, err)
	profile.User.Friends[0] = "mutated"

	again, err := svc.Profile(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "2", again.User.Friends[0])
}

func TestSocialService_Load(t *testing.T) {
	t.Run("restores stored snapshot once", func(t *testing.T) {
		store := new(MockSnapshotStore)
		stored := &social.Snapshot{
			Friendships: []social.Friendship{{UserID: "1", FriendID: "9"}},
		}
		store.On("Load", mock.Anything).Return(stored, nil).Once()

		svc := newSocialService(t, store, nil)
		require.NoError(t, svc.Load(context.Background()))
		require.NoError(t, svc.Load(context.Background()))

		friends, err := svc.Friends(context.Background(), "9")
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, userIDs(friends))
		store.AssertExpectations(t)
	})

	t.Run("nothing stored keeps seed", func(t *testing.T) {
		store := new(MockSnapshotStore)
		store.On("Load", mock.Anything).Return(nil, nil)

		svc := newSocialService(t, store, nil)
		require.NoError(t, svc.Load(context.Background()))
		assert.Len(t, svc.Users(context.Background()), 9)
	})

	t.Run("load failure keeps seed", func(t *testing.T) {
		store := new(MockSnapshotStore)
		store.On("Load", mock.Anything).Return(nil, errors.New("corrupt"))

		svc := newSocialService(t, store, nil)
		assert.Error(t, svc.Load(context.Background()))
		assert.Len(t, svc.Users(context.Background()), 9)
	})
}

func TestSocialService_AddFriend(t *testing.T) {
	store := new(MockSnapshotStore)
	metrics := new(MockMetrics)
	store.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	metrics.On("FriendshipChanged", "add").Once()
	metrics.On("SnapshotSaved", "ok").Once()

	svc := newSocialService(t, store, metrics)
	require.NoError(t, svc.AddFriend(context.Background(), "1", "9"))

	friends, err := svc.Friends(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, userIDs(friends))
	store.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestSocialService_AddFriend_Rejected(t *testing.T) {
	store := new(MockSnapshotStore)
	svc := newSocialService(t, store, nil)

	err := svc.AddFriend(context.Background(), "1", "1")
	assert.True(t, pkgerrors.IsValidation(err))

	err = svc.AddFriend(context.Background(), "1", "404")
	assert.True(t, pkgerrors.IsNotFound(err))

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSocialService_SaveFailureIsNotReturned(t *testing.T) {
	store := new(MockSnapshotStore)
	metrics := new(MockMetrics)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))
	metrics.On("FriendshipChanged", "remove").Once()
	metrics.On("SnapshotSaved", "error").Once()

	svc := newSocialService(t, store, metrics)
	require.NoError(t, svc.RemoveFriend(context.Background(), "1", "2"))

	friends, err := svc.Friends(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, userIDs(friends))
	metrics.AssertExpectations(t)
}

func TestSocialService_Recommendations(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("RecommendationServed", mock.AnythingOfType("time.Duration"))

	svc := newSocialService(t, nil, metrics)

	recs, err := svc.Recommendations(context.Background(), "1", 0)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, "6", recs[0].User.ID)
	assert.Equal(t, 2, recs[0].CommonFriendsCount)

	recs, err = svc.Recommendations(context.Background(), "1", 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = svc.Recommendations(context.Background(), "9", 0)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	_, err = svc.Recommendations(context.Background(), "404", 0)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSocialService_GroupMembers(t *testing.T) {
	svc := newSocialService(t, nil, nil)

	assert.Equal(t, []string{"1", "3", "7"}, userIDs(svc.GroupMembers(context.Background(), "hiking")))
	assert.Empty(t, svc.GroupMembers(context.Background(), "knitting"))
	assert.Equal(t, []string{"chess", "hiking", "photography", "reading"}, svc.Groups(context.Background()))
}
