package social

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSaver struct {
	mock.Mock
}

func (m *mockSaver) Save(ctx context.Context, s Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func newSeedGraph(t *testing.T, saver Saver) *Graph {
	t.Helper()
	seed, err := LoadSeed()
	require.NoError(t, err)
	return NewGraph(seed, saver)
}

func chainGraph() *Graph {
	return NewGraph(Snapshot{
		Users: []User{
			{ID: "u1", Name: "One", Friends: []string{"u2"}},
			{ID: "u2", Name: "Two", Friends: []string{"u1", "u3"}},
			{ID: "u3", Name: "Three", Friends: []string{"u2"}},
		},
	}, nil)
}

func ids(users []*User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func assertMutual(t *testing.T, g *Graph) {
	t.Helper()
	for _, a := range g.Users() {
		for _, b := range g.Users() {
			assert.Equal(t, a.IsFriend(b.ID), b.IsFriend(a.ID), "%s/%s", a.ID, b.ID)
		}
		assert.False(t, a.IsFriend(a.ID), a.ID)
	}
}

func TestLoadSeed(t *testing.T) {
	g := newSeedGraph(t, nil)

	assert.Len(t, g.Users(), 9)
	assert.Equal(t, []string{"chess", "hiking", "photography", "reading"}, g.GroupIDs())
	assertMutual(t, g)

	alice, ok := g.UserByID("1")
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, []string{"Tsinghua University"}, alice.Schools)
}

func TestNewGraph_RepairsFriendSets(t *testing.T) {
	g := NewGraph(Snapshot{
		Users: []User{
			{ID: "a", Friends: []string{"b", "b", "a", "ghost"}},
			{ID: "b"},
			{ID: "c"},
		},
		Friendships: []Friendship{{UserID: "c", FriendID: "a"}},
	}, nil)

	a, _ := g.UserByID("a")
	assert.Equal(t, []string{"b", "ghost", "c"}, a.Friends)
	assertMutual(t, g)

	// Stale ids stay in the set but never resolve.
	assert.Equal(t, []string{"b", "c"}, ids(g.Friends("a")))
	assert.Equal(t, []Friendship{{UserID: "a", FriendID: "b"}, {UserID: "a", FriendID: "c"}}, g.Snapshot().Friendships)
}

func TestUserByID(t *testing.T) {
	g := chainGraph()

	u, ok := g.UserByID("u2")
	require.True(t, ok)
	assert.Equal(t, "Two", u.Name)

	u, ok = g.UserByID("nobody")
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestFriends(t *testing.T) {
	g := chainGraph()

	assert.Equal(t, []string{"u1", "u3"}, ids(g.Friends("u2")))
	assert.Empty(t, g.Friends("nobody"))
}

func TestGroupMembers(t *testing.T) {
	g := newSeedGraph(t, nil)

	assert.Equal(t, []string{"1", "3", "7"}, ids(g.GroupMembers("hiking")))
	assert.Empty(t, g.GroupMembers("knitting"))
	assert.NotNil(t, g.GroupMembers("knitting"))
}

func TestAddFriend(t *testing.T) {
	ctx := context.Background()
	saver := new(mockSaver)
	saver.On("Save", ctx, mock.AnythingOfType("social.Snapshot")).Return(nil)
	g := chainGraph()
	g.saver = saver

	ok, err := g.AddFriend(ctx, "u1", "u3")
	require.NoError(t, err)
	require.True(t, ok)

	u1, _ := g.UserByID("u1")
	u3, _ := g.UserByID("u3")
	assert.Equal(t, []string{"u2", "u3"}, u1.Friends)
	assert.Equal(t, []string{"u2", "u1"}, u3.Friends)

	// A second call changes nothing but still counts as a successful edit.
	ok, err = g.AddFriend(ctx, "u1", "u3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"u2", "u3"}, u1.Friends)
	assert.Equal(t, []string{"u2", "u1"}, u3.Friends)

	saver.AssertNumberOfCalls(t, "Save", 2)
}

func TestAddFriend_SavesCurrentState(t *testing.T) {
	ctx := context.Background()
	saver := new(mockSaver)
	saver.On("Save", ctx, mock.MatchedBy(func(s Snapshot) bool {
		return len(s.Friendships) == 3 && s.Users[0].IsFriend("u3")
	})).Return(nil).Once()
	g := chainGraph()
	g.saver = saver

	_, err := g.AddFriend(ctx, "u1", "u3")
	require.NoError(t, err)
	saver.AssertExpectations(t)
}

func TestAddFriend_InvalidReference(t *testing.T) {
	ctx := context.Background()
	saver := new(mockSaver)
	g := chainGraph()
	g.saver = saver
	before := g.Snapshot()

	tests := []struct{ a, b string }{
		{"u1", "nobody"},
		{"nobody", "u1"},
		{"ghost", "nobody"},
		{"u1", "u1"},
	}
	for _, tt := range tests {
		ok, err := g.AddFriend(ctx, tt.a, tt.b)
		assert.NoError(t, err)
		assert.False(t, ok)

		ok, err = g.RemoveFriend(ctx, tt.a, tt.b)
		assert.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Equal(t, before, g.Snapshot())
	saver.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRemoveFriend(t *testing.T) {
	ctx := context.Background()
	saver := new(mockSaver)
	saver.On("Save", ctx, mock.Anything).Return(nil)
	g := chainGraph()
	g.saver = saver

	ok, err := g.RemoveFriend(ctx, "u2", "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"u3"}, ids(g.Friends("u2")))
	assert.Empty(t, g.Friends("u1"))

	// Removing non-friends leaves the sets untouched.
	before := g.Snapshot()
	ok, err = g.RemoveFriend(ctx, "u1", "u3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, before.Users, g.Snapshot().Users)

	saver.AssertNumberOfCalls(t, "Save", 2)
}

func TestFriendship_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	saveErr := errors.New("storage offline")
	saver := new(mockSaver)
	saver.On("Save", ctx, mock.Anything).Return(saveErr)
	g := chainGraph()
	g.saver = saver

	ok, err := g.AddFriend(ctx, "u1", "u3")
	assert.True(t, ok)
	assert.ErrorIs(t, err, saveErr)

	u1, _ := g.UserByID("u1")
	assert.True(t, u1.IsFriend("u3"))
	assertMutual(t, g)
}

func TestFriendship_SymmetryUnderRandomEdits(t *testing.T) {
	ctx := context.Background()
	g := newSeedGraph(t, nil)
	users := ids(g.Users())
	rng := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 500; i++ {
		a := users[rng.IntN(len(users))]
		b := users[rng.IntN(len(users))]
		if rng.IntN(2) == 0 {
			_, _ = g.AddFriend(ctx, a, b)
		} else {
			_, _ = g.RemoveFriend(ctx, a, b)
		}
	}
	assertMutual(t, g)
}

func TestRestore(t *testing.T) {
	g := newSeedGraph(t, nil)

	g.Restore(nil)
	assert.Len(t, g.Users(), 9)

	// Only users stored: groups survive from the seed.
	g.Restore(&Snapshot{Users: []User{
		{ID: "x", Name: "Xena", Friends: []string{"y"}},
		{ID: "y", Name: "Yuri"},
	}})
	assert.Equal(t, []string{"x", "y"}, ids(g.Users()))
	assert.Equal(t, []string{"chess", "hiking", "photography", "reading"}, g.GroupIDs())
	assert.Equal(t, []string{"x"}, ids(g.Friends("y")))
	assert.Empty(t, g.GroupMembers("hiking"))

	g.Restore(&Snapshot{Groups: map[string][]string{"pair": {"x", "y"}}})
	assert.Equal(t, []string{"pair"}, g.GroupIDs())
	assert.Equal(t, []string{"x", "y"}, ids(g.GroupMembers("pair")))
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	g := chainGraph()
	s := g.Snapshot()
	s.Users[0].Friends[0] = "mutated"

	u1, _ := g.UserByID("u1")
	assert.Equal(t, []string{"u2"}, u1.Friends)
}

func TestRestore_RemovedFriendshipStaysRemoved(t *testing.T) {
	seed, err := LoadSeed()
	require.NoError(t, err)

	tests := []struct {
		name        string
		friendships []Friendship
	}{
		{name: "stale friendship list", friendships: seed.Friendships},
		{name: "no friendship list", friendships: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph(seed, nil)
			removed, err := g.RemoveFriend(context.Background(), "1", "2")
			require.NoError(t, err)
			require.True(t, removed)

			stored := g.Snapshot()
			stored.Friendships = tt.friendships

			restored := NewGraph(seed, nil)
			restored.Restore(&stored)

			assert.Equal(t, []string{"3", "4"}, ids(restored.Friends("1")))
			assert.NotContains(t, ids(restored.Friends("2")), "1")
			assert.NotContains(t, restored.Snapshot().Friendships, Friendship{UserID: "1", FriendID: "2"})
			assertMutual(t, restored)
		})
	}
}

func TestRestore_FriendshipsOnlyAreLinked(t *testing.T) {
	g := newSeedGraph(t, nil)

	g.Restore(&Snapshot{Friendships: []Friendship{{UserID: "1", FriendID: "9"}}})

	assert.Contains(t, ids(g.Friends("9")), "1")
	assert.Contains(t, ids(g.Friends("1")), "2", "current friend sets are kept")
}
