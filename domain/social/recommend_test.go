package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendations_FriendOfFriend(t *testing.T) {
	g := chainGraph()

	recs := g.Recommendations("u1", 5)
	require.Len(t, recs, 1)
	assert.Equal(t, "u3", recs[0].User.ID)
	assert.Equal(t, 1, recs[0].CommonFriendsCount)
}

func TestRecommendations_Seed(t *testing.T) {
	g := newSeedGraph(t, nil)

	tests := []struct {
		name      string
		userID    string
		maxCount  int
		wantIDs   []string
		wantCount []int
	}{
		{name: "ranked with ties in seed order", userID: "1", maxCount: 5, wantIDs: []string{"6", "5", "7", "8"}, wantCount: []int{2, 1, 1, 1}},
		{name: "truncated", userID: "1", maxCount: 2, wantIDs: []string{"6", "5"}, wantCount: []int{2, 1}},
		{name: "zero max", userID: "1", maxCount: 0, wantIDs: []string{}, wantCount: []int{}},
		{name: "negative max", userID: "1", maxCount: -3, wantIDs: []string{}, wantCount: []int{}},
		{name: "isolated user", userID: "9", maxCount: 5, wantIDs: []string{}, wantCount: []int{}},
		{name: "unknown user", userID: "nobody", maxCount: 5, wantIDs: []string{}, wantCount: []int{}},
		{name: "two shared", userID: "6", maxCount: 5, wantIDs: []string{"1", "7"}, wantCount: []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := g.Recommendations(tt.userID, tt.maxCount)
			require.NotNil(t, recs)

			gotIDs := make([]string, 0, len(recs))
			gotCount := make([]int, 0, len(recs))
			for _, r := range recs {
				gotIDs = append(gotIDs, r.User.ID)
				gotCount = append(gotCount, r.CommonFriendsCount)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
			assert.Equal(t, tt.wantCount, gotCount)
		})
	}
}

// Results are sorted, bounded and never contain the subject or a friend.
func TestRecommendations_Properties(t *testing.T) {
	ctx := context.Background()
	g := newSeedGraph(t, nil)
	_, _ = g.AddFriend(ctx, "9", "1")
	_, _ = g.AddFriend(ctx, "9", "7")

	for _, subject := range g.Users() {
		for _, maxCount := range []int{1, 3, 10} {
			recs := g.Recommendations(subject.ID, maxCount)
			assert.LessOrEqual(t, len(recs), maxCount)
			for i, r := range recs {
				assert.NotEqual(t, subject.ID, r.User.ID)
				assert.False(t, subject.IsFriend(r.User.ID))
				assert.Positive(t, r.CommonFriendsCount)
				if i > 0 {
					assert.GreaterOrEqual(t, recs[i-1].CommonFriendsCount, r.CommonFriendsCount)
				}
			}
		}
	}
}

func TestRecommendations_RecomputedAfterEdit(t *testing.T) {
	ctx := context.Background()
	g := chainGraph()
	require.Len(t, g.Recommendations("u1", 5), 1)

	_, err := g.AddFriend(ctx, "u1", "u3")
	require.NoError(t, err)
	assert.Empty(t, g.Recommendations("u1", 5))
	assert.Empty(t, g.Recommendations("u3", 5))
}
