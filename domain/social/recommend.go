package social

import "slices"

// DefaultRecommendations is the result size used when a caller does not
// choose one.
const DefaultRecommendations = 5

// Recommendation is a candidate friend and the number of friends they
// share with the subject user.
type Recommendation struct {
	User               *User `json:"user"`
	CommonFriendsCount int   `json:"commonFriendsCount"`
}

// Recommendations ranks users who are neither the subject nor already a
// friend by how many of the subject's friends they are friends with.
// Candidates with nothing in common are dropped. Ties keep enumeration
// order. At most maxCount results are returned.
func (g *Graph) Recommendations(userID string, maxCount int) []Recommendation {
	if maxCount <= 0 {
		return []Recommendation{}
	}

	friendIDs := make(map[string]struct{})
	for _, f := range g.Friends(userID) {
		friendIDs[f.ID] = struct{}{}
	}

	var out []Recommendation
	for _, candidate := range g.users {
		if candidate.ID == userID {
			continue
		}
		if _, isFriend := friendIDs[candidate.ID]; isFriend {
			continue
		}
		common := 0
		for _, f := range g.Friends(candidate.ID) {
			if _, ok := friendIDs[f.ID]; ok {
				common++
			}
		}
		if common > 0 {
			out = append(out, Recommendation{User: candidate, CommonFriendsCount: common})
		}
	}

	slices.SortStableFunc(out, func(a, b Recommendation) int {
		return b.CommonFriendsCount - a.CommonFriendsCount
	})
	if len(out) > maxCount {
		out = out[:maxCount]
	}
	if out == nil {
		return []Recommendation{}
	}
	return out
}
