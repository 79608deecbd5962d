// Package social models the users, groups and friendships behind the
// visualizer's social pages and ranks friend recommendations.
//
// A Graph is owned by one session and is not safe for concurrent use.
// Friendship is kept mutual: every mutation touches both users.
package social

import (
	"context"
	"maps"
	"slices"
)

// Snapshot is the complete serialisable state of a Graph.
type Snapshot struct {
	Users       []User              `json:"users" yaml:"users" dynamodbav:"users"`
	Groups      map[string][]string `json:"groups" yaml:"groups" dynamodbav:"groups"`
	Friendships []Friendship        `json:"friendships" yaml:"friendships" dynamodbav:"friendships"`
}

// Saver receives a snapshot after every successful friendship change.
type Saver interface {
	Save(ctx context.Context, snapshot Snapshot) error
}

// Graph holds users in their enumeration order and group rosters.
type Graph struct {
	users       []*User
	groups      map[string][]string
	friendships []Friendship
	saver       Saver
}

// NewGraph builds a graph from a snapshot. Friend sets are made mutual,
// deduplicated and stripped of self references. saver may be nil.
func NewGraph(snapshot Snapshot, saver Saver) *Graph {
	g := &Graph{saver: saver}
	g.apply(snapshot)
	return g
}

// Restore overlays a stored snapshot. Fields that are absent in the stored
// snapshot keep their current value. Stored users carry the authoritative
// friend sets: their friendship list is ignored and rebuilt from them.
// Only a snapshot without users has its friendship list linked in.
func (g *Graph) Restore(stored *Snapshot) {
	if stored == nil {
		return
	}
	merged := g.Snapshot()
	if stored.Groups != nil {
		merged.Groups = stored.Groups
	}
	if stored.Users != nil {
		merged.Users = stored.Users
		merged.Friendships = nil
	} else if stored.Friendships != nil {
		merged.Friendships = stored.Friendships
	}
	g.apply(merged)
}

func (g *Graph) apply(s Snapshot) {
	g.users = make([]*User, 0, len(s.Users))
	for _, u := range s.Users {
		clone := u.Clone()
		clone.Friends = nil
		g.users = append(g.users, &clone)
	}

	link := func(a, b string) {
		if a == b {
			return
		}
		ua, okA := g.UserByID(a)
		ub, okB := g.UserByID(b)
		switch {
		case okA && okB:
			ua.addFriend(b)
			ub.addFriend(a)
		case okA:
			// Stale ids are kept; lookups drop them.
			ua.addFriend(b)
		}
	}
	for i, u := range s.Users {
		for _, f := range u.Friends {
			link(g.users[i].ID, f)
		}
	}
	for _, f := range s.Friendships {
		link(f.UserID, f.FriendID)
	}

	g.groups = make(map[string][]string, len(s.Groups))
	for id, roster := range s.Groups {
		g.groups[id] = slices.Clone(roster)
	}
	g.friendships = g.edges()
}

// edges lists each resolved friendship once, in user enumeration order.
func (g *Graph) edges() []Friendship {
	var out []Friendship
	seen := make(map[string]int, len(g.users))
	for i, u := range g.users {
		seen[u.ID] = i
	}
	for i, u := range g.users {
		for _, f := range u.Friends {
			if j, ok := seen[f]; ok && j > i {
				out = append(out, Friendship{UserID: u.ID, FriendID: f})
			}
		}
	}
	return out
}

// Snapshot returns a deep copy of the graph state.
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{
		Users:       make([]User, 0, len(g.users)),
		Groups:      make(map[string][]string, len(g.groups)),
		Friendships: slices.Clone(g.friendships),
	}
	for _, u := range g.users {
		s.Users = append(s.Users, u.Clone())
	}
	for id, roster := range g.groups {
		s.Groups[id] = slices.Clone(roster)
	}
	if s.Friendships == nil {
		s.Friendships = []Friendship{}
	}
	return s
}

// Users returns every user in enumeration order.
func (g *Graph) Users() []*User {
	return slices.Clone(g.users)
}

// GroupIDs returns the known group ids in sorted order.
func (g *Graph) GroupIDs() []string {
	return slices.Sorted(maps.Keys(g.groups))
}

// UserByID scans for the user with the given id.
func (g *Graph) UserByID(id string) (*User, bool) {
	for _, u := range g.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// Friends resolves a user's friend ids. Unknown users have no friends and
// ids that no longer resolve are skipped.
func (g *Graph) Friends(id string) []*User {
	u, ok := g.UserByID(id)
	if !ok {
		return []*User{}
	}
	return g.resolve(u.Friends)
}

// GroupMembers resolves a group roster; unknown groups are empty.
func (g *Graph) GroupMembers(groupID string) []*User {
	return g.resolve(g.groups[groupID])
}

func (g *Graph) resolve(ids []string) []*User {
	out := make([]*User, 0, len(ids))
	for _, id := range ids {
		if u, ok := g.UserByID(id); ok {
			out = append(out, u)
		}
	}
	return out
}

// AddFriend makes a and b friends of each other. It is a no-op returning
// false when either id is unknown or both are the same user.
//
// After a successful change the full snapshot is handed to the Saver
// before returning. The returned error is only the save outcome: the
// in-memory change stands either way.
func (g *Graph) AddFriend(ctx context.Context, a, b string) (bool, error) {
	ua, ub, ok := g.pair(a, b)
	if !ok {
		return false, nil
	}
	ua.addFriend(b)
	ub.addFriend(a)
	return true, g.persist(ctx)
}

// RemoveFriend drops the friendship between a and b from both sides. The
// no-op and persistence rules match AddFriend; removing users that are
// not friends still succeeds and saves.
func (g *Graph) RemoveFriend(ctx context.Context, a, b string) (bool, error) {
	ua, ub, ok := g.pair(a, b)
	if !ok {
		return false, nil
	}
	ua.removeFriend(b)
	ub.removeFriend(a)
	return true, g.persist(ctx)
}

func (g *Graph) pair(a, b string) (*User, *User, bool) {
	if a == b {
		return nil, nil, false
	}
	ua, okA := g.UserByID(a)
	ub, okB := g.UserByID(b)
	if !okA || !okB {
		return nil, nil, false
	}
	return ua, ub, true
}

func (g *Graph) persist(ctx context.Context) error {
	g.friendships = g.edges()
	if g.saver == nil {
		return nil
	}
	return g.saver.Save(ctx, g.Snapshot())
}
