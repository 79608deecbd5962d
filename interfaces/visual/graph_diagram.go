package visual

import (
	"slices"
	"strings"

	"github.com/Kian-Chen/DSADesign/domain/social"
)

// NodeRole distinguishes the focus user from the rest of a graph diagram
type NodeRole string

const (
	RoleSelf   NodeRole = "self"
	RoleFriend NodeRole = "friend"
	RoleMember NodeRole = "member"
)

// GraphNode is a user in a graph diagram
type GraphNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Role  NodeRole `json:"role"`
}

// GraphEdge is a friendship annotated with what the two users share
type GraphEdge struct {
	From             string   `json:"from"`
	To               string   `json:"to"`
	Kind             string   `json:"kind"`
	RelationshipTags []string `json:"relationshipTags"`
}

// GraphDiagram describes users and friendships as nodes and edges
type GraphDiagram struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// RelationshipTags lists what a and b have in common, in display order:
// first shared school, location, first shared group of a, and
// Friend when b is in a's friend set.
func RelationshipTags(a, b social.User) []string {
	tags := []string{}
	for _, s := range a.Schools {
		if slices.Contains(b.Schools, s) {
			tags = append(tags, "School: "+s)
			break
		}
	}
	if a.Location != "" && a.Location == b.Location {
		tags = append(tags, "Location: "+a.Location)
	}
	for _, g := range a.Groups {
		if slices.Contains(b.Groups, g) {
			tags = append(tags, "Group: "+g)
			break
		}
	}
	if a.IsFriend(b.ID) {
		tags = append(tags, "Friend")
	}
	return tags
}

// edgeKind picks the dominant tag used to colour an edge
func edgeKind(tags []string) string {
	for _, prefix := range []string{"School", "Location", "Group"} {
		for _, t := range tags {
			if strings.HasPrefix(t, prefix+": ") {
				return prefix
			}
		}
	}
	return "Friend"
}

// NewEgoGraph builds the diagram of a user and their resolved friends
func NewEgoGraph(self social.User, friends []social.User) GraphDiagram {
	d := GraphDiagram{
		Nodes: []GraphNode{{ID: self.ID, Label: self.Name, Role: RoleSelf}},
		Edges: []GraphEdge{},
	}
	for _, f := range friends {
		d.Nodes = append(d.Nodes, GraphNode{ID: f.ID, Label: f.Name, Role: RoleFriend})
		tags := RelationshipTags(self, f)
		d.Edges = append(d.Edges, GraphEdge{
			From:             self.ID,
			To:               f.ID,
			Kind:             edgeKind(tags),
			RelationshipTags: tags,
		})
	}
	return d
}

// NewFullGraph builds the diagram of a whole snapshot. Each resolved
// friendship appears once.
func NewFullGraph(snapshot social.Snapshot) GraphDiagram {
	d := GraphDiagram{
		Nodes: make([]GraphNode, 0, len(snapshot.Users)),
		Edges: []GraphEdge{},
	}
	byID := make(map[string]int, len(snapshot.Users))
	for i, u := range snapshot.Users {
		byID[u.ID] = i
		d.Nodes = append(d.Nodes, GraphNode{ID: u.ID, Label: u.Name, Role: RoleMember})
	}
	for i, u := range snapshot.Users {
		for _, f := range u.Friends {
			j, ok := byID[f]
			if !ok || j <= i {
				continue
			}
			tags := RelationshipTags(u, snapshot.Users[j])
			d.Edges = append(d.Edges, GraphEdge{
				From:             u.ID,
				To:               f,
				Kind:             edgeKind(tags),
				RelationshipTags: tags,
			})
		}
	}
	return d
}
