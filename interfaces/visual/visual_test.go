package visual

import (
	"testing"

	"github.com/Kian-Chen/DSADesign/domain/lists"
	"github.com/Kian-Chen/DSADesign/domain/social"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListDiagram(t *testing.T) {
	tests := []struct {
		name    string
		variant lists.Variant
		values  []string
		want    []ListEdge
	}{
		{
			name:    "empty",
			variant: lists.VariantCircular,
			want:    []ListEdge{},
		},
		{
			name:    "single circular node has no closing edge",
			variant: lists.VariantCircular,
			values:  []string{"a"},
			want:    []ListEdge{},
		},
		{
			name:    "singly",
			variant: lists.VariantSingly,
			values:  []string{"a", "b", "c"},
			want: []ListEdge{
				{From: 0, To: 1, Kind: EdgeNext},
				{From: 1, To: 2, Kind: EdgeNext},
			},
		},
		{
			name:    "doubly",
			variant: lists.VariantDoubly,
			values:  []string{"a", "b"},
			want: []ListEdge{
				{From: 0, To: 1, Kind: EdgeNext},
				{From: 1, To: 0, Kind: EdgePrev},
			},
		},
		{
			name:    "circular",
			variant: lists.VariantCircular,
			values:  []string{"a", "b", "c"},
			want: []ListEdge{
				{From: 0, To: 1, Kind: EdgeNext},
				{From: 1, To: 2, Kind: EdgeNext},
				{From: 2, To: 0, Kind: EdgeClosing},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewListDiagram(tt.variant, tt.values)
			assert.Equal(t, tt.variant, d.Variant)
			assert.Len(t, d.Nodes, len(tt.values))
			assert.Equal(t, tt.want, d.Edges)
		})
	}
}

func TestDiagramOf(t *testing.T) {
	l := lists.NewCircular[int]()
	l.Insert(10, 0)
	l.Insert(20, 1)

	d := DiagramOf[int](l, IntLabel)
	assert.Equal(t, []ListNode{{ID: 0, Label: "10"}, {ID: 1, Label: "20"}}, d.Nodes)
	assert.Contains(t, d.Edges, ListEdge{From: 1, To: 0, Kind: EdgeClosing})
}

func TestRelationshipTags(t *testing.T) {
	alice := social.User{
		ID: "1", Location: "Beijing",
		Schools: []string{"Tsinghua"}, Groups: []string{"hiking", "photography"},
		Friends: []string{"3"},
	}
	charlie := social.User{
		ID: "3", Location: "Beijing",
		Schools: []string{"Peking", "Tsinghua"}, Groups: []string{"photography", "hiking"},
	}
	stranger := social.User{ID: "9", Location: "Chengdu"}

	assert.Equal(t,
		[]string{"School: Tsinghua", "Location: Beijing", "Group: hiking", "Friend"},
		RelationshipTags(alice, charlie))
	assert.Equal(t, []string{}, RelationshipTags(alice, stranger))
	assert.Equal(t, "School", edgeKind(RelationshipTags(alice, charlie)))
	assert.Equal(t, "Friend", edgeKind(nil))
}

func TestNewEgoGraph(t *testing.T) {
	seed, err := social.LoadSeed()
	require.NoError(t, err)
	g := social.NewGraph(seed, nil)

	self, ok := g.UserByID("1")
	require.True(t, ok)
	var friends []social.User
	for _, f := range g.Friends("1") {
		friends = append(friends, f.Clone())
	}

	d := NewEgoGraph(self.Clone(), friends)
	require.Len(t, d.Nodes, 4)
	assert.Equal(t, RoleSelf, d.Nodes[0].Role)
	require.Len(t, d.Edges, 3)

	// Alice and Charlie share school, city and hiking.
	edge := d.Edges[1]
	assert.Equal(t, "3", edge.To)
	assert.Equal(t, "School", edge.Kind)
	assert.Contains(t, edge.RelationshipTags, "Friend")
	assert.Contains(t, edge.RelationshipTags, "Group: hiking")
}

func TestNewFullGraph(t *testing.T) {
	seed, err := social.LoadSeed()
	require.NoError(t, err)
	g := social.NewGraph(seed, nil)

	d := NewFullGraph(g.Snapshot())
	assert.Len(t, d.Nodes, 9)
	assert.Len(t, d.Edges, len(g.Snapshot().Friendships))
	for _, e := range d.Edges {
		assert.Contains(t, e.RelationshipTags, "Friend")
	}
}
