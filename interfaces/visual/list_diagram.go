// Package visual turns lists and the social graph into layout-free node and
// edge sets that a renderer can draw.
package visual

import (
	"strconv"

	"github.com/Kian-Chen/DSADesign/domain/lists"
)

// EdgeKind classifies an edge of a list diagram
type EdgeKind string

const (
	EdgeNext    EdgeKind = "next"
	EdgePrev    EdgeKind = "prev"
	EdgeClosing EdgeKind = "closing"
)

// ListNode is one element of a list diagram, keyed by its index
type ListNode struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ListEdge links two list nodes by index
type ListEdge struct {
	From int      `json:"from"`
	To   int      `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// ListDiagram describes a list as nodes and edges
type ListDiagram struct {
	Variant lists.Variant `json:"variant"`
	Nodes   []ListNode    `json:"nodes"`
	Edges   []ListEdge    `json:"edges"`
}

// NewListDiagram builds the diagram of a linearized list. Every variant has
// forward edges i -> i+1. Doubly lists add back edges, circular lists with
// more than one node add the closing edge from the tail to index 0.
func NewListDiagram(variant lists.Variant, values []string) ListDiagram {
	n := len(values)
	d := ListDiagram{
		Variant: variant,
		Nodes:   make([]ListNode, 0, n),
		Edges:   []ListEdge{},
	}
	for i, v := range values {
		d.Nodes = append(d.Nodes, ListNode{ID: i, Label: v})
	}

	for i := 0; i+1 < n; i++ {
		d.Edges = append(d.Edges, ListEdge{From: i, To: i + 1, Kind: EdgeNext})
		if variant == lists.VariantDoubly {
			d.Edges = append(d.Edges, ListEdge{From: i + 1, To: i, Kind: EdgePrev})
		}
	}
	if variant == lists.VariantCircular && n > 1 {
		d.Edges = append(d.Edges, ListEdge{From: n - 1, To: 0, Kind: EdgeClosing})
	}
	return d
}

// DiagramOf builds the diagram of any list
func DiagramOf[T comparable](l lists.List[T], label func(T) string) ListDiagram {
	values := make([]string, 0, l.Len())
	for v := range l.Values() {
		values = append(values, label(v))
	}
	return NewListDiagram(l.Variant(), values)
}

// IntLabel renders an int value
func IntLabel(v int) string { return strconv.Itoa(v) }
