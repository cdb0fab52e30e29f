package usecase

import (
	"encoding/json"
	"testing"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/dto/response"

	"github.com/google/uuid"
)

func countNodes(nodes []response.ReviewNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Children)
	}
	return n
}

func TestEncodeReviewTree_Nesting(t *testing.T) {
	movieID := uuid.New()
	r1 := review(movieID, nil, "r1", 0)
	r2 := review(movieID, &r1.ID, "r2", 1)
	r3 := review(movieID, &r2.ID, "r3", 2)

	nodes, orphans := EncodeReviewTree([]*entity.Review{r1, r2, r3})

	if len(orphans) != 0 {
		t.Fatalf("expected no orphans, got %d", len(orphans))
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 root, got %d", len(nodes))
	}
	root := nodes[0]
	if root.ID != r1.ID.String() || len(root.Children) != 1 {
		t.Fatalf("unexpected root %+v", root)
	}
	child := root.Children[0]
	if child.ID != r2.ID.String() || len(child.Children) != 1 {
		t.Fatalf("unexpected child %+v", child)
	}
	leaf := child.Children[0]
	if leaf.ID != r3.ID.String() || leaf.Children == nil || len(leaf.Children) != 0 {
		t.Fatalf("unexpected leaf %+v", leaf)
	}
}

func TestEncodeReviewTree_RootsAndSiblingOrder(t *testing.T) {
	movieID := uuid.New()
	a := review(movieID, nil, "a", 0)
	b := review(movieID, nil, "b", 1)
	a1 := review(movieID, &a.ID, "a1", 2)
	a2 := review(movieID, &a.ID, "a2", 3)
	a3 := review(movieID, &a.ID, "a3", 4)

	input := []*entity.Review{a, b, a1, a2, a3}
	nodes, _ := EncodeReviewTree(input)

	var roots int
	for _, r := range input {
		if r.IsRoot() {
			roots++
		}
	}
	if len(nodes) != roots {
		t.Fatalf("expected %d top-level nodes, got %d", roots, len(nodes))
	}
	if nodes[0].Name != "a" || nodes[1].Name != "b" {
		t.Fatalf("expected roots in input order, got %q, %q", nodes[0].Name, nodes[1].Name)
	}

	want := []string{"a1", "a2", "a3"}
	for i, child := range nodes[0].Children {
		if child.Name != want[i] {
			t.Fatalf("child %d: expected %q, got %q", i, want[i], child.Name)
		}
	}
	if countNodes(nodes) != len(input) {
		t.Fatalf("expected %d nodes, got %d", len(input), countNodes(nodes))
	}
}

func TestEncodeReviewTree_Orphans(t *testing.T) {
	movieID := uuid.New()
	root := review(movieID, nil, "root", 0)
	reply := review(movieID, &root.ID, "reply", 1)
	missingParent := review(movieID, ptr(uuid.New()), "lost", 2)
	underLost := review(movieID, &missingParent.ID, "under-lost", 3)

	self := review(movieID, nil, "self", 4)
	self.ParentID = &self.ID

	loopA := review(movieID, nil, "loop-a", 5)
	loopB := review(movieID, &loopA.ID, "loop-b", 6)
	loopA.ParentID = &loopB.ID

	input := []*entity.Review{root, reply, missingParent, underLost, self, loopA, loopB}
	nodes, orphans := EncodeReviewTree(input)

	if len(orphans) != 5 {
		t.Fatalf("expected 5 orphans, got %d", len(orphans))
	}
	if got := countNodes(nodes); got != len(input)-len(orphans) {
		t.Fatalf("expected %d rendered nodes, got %d", len(input)-len(orphans), got)
	}
	if len(nodes) != 1 || nodes[0].ID != root.ID.String() {
		t.Fatalf("expected only the real root at top level, got %+v", nodes)
	}
}

func TestEncodeReviewTree_Empty(t *testing.T) {
	nodes, orphans := EncodeReviewTree(nil)
	if nodes == nil || len(nodes) != 0 || len(orphans) != 0 {
		t.Fatalf("expected empty non-nil result, got %v / %v", nodes, orphans)
	}

	raw, err := json.Marshal(nodes)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestEncodeReviewTree_Idempotent(t *testing.T) {
	movieID := uuid.New()
	r1 := review(movieID, nil, "r1", 0)
	r2 := review(movieID, &r1.ID, "r2", 1)
	input := []*entity.Review{r1, r2}

	first, _ := EncodeReviewTree(input)
	second, _ := EncodeReviewTree(input)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("encoding changed between calls:\n%s\n%s", a, b)
	}
}

func TestEncodeReviewNode_UsesInjectedEncoder(t *testing.T) {
	movieID := uuid.New()
	parent := review(movieID, nil, "parent", 0)
	c1 := review(movieID, &parent.ID, "c1", 1)
	c2 := review(movieID, &parent.ID, "c2", 2)
	forest := BuildReviewForest([]*entity.Review{parent, c1, c2})

	var seen []string
	stub := func(r *entity.Review) response.ReviewNode {
		seen = append(seen, r.Name)
		return response.ReviewNode{ID: "stub"}
	}

	node := EncodeReviewNode(parent, forest.Children, stub)

	if len(seen) != 2 || seen[0] != "c1" || seen[1] != "c2" {
		t.Fatalf("expected stub called for c1, c2 in order, got %v", seen)
	}
	if len(node.Children) != 2 || node.Children[0].ID != "stub" {
		t.Fatalf("expected stubbed children, got %+v", node.Children)
	}
	if node.Name != "parent" || node.Text != parent.Text {
		t.Fatalf("unexpected node fields %+v", node)
	}
}
