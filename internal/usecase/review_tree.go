package usecase

import (
	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/dto/response"

	"github.com/google/uuid"
)

// ReviewForest is one movie's reviews partitioned by parent.
type ReviewForest struct {
	// Roots are parentless reviews in input order.
	Roots []*entity.Review
	// Orphans are reviews no root can reach: a missing parent, a parent from
	// another movie, or a parent cycle.
	Orphans  []*entity.Review
	children map[uuid.UUID][]*entity.Review
}

// Children lists the direct replies of id in input order.
func (f ReviewForest) Children(id uuid.UUID) []*entity.Review {
	return f.children[id]
}

// BuildReviewForest partitions reviews by parent. Input order is preserved
// for roots and within each sibling list, so callers pass reviews oldest first.
func BuildReviewForest(reviews []*entity.Review) ReviewForest {
	forest := ReviewForest{children: make(map[uuid.UUID][]*entity.Review)}

	for _, review := range reviews {
		if review.IsRoot() {
			forest.Roots = append(forest.Roots, review)
			continue
		}
		forest.children[*review.ParentID] = append(forest.children[*review.ParentID], review)
	}

	reached := make(map[uuid.UUID]bool, len(reviews))
	queue := append([]*entity.Review(nil), forest.Roots...)
	for len(queue) > 0 {
		review := queue[0]
		queue = queue[1:]
		if reached[review.ID] {
			continue
		}
		reached[review.ID] = true
		queue = append(queue, forest.children[review.ID]...)
	}

	for _, review := range reviews {
		if !reached[review.ID] {
			forest.Orphans = append(forest.Orphans, review)
		}
	}
	return forest
}

// EncodeReviewNode renders review and recurses into its replies through encode,
// which lets callers swap the recursion step.
func EncodeReviewNode(
	review *entity.Review,
	children func(uuid.UUID) []*entity.Review,
	encode func(*entity.Review) response.ReviewNode,
) response.ReviewNode {
	replies := children(review.ID)
	node := response.ReviewNode{
		ID:       review.ID.String(),
		Name:     review.Name,
		Text:     review.Text,
		Children: make([]response.ReviewNode, 0, len(replies)),
	}
	for _, reply := range replies {
		node.Children = append(node.Children, encode(reply))
	}
	return node
}

// EncodeReviewTree renders the forest of one movie's reviews. Only roots
// appear at the top level; orphans are returned separately and never rendered.
func EncodeReviewTree(reviews []*entity.Review) ([]response.ReviewNode, []*entity.Review) {
	forest := BuildReviewForest(reviews)

	var encode func(*entity.Review) response.ReviewNode
	encode = func(review *entity.Review) response.ReviewNode {
		return EncodeReviewNode(review, forest.Children, encode)
	}

	nodes := make([]response.ReviewNode, 0, len(forest.Roots))
	for _, root := range forest.Roots {
		nodes = append(nodes, encode(root))
	}
	return nodes, forest.Orphans
}
