package content

import (
	"github.com/founderhub/founder-api/internal/model"
)

// BuildTree assembles flat comment rows into a forest of reply threads.
//
// Input must be ordered by creation time ascending; a parent always has a
// creation timestamp no later than its replies, so a single pass suffices.
// Roots keep input order, and so does each reply list. A comment whose
// parent id is not among the already-seen comments is dropped from the
// forest: it stays stored but is unreachable from the returned roots.
// Depth is unbounded and acyclicity is assumed, not verified.
func BuildTree(comments []*model.Comment) []*model.CommentNode {
	nodes := make(map[int64]*model.CommentNode, len(comments))
	roots := make([]*model.CommentNode, 0)

	for _, c := range comments {
		node := &model.CommentNode{
			ID:        c.ID,
			AuthorID:  c.AuthorID,
			ParentID:  c.ParentID,
			Content:   c.Content,
			LikeCount: c.LikeCount,
			CreatedAt: c.CreatedAt,
			Replies:   []*model.CommentNode{},
		}
		nodes[c.ID] = node

		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}
