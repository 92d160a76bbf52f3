package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founderhub/founder-api/internal/model"
)

func comment(id int64, parentID *int64, createdAt time.Time) *model.Comment {
	return &model.Comment{
		ID:        id,
		PostID:    1,
		AuthorID:  id,
		ParentID:  parentID,
		Content:   "comment",
		CreatedAt: createdAt,
	}
}

func ptr(v int64) *int64 { return &v }

func TestBuildTreeEmpty(t *testing.T) {
	roots := BuildTree(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuildTreeNesting(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 1 is a root, 2 replies to 1, 3 replies to 2, 4 replies to 1.
	comments := []*model.Comment{
		comment(1, nil, base),
		comment(2, ptr(1), base.Add(time.Minute)),
		comment(3, ptr(2), base.Add(2*time.Minute)),
		comment(4, ptr(1), base.Add(3*time.Minute)),
	}

	roots := BuildTree(comments)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, int64(1), root.ID)
	require.Len(t, root.Replies, 2)
	assert.Equal(t, int64(2), root.Replies[0].ID)
	assert.Equal(t, int64(4), root.Replies[1].ID)

	require.Len(t, root.Replies[0].Replies, 1)
	assert.Equal(t, int64(3), root.Replies[0].Replies[0].ID)
	assert.Empty(t, root.Replies[1].Replies)
}

func TestBuildTreeMultipleRootsKeepOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	comments := []*model.Comment{
		comment(1, nil, base),
		comment(2, nil, base.Add(time.Minute)),
		comment(3, nil, base.Add(2*time.Minute)),
	}

	roots := BuildTree(comments)
	require.Len(t, roots, 3)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Equal(t, int64(2), roots[1].ID)
	assert.Equal(t, int64(3), roots[2].ID)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 2 replies to a comment that is not in the input.
	comments := []*model.Comment{
		comment(1, nil, base),
		comment(2, ptr(99), base.Add(time.Minute)),
	}

	roots := BuildTree(comments)
	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildTreeRepliesAreNeverNil(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	roots := BuildTree([]*model.Comment{comment(1, nil, base)})
	require.Len(t, roots, 1)
	assert.NotNil(t, roots[0].Replies)
}
