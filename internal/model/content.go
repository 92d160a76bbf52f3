package model

import (
	"time"

	"github.com/lib/pq"
)

const (
	MaxPostContentLen    = 10000
	MaxCommentContentLen = 2000
)

type Post struct {
	ID           int64          `db:"id" json:"id"`
	AuthorID     int64          `db:"author_id" json:"author_id"`
	Title        *string        `db:"title" json:"title,omitempty"`
	Content      string         `db:"content" json:"content"`
	ContentType  string         `db:"content_type" json:"content_type"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	IsPublished  bool           `db:"is_published" json:"is_published"`
	ViewCount    int64          `db:"view_count" json:"view_count"`
	LikeCount    int64          `db:"like_count" json:"like_count"`
	CommentCount int64          `db:"comment_count" json:"comment_count"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	ParentID  *int64    `db:"parent_id" json:"parent_id,omitempty"`
	Content   string    `db:"content" json:"content"`
	LikeCount int64     `db:"like_count" json:"like_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentNode is a comment with its replies resolved, as served to the
// display layer.
type CommentNode struct {
	ID        int64          `json:"id"`
	AuthorID  int64          `json:"author_id"`
	ParentID  *int64         `json:"parent_id,omitempty"`
	Content   string         `json:"content"`
	LikeCount int64          `json:"like_count"`
	CreatedAt time.Time      `json:"created_at"`
	Replies   []*CommentNode `json:"replies"`
}

type PostWithComments struct {
	Post
	Comments []*CommentNode `json:"comments"`
}

type CreatePostRequest struct {
	AuthorID    int64    `json:"author_id" binding:"required"`
	Title       *string  `json:"title" binding:"omitempty,max=300"`
	Content     string   `json:"content" binding:"required"`
	ContentType string   `json:"content_type" binding:"omitempty,oneof=text markdown"`
	Tags        []string `json:"tags"`
}

type CreateCommentRequest struct {
	PostID   int64  `json:"post_id" binding:"required"`
	AuthorID int64  `json:"author_id" binding:"required"`
	ParentID *int64 `json:"parent_id"`
	Content  string `json:"content" binding:"required"`
}

// PostFilters narrows list queries. Zero values mean "no filter".
type PostFilters struct {
	AuthorID int64
	Tag      string
}

type ListPostsResponse struct {
	Posts []*Post `json:"posts"`
	Total int64   `json:"total"`
}
