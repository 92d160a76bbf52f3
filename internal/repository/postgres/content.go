package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
)

func (r *contentRepository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (
			author_id, title, content, content_type, tags,
			is_published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	post.IsPublished = true
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}

	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.Title,
		post.Content,
		post.ContentType,
		post.Tags,
		post.IsPublished,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *contentRepository) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT id, author_id, title, content, content_type, tags, is_published,
			   view_count, like_count, comment_count, created_at, updated_at
		FROM posts
		WHERE id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *contentRepository) PostExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check post: %w", err)
	}
	return exists, nil
}

func (r *contentRepository) IncrementViewCount(ctx context.Context, postID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// ListPosts returns published posts newest first, with the total count
// computed from the same predicate set.
func (r *contentRepository) ListPosts(ctx context.Context, filters *model.PostFilters, limit, offset int) ([]*model.Post, int64, error) {
	where := "WHERE is_published = true"
	args := []interface{}{}
	argCount := 1

	if filters.AuthorID != 0 {
		where += fmt.Sprintf(" AND author_id = $%d", argCount)
		args = append(args, filters.AuthorID)
		argCount++
	}
	if filters.Tag != "" {
		where += fmt.Sprintf(" AND $%d = ANY(tags)", argCount)
		args = append(args, filters.Tag)
		argCount++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM posts " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, author_id, title, content, content_type, tags, is_published,
			   view_count, like_count, comment_count, created_at, updated_at
		FROM posts
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argCount, argCount+1)
	args = append(args, limit, offset)

	var posts []*model.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// CreateComment inserts the comment and bumps the post's comment count in
// one transaction.
func (r *contentRepository) CreateComment(ctx context.Context, comment *model.Comment, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		comment.CreatedAt = time.Now()

		err := tx.QueryRowxContext(ctx, `
			INSERT INTO comments (post_id, author_id, parent_id, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			comment.PostID,
			comment.AuthorID,
			comment.ParentID,
			comment.Content,
			comment.CreatedAt,
		).Scan(&comment.ID)
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`,
			comment.PostID)
		if err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}

		if event != nil {
			if event.Payload == nil {
				payload, err := json.Marshal(comment)
				if err != nil {
					return fmt.Errorf("failed to marshal comment event: %w", err)
				}
				event.Payload = payload
			}
			if err := insertOutboxEventTx(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) CommentExistsInPost(ctx context.Context, commentID, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1 AND post_id = $2)`,
		commentID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check parent comment: %w", err)
	}
	return exists, nil
}

// ListComments returns all comments of a post ordered by creation time
// ascending, the order the tree builder requires.
func (r *contentRepository) ListComments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	query := `
		SELECT id, post_id, author_id, parent_id, content, like_count, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`
	var comments []*model.Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
