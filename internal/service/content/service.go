package content

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	gocache "github.com/patrickmn/go-cache"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
)

const (
	listCacheTTL     = 30 * time.Second
	listCacheCleanup = 5 * time.Minute
)

type Service struct {
	repo      repository.ContentRepository
	logger    *logger.Logger
	listCache *gocache.Cache
}

func NewService(repo repository.ContentRepository, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    log,
		listCache: gocache.New(listCacheTTL, listCacheCleanup),
	}
}

func (s *Service) CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.InvalidArgument("content is required")
	}
	if len(req.Content) > model.MaxPostContentLen {
		return nil, errors.InvalidArgument("content must be less than 10,000 characters")
	}

	post := &model.Post{
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
		Tags:        pq.StringArray(req.Tags),
	}
	if post.ContentType == "" {
		post.ContentType = "text"
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, errors.Internal(err)
	}

	s.listCache.Flush()
	s.logger.Info("post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

func (s *Service) ListPosts(ctx context.Context, filters *model.PostFilters, page *model.Pagination) (*model.ListPostsResponse, error) {
	page.Normalize()

	key := listCacheKey(filters, page)
	if cached, ok := s.listCache.Get(key); ok {
		return cached.(*model.ListPostsResponse), nil
	}

	posts, total, err := s.repo.ListPosts(ctx, filters, page.Limit, page.Offset)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	resp := &model.ListPostsResponse{Posts: posts, Total: total}
	s.listCache.Set(key, resp, gocache.DefaultExpiration)
	return resp, nil
}

// GetPost loads a post with its comments resolved into a reply forest. The
// view counter is bumped on every read.
func (s *Service) GetPost(ctx context.Context, id int64) (*model.PostWithComments, error) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		return nil, errors.Internal(err)
	}

	post, err := s.repo.GetPost(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("post", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.PostWithComments{
		Post:     *post,
		Comments: BuildTree(comments),
	}, nil
}

func (s *Service) CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.InvalidArgument("content is required")
	}
	if len(req.Content) > model.MaxCommentContentLen {
		return nil, errors.InvalidArgument("comment must be less than 2,000 characters")
	}

	exists, err := s.repo.PostExists(ctx, req.PostID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !exists {
		return nil, errors.NotFound("post", nil)
	}

	if req.ParentID != nil {
		parentExists, err := s.repo.CommentExistsInPost(ctx, *req.ParentID, req.PostID)
		if err != nil {
			return nil, errors.Internal(err)
		}
		if !parentExists {
			return nil, errors.NotFound("parent comment", nil)
		}
	}

	comment := &model.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	event := &model.OutboxEvent{EventType: model.EventCommentCreated}

	if err := s.repo.CreateComment(ctx, comment, event); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("comment created", "comment_id", comment.ID, "post_id", comment.PostID)
	return comment, nil
}

func listCacheKey(filters *model.PostFilters, page *model.Pagination) string {
	return fmt.Sprintf("posts:%d:%s:%d:%d", filters.AuthorID, filters.Tag, page.Limit, page.Offset)
}
