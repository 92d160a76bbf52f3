package content

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
)

type fakeContentRepo struct {
	posts     map[int64]*model.Post
	comments  map[int64]*model.Comment
	nextID    int64
	listCalls int
	events    []*model.OutboxEvent
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64]*model.Comment),
		nextID:   1,
	}
}

func (r *fakeContentRepo) id() int64 {
	id := r.nextID
	r.nextID++
	return id
}

func (r *fakeContentRepo) CreatePost(_ context.Context, post *model.Post) error {
	post.ID = r.id()
	post.IsPublished = true
	post.CreatedAt = time.Now()
	r.posts[post.ID] = post
	return nil
}

func (r *fakeContentRepo) GetPost(_ context.Context, id int64) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeContentRepo) PostExists(_ context.Context, id int64) (bool, error) {
	_, ok := r.posts[id]
	return ok, nil
}

func (r *fakeContentRepo) IncrementViewCount(_ context.Context, postID int64) error {
	if p, ok := r.posts[postID]; ok {
		p.ViewCount++
	}
	return nil
}

func (r *fakeContentRepo) ListPosts(_ context.Context, filters *model.PostFilters, limit, offset int) ([]*model.Post, int64, error) {
	r.listCalls++
	var out []*model.Post
	for _, p := range r.posts {
		if filters.AuthorID != 0 && p.AuthorID != filters.AuthorID {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContentRepo) CreateComment(_ context.Context, comment *model.Comment, event *model.OutboxEvent) error {
	comment.ID = r.id()
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	if p, ok := r.posts[comment.PostID]; ok {
		p.CommentCount++
	}
	if event != nil {
		r.events = append(r.events, event)
	}
	return nil
}

func (r *fakeContentRepo) CommentExistsInPost(_ context.Context, commentID, postID int64) (bool, error) {
	c, ok := r.comments[commentID]
	return ok && c.PostID == postID, nil
}

func (r *fakeContentRepo) ListComments(_ context.Context, postID int64) ([]*model.Comment, error) {
	var out []*model.Comment
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newContentService() (*Service, *fakeContentRepo) {
	repo := newFakeContentRepo()
	return NewService(repo, logger.NewLogger(nil)), repo
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newContentService()

	_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  "   ",
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))

	_, err = svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  strings.Repeat("x", model.MaxPostContentLen+1),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
}

func TestCreatePostDefaults(t *testing.T) {
	svc, _ := newContentService()

	post, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  "Launching next week.",
	})
	require.NoError(t, err)
	assert.Equal(t, "text", post.ContentType)
	assert.True(t, post.IsPublished)
}

func TestListPostsCaches(t *testing.T) {
	svc, repo := newContentService()

	_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  "First post.",
	})
	require.NoError(t, err)

	filters := &model.PostFilters{AuthorID: 1}
	_, err = svc.ListPosts(context.Background(), filters, &model.Pagination{})
	require.NoError(t, err)
	_, err = svc.ListPosts(context.Background(), filters, &model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// Creating a post invalidates the cache.
	_, err = svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  "Second post.",
	})
	require.NoError(t, err)
	_, err = svc.ListPosts(context.Background(), filters, &model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestGetPostBuildsCommentTree(t *testing.T) {
	svc, repo := newContentService()

	post, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  "Ask me anything.",
	})
	require.NoError(t, err)

	root, err := svc.CreateComment(context.Background(), &model.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: 2,
		Content:  "What stack?",
	})
	require.NoError(t, err)

	_, err = svc.CreateComment(context.Background(), &model.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: 1,
		ParentID: &root.ID,
		Content:  "Postgres and Go.",
	})
	require.NoError(t, err)

	got, err := svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)

	require.Len(t, got.Comments, 1)
	assert.Equal(t, root.ID, got.Comments[0].ID)
	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, int64(1), got.ViewCount)
	assert.Equal(t, int64(2), got.CommentCount)
	assert.Equal(t, 2, len(repo.events))
	assert.Equal(t, model.EventCommentCreated, repo.events[0].EventType)
}

func TestCreateCommentRequiresPostAndParent(t *testing.T) {
	svc, _ := newContentService()

	_, err := svc.CreateComment(context.Background(), &model.CreateCommentRequest{
		PostID:   404,
		AuthorID: 1,
		Content:  "Hello?",
	})
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))

	post, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		AuthorID: 1,
		Content:  "A post.",
	})
	require.NoError(t, err)

	missing := int64(999)
	_, err = svc.CreateComment(context.Background(), &model.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: 1,
		ParentID: &missing,
		Content:  "Reply to nothing.",
	})
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))

	_, err = svc.CreateComment(context.Background(), &model.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: 1,
		Content:  strings.Repeat("y", model.MaxCommentContentLen+1),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
}
