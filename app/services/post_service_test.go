package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func makePosts(n int) []*models.Post {
	posts := make([]*models.Post, 0, n)
	for i := 1; i <= n; i++ {
		slug := fmt.Sprintf("/post-%02d", i)
		posts = append(posts, &models.Post{
			ID:    slug + ".md",
			Title: fmt.Sprintf("Post %d", i),
			Date:  day(i),
			Slug:  slug,
		})
	}
	return posts
}

func slugs(posts []*models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestPostService(t *testing.T) {
	repo := mock.NewPostRepository(makePosts(6)...)
	service := NewPostService(repo, zap.NewNop())

	t.Run("all posts newest first", func(t *testing.T) {
		posts, err := service.All()
		require.NoError(t, err)
		assert.Equal(t, []string{"/post-06", "/post-05", "/post-04", "/post-03", "/post-02", "/post-01"}, slugs(posts))
	})

	t.Run("recent posts capped at four", func(t *testing.T) {
		posts, err := service.Recent()
		require.NoError(t, err)
		assert.Len(t, posts, RecentLimit)
		assert.Equal(t, []string{"/post-06", "/post-05", "/post-04", "/post-03"}, slugs(posts))
	})

	t.Run("recent with fewer posts than the limit", func(t *testing.T) {
		small := NewPostService(mock.NewPostRepository(makePosts(2)...), zap.NewNop())
		posts, err := small.Recent()
		require.NoError(t, err)
		assert.Equal(t, []string{"/post-02", "/post-01"}, slugs(posts))
	})

	t.Run("get post", func(t *testing.T) {
		post, err := service.Get("/post-03")
		require.NoError(t, err)
		assert.Equal(t, "Post 3", post.Title)
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := service.Get("/nope")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestPostServiceSync(t *testing.T) {
	repo := mock.NewPostRepository(makePosts(3)...)
	service := NewPostService(repo, zap.NewNop())

	t.Run("replaces stored posts", func(t *testing.T) {
		require.NoError(t, service.Sync(makePosts(1)))
		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects invalid posts", func(t *testing.T) {
		bad := makePosts(2)
		bad[1].Slug = "not a slug"
		err := service.Sync(bad)
		assert.ErrorContains(t, err, "invalid post")

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count, "store must be untouched")
	})

	t.Run("repository failure", func(t *testing.T) {
		failing := mock.NewPostRepository()
		failing.Err = errors.New("disk full")
		err := NewPostService(failing, zap.NewNop()).Sync(makePosts(1))
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestPostServiceListError(t *testing.T) {
	repo := mock.NewPostRepository()
	repo.Err = errors.New("boom")
	service := NewPostService(repo, zap.NewNop())

	_, err := service.All()
	assert.ErrorContains(t, err, "failed to list posts")

	_, err = service.Recent()
	assert.Error(t, err)
}

func TestPostServiceStatus(t *testing.T) {
	repo := mock.NewPostRepository()
	core, logs := observer.New(zap.InfoLevel)
	service := NewPostService(repo, zap.New(core))

	status, err := service.Status()
	require.NoError(t, err)
	assert.Equal(t, 0, status.Posts)
	assert.True(t, status.SyncedAt.IsZero(), "never synced")

	before := time.Now().UTC()
	require.NoError(t, service.Sync(makePosts(3)))

	status, err = service.Status()
	require.NoError(t, err)
	assert.Equal(t, 3, status.Posts)
	assert.False(t, status.SyncedAt.Before(before))

	entries := logs.FilterMessage("posts synced").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])

	t.Run("repository failure", func(t *testing.T) {
		repo.Err = errors.New("closed")
		defer func() { repo.Err = nil }()
		_, err := service.Status()
		assert.ErrorContains(t, err, "failed to count posts")
	})
}
