package services

import (
	"fmt"
	"time"

	"portfolio/app/models"
	"portfolio/app/repositories"

	"go.uber.org/zap"
)

// RecentLimit is how many posts the home page shows.
const RecentLimit = 4

// PostService handles read access to blog posts
type PostService struct {
	postRepo repositories.PostRepository
	logger   *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		logger:   logger,
	}
}

// All returns every post, newest first.
func (s *PostService) All() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	models.SortByDateDesc(posts)
	return posts, nil
}

// Recent returns at most RecentLimit posts, newest first.
func (s *PostService) Recent() ([]*models.Post, error) {
	posts, err := s.All()
	if err != nil {
		return nil, err
	}
	if len(posts) > RecentLimit {
		posts = posts[:RecentLimit]
	}
	return posts, nil
}

// Get retrieves a post by slug
func (s *PostService) Get(slug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(slug)
}

// Sync replaces the stored posts after validating each of them.
func (s *PostService) Sync(posts []*models.Post) error {
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid post %s: %w", p.ID, err)
		}
	}
	if err := s.postRepo.Replace(posts); err != nil {
		return fmt.Errorf("failed to store posts: %w", err)
	}

	status, err := s.Status()
	if err != nil {
		return err
	}
	s.logger.Info("posts synced", zap.Int("count", status.Posts), zap.Time("synced_at", status.SyncedAt))
	return nil
}

// IndexStatus describes the stored post set.
type IndexStatus struct {
	Posts    int       `json:"posts" yaml:"posts"`
	SyncedAt time.Time `json:"synced_at" yaml:"synced_at"`
}

// Status reports how many posts are stored and when they were last synced.
func (s *PostService) Status() (IndexStatus, error) {
	count, err := s.postRepo.Count()
	if err != nil {
		return IndexStatus{}, fmt.Errorf("failed to count posts: %w", err)
	}
	syncedAt, err := s.postRepo.SyncedAt()
	if err != nil {
		return IndexStatus{}, fmt.Errorf("failed to read sync time: %w", err)
	}
	return IndexStatus{Posts: count, SyncedAt: syncedAt}, nil
}
