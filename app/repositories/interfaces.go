package repositories

import (
	"time"

	"portfolio/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Replace(posts []*models.Post) error
	GetBySlug(slug string) (*models.Post, error)
	List() ([]*models.Post, error)
	Count() (int, error)
	SyncedAt() (time.Time, error)
}
