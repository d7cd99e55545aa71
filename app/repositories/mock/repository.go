package mock

import (
	"sort"
	"sync"
	"time"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

type PostRepository struct {
	posts    map[string]*models.Post
	syncedAt time.Time
	mutex    sync.RWMutex

	// Err, when set, is returned by every method.
	Err error
}

func NewPostRepository(posts ...*models.Post) *PostRepository {
	m := &PostRepository{posts: make(map[string]*models.Post)}
	for _, p := range posts {
		m.posts[p.Slug] = p
	}
	return m
}

// PostRepository implementation
func (m *PostRepository) Replace(posts []*models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		m.posts[p.Slug] = p
	}
	m.syncedAt = time.Now().UTC()
	return nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	// Key order, like badger
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

func (m *PostRepository) Count() (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.posts), nil
}

func (m *PostRepository) SyncedAt() (time.Time, error) {
	if m.Err != nil {
		return time.Time{}, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.syncedAt, nil
}
