package memory

import (
	"context"
	"sync"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type PostRepository struct {
	posts map[string]models.Post
	mu    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]models.Post),
	}
}

func (r *PostRepository) UpsertPost(_ context.Context, post *models.Post) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.posts[post.ID]
	r.posts[post.ID] = *post

	return !exists, nil
}

func (r *PostRepository) FindByID(id string) (models.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]

	return post, ok
}

func (r *PostRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.posts)
}
