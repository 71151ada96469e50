package persistence

import (
	"context"
	"sync"

	"github.com/dfryer1193/postboard/blog/domain"
)

var _ domain.PostRepository = (*MemoryPostRepository)(nil)

// MemoryPostRepository implements domain.PostRepository over an ordered slice.
// Readers share the lock; Create, Update and Delete hold it exclusively.
// Callers only ever receive copies of the stored posts.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts []*domain.Post
}

// NewMemoryPostRepository creates a repository holding copies of the given posts, in order.
func NewMemoryPostRepository(seed []*domain.Post) *MemoryPostRepository {
	posts := make([]*domain.Post, 0, len(seed))
	for _, p := range seed {
		posts = append(posts, clonePost(p))
	}

	return &MemoryPostRepository{posts: posts}
}

// ListPosts returns a snapshot of all posts, sorted according to opts
func (r *MemoryPostRepository) ListPosts(_ context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	r.mu.RLock()
	posts := r.snapshot()
	r.mu.RUnlock()

	domain.SortPosts(posts, opts)
	return posts, nil
}

// GetPost retrieves a single post by ID
func (r *MemoryPostRepository) GetPost(_ context.Context, id int) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrPostNotFound
	}

	return clonePost(r.posts[idx]), nil
}

// CreatePost appends a new post with the next available ID
func (r *MemoryPostRepository) CreatePost(_ context.Context, title, content string) (*domain.Post, error) {
	if err := domain.ValidateNewPost(title, content); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	post := &domain.Post{
		ID:      domain.NextID(r.posts),
		Title:   title,
		Content: content,
	}
	r.posts = append(r.posts, post)

	return clonePost(post), nil
}

// UpdatePost modifies the stored post in place
func (r *MemoryPostRepository) UpdatePost(_ context.Context, id int, upd domain.PostUpdate) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrPostNotFound
	}

	upd.Apply(r.posts[idx])
	return clonePost(r.posts[idx]), nil
}

// DeletePost removes the post with the given ID, keeping the order of the rest
func (r *MemoryPostRepository) DeletePost(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrPostNotFound
	}

	r.posts = append(r.posts[:idx], r.posts[idx+1:]...)
	return nil
}

// SearchPosts returns the posts matching q, in store order
func (r *MemoryPostRepository) SearchPosts(_ context.Context, q domain.SearchQuery) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*domain.Post, 0)
	for _, p := range r.posts {
		if q.Matches(p) {
			posts = append(posts, clonePost(p))
		}
	}

	return posts, nil
}

// indexOf must be called with the lock held.
func (r *MemoryPostRepository) indexOf(id int) int {
	for i, p := range r.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryPostRepository) snapshot() []*domain.Post {
	posts := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, clonePost(p))
	}
	return posts
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	return &c
}
