package domain

import (
	"context"
	"strings"
)

// Post represents a blog post.
// IDs are assigned by the repository on creation and never change afterwards.
type Post struct {
	ID      int
	Title   string
	Content string
}

// PostUpdate carries the fields submitted for an update.
// An empty field leaves the stored value untouched.
type PostUpdate struct {
	Title   string
	Content string
}

// Apply copies every non-empty field of the update onto p.
func (u PostUpdate) Apply(p *Post) {
	if u.Title != "" {
		p.Title = u.Title
	}
	if u.Content != "" {
		p.Content = u.Content
	}
}

// SearchQuery holds the case-insensitive substring filters used by SearchPosts.
type SearchQuery struct {
	Title   string
	Content string
}

// Matches reports whether p satisfies both filters. An empty filter matches everything.
func (q SearchQuery) Matches(p *Post) bool {
	return containsFold(p.Title, q.Title) && containsFold(p.Content, q.Content)
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ValidateNewPost checks the fields required to create a post.
// Title is checked before content.
func ValidateNewPost(title, content string) error {
	if title == "" {
		return ErrTitleMissing
	}
	if content == "" {
		return ErrContentMissing
	}
	return nil
}

// NextID returns the identifier the next created post receives: one more than
// the highest existing id, or 1 for an empty collection. Deleting the
// highest-numbered post makes its id available again.
func NextID(posts []*Post) int {
	maxID := 0
	for _, p := range posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// SeedPosts returns the posts a fresh store starts with.
func SeedPosts() []*Post {
	return []*Post{
		{ID: 1, Title: "First post", Content: "This is the first post."},
		{ID: 2, Title: "Second post", Content: "This is the second post."},
	}
}

type PostRepository interface {
	// ListPosts returns every post, in store order unless opts requests a sort.
	ListPosts(ctx context.Context, opts ListOptions) ([]*Post, error)
	GetPost(ctx context.Context, id int) (*Post, error)
	// CreatePost validates the fields, assigns the next id and appends the post.
	CreatePost(ctx context.Context, title, content string) (*Post, error)
	// UpdatePost applies upd to the stored post and returns its resulting state.
	UpdatePost(ctx context.Context, id int, upd PostUpdate) (*Post, error)
	DeletePost(ctx context.Context, id int) error
	SearchPosts(ctx context.Context, q SearchQuery) ([]*Post, error)
}
