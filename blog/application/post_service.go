package application

import (
	"context"
	"fmt"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/rs/zerolog/log"
)

// PostService is the only entry point to the post collection.
// It turns raw request values into domain types and logs every mutation.
type PostService struct {
	repo domain.PostRepository
}

func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{
		repo: repo,
	}
}

// ListPosts returns all posts, optionally sorted.
// sortBy and direction are the raw query values; empty means unset.
func (s *PostService) ListPosts(ctx context.Context, sortBy, direction string) ([]*domain.Post, error) {
	opts, err := domain.ParseListOptions(sortBy, direction)
	if err != nil {
		log.Debug().Str("sort", sortBy).Str("direction", direction).Err(err).Msg("Rejected list query")
		return nil, err
	}

	posts, err := s.repo.ListPosts(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id int) (*domain.Post, error) {
	return s.repo.GetPost(ctx, id)
}

// CreatePost validates and stores a new post
func (s *PostService) CreatePost(ctx context.Context, title, content string) (*domain.Post, error) {
	post, err := s.repo.CreatePost(ctx, title, content)
	if err != nil {
		return nil, err
	}

	log.Info().Int("post_id", post.ID).Msg("Created post")
	return post, nil
}

// UpdatePost applies upd to the post with the given id.
// The result echoes the submitted fields rather than the stored post, so an
// omitted field comes back empty even though the stored value is kept.
func (s *PostService) UpdatePost(ctx context.Context, id int, upd domain.PostUpdate) (*domain.Post, error) {
	stored, err := s.repo.UpdatePost(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("post_id", stored.ID).
		Bool("title_changed", upd.Title != "").
		Bool("content_changed", upd.Content != "").
		Msg("Updated post")

	return &domain.Post{
		ID:      id,
		Title:   upd.Title,
		Content: upd.Content,
	}, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	log.Info().Int("post_id", id).Msg("Deleted post")
	return nil
}

// SearchPosts returns the posts whose title and content contain the given
// queries, ignoring case. Empty queries match every post.
func (s *PostService) SearchPosts(ctx context.Context, title, content string) ([]*domain.Post, error) {
	posts, err := s.repo.SearchPosts(ctx, domain.SearchQuery{Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return posts, nil
}
