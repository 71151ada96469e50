package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfryer1193/postboard/blog/domain"
)

// repoFactory builds a repository holding the seed posts
type repoFactory func(t *testing.T, seed []*domain.Post) domain.PostRepository

// runRepositoryTests exercises the behavior every domain.PostRepository must share
func runRepositoryTests(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("list in store order", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, domain.SeedPosts(), posts)
	})

	t.Run("list sorted by title", func(t *testing.T) {
		repo := newRepo(t, []*domain.Post{
			{ID: 1, Title: "banana", Content: "x"},
			{ID: 2, Title: "apple", Content: "y"},
			{ID: 3, Title: "cherry", Content: "z"},
			{ID: 4, Title: "apple", Content: "w"},
		})

		asc, err := repo.ListPosts(ctx, domain.ListOptions{SortBy: domain.SortByTitle})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 1, 3}, ids(asc))

		desc, err := repo.ListPosts(ctx, domain.ListOptions{SortBy: domain.SortByTitle, Direction: domain.DirectionDesc})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2, 4}, ids(desc))
	})

	t.Run("list sorted by content", func(t *testing.T) {
		repo := newRepo(t, []*domain.Post{
			{ID: 1, Title: "a", Content: "beta"},
			{ID: 2, Title: "b", Content: "Alpha"},
			{ID: 3, Title: "c", Content: "alpha"},
		})

		posts, err := repo.ListPosts(ctx, domain.ListOptions{SortBy: domain.SortByContent, Direction: domain.DirectionAsc})
		require.NoError(t, err)
		// byte order puts upper case first
		assert.Equal(t, []int{2, 3, 1}, ids(posts))
	})

	t.Run("list does not expose stored posts", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		posts[0].Title = "mutated"

		stored, err := repo.GetPost(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "First post", stored.Title)
	})

	t.Run("create assigns max plus one", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		post, err := repo.CreatePost(ctx, "Hi", "Bye")
		require.NoError(t, err)
		assert.Equal(t, &domain.Post{ID: 3, Title: "Hi", Content: "Bye"}, post)

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, ids(posts))
	})

	t.Run("create on empty store starts at one", func(t *testing.T) {
		repo := newRepo(t, nil)

		post, err := repo.CreatePost(ctx, "Hi", "Bye")
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
	})

	t.Run("create after gaps uses the maximum", func(t *testing.T) {
		repo := newRepo(t, []*domain.Post{{ID: 7, Title: "a", Content: "b"}, {ID: 3, Title: "c", Content: "d"}})

		post, err := repo.CreatePost(ctx, "Hi", "Bye")
		require.NoError(t, err)
		assert.Equal(t, 8, post.ID)
	})

	t.Run("create reuses id of deleted highest post", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		require.NoError(t, repo.DeletePost(ctx, 2))
		post, err := repo.CreatePost(ctx, "Hi", "Bye")
		require.NoError(t, err)
		assert.Equal(t, 2, post.ID)
	})

	t.Run("create rejects empty fields", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		_, err := repo.CreatePost(ctx, "", "Bye")
		assert.ErrorIs(t, err, domain.ErrTitleMissing)

		_, err = repo.CreatePost(ctx, "Hi", "")
		assert.ErrorIs(t, err, domain.ErrContentMissing)

		_, err = repo.CreatePost(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrTitleMissing)

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("get missing post", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		_, err := repo.GetPost(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("update replaces only non-empty fields", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		post, err := repo.UpdatePost(ctx, 1, domain.PostUpdate{Content: "New"})
		require.NoError(t, err)
		assert.Equal(t, &domain.Post{ID: 1, Title: "First post", Content: "New"}, post)

		post, err = repo.UpdatePost(ctx, 1, domain.PostUpdate{Title: "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, &domain.Post{ID: 1, Title: "Renamed", Content: "New"}, post)

		stored, err := repo.GetPost(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, post, stored)
	})

	t.Run("update with no fields is a no-op", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		post, err := repo.UpdatePost(ctx, 2, domain.PostUpdate{})
		require.NoError(t, err)
		assert.Equal(t, domain.SeedPosts()[1], post)
	})

	t.Run("update missing post", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		_, err := repo.UpdatePost(ctx, 42, domain.PostUpdate{Title: "x"})
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("delete keeps the others in order", func(t *testing.T) {
		repo := newRepo(t, []*domain.Post{
			{ID: 1, Title: "a", Content: "a"},
			{ID: 2, Title: "b", Content: "b"},
			{ID: 3, Title: "c", Content: "c"},
		})

		require.NoError(t, repo.DeletePost(ctx, 2))

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, ids(posts))
	})

	t.Run("delete missing post leaves store untouched", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		err := repo.DeletePost(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, domain.SeedPosts(), posts)
	})

	t.Run("search", func(t *testing.T) {
		repo := newRepo(t, domain.SeedPosts())

		tests := []struct {
			name  string
			query domain.SearchQuery
			want  []int
		}{
			{name: "empty returns all", query: domain.SearchQuery{}, want: []int{1, 2}},
			{name: "title substring", query: domain.SearchQuery{Title: "post"}, want: []int{1, 2}},
			{name: "title case insensitive", query: domain.SearchQuery{Title: "SECOND"}, want: []int{2}},
			{name: "no match", query: domain.SearchQuery{Title: "xyz"}, want: []int{}},
			{name: "content", query: domain.SearchQuery{Content: "first"}, want: []int{1}},
			{name: "both must match", query: domain.SearchQuery{Title: "first", Content: "second"}, want: []int{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				posts, err := repo.SearchPosts(ctx, tt.query)
				require.NoError(t, err)
				assert.NotNil(t, posts)
				assert.Equal(t, tt.want, ids(posts))
			})
		}
	})

	t.Run("concurrent creates get unique ids", func(t *testing.T) {
		repo := newRepo(t, nil)

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.CreatePost(ctx, fmt.Sprintf("title %d", i), "content")
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		posts, err := repo.ListPosts(ctx, domain.ListOptions{})
		require.NoError(t, err)
		require.Len(t, posts, n)

		seen := make(map[int]bool)
		for _, p := range posts {
			assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
			seen[p.ID] = true
		}
	})
}

func ids(posts []*domain.Post) []int {
	out := make([]int, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
