package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/dfryer1193/postboard/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository on top of an
// in-memory SQLite database. Store order is the order of the seq column.
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const insertPostQuery = `
	INSERT INTO posts (id, title, content)
	VALUES (?, ?, ?)
`

// Seed inserts posts with their existing IDs, in order, within one transaction
func (r *SQLitePostRepository) Seed(ctx context.Context, posts []*domain.Post) error {
	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		for _, p := range posts {
			if _, err := executor.ExecContext(txCtx, insertPostQuery, p.ID, p.Title, p.Content); err != nil {
				return fmt.Errorf("failed to seed post %d: %w", p.ID, err)
			}
		}
		return nil
	})
}

// orderClause returns the ORDER BY clause for opts. seq breaks ties so that
// equal keys stay in store order in both directions.
func orderClause(opts domain.ListOptions) (string, error) {
	var column string
	switch opts.SortBy {
	case domain.SortNone:
		return "seq", nil
	case domain.SortByTitle:
		column = "title"
	case domain.SortByContent:
		column = "content"
	default:
		return "", domain.ErrWrongSortValue
	}

	switch opts.Direction {
	case domain.DirectionNone, domain.DirectionAsc:
		return column + " ASC, seq", nil
	case domain.DirectionDesc:
		return column + " DESC, seq", nil
	default:
		return "", domain.ErrWrongSortDirection
	}
}

// ListPosts retrieves all posts in the order requested by opts
func (r *SQLitePostRepository) ListPosts(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	order, err := orderClause(opts)
	if err != nil {
		return nil, err
	}

	return r.queryPosts(ctx, "SELECT id, title, content FROM posts ORDER BY "+order)
}

const getPostQuery = `
	SELECT id, title, content
	FROM posts
	WHERE id = ?
`

// GetPost retrieves a single post by ID
func (r *SQLitePostRepository) GetPost(ctx context.Context, id int) (*domain.Post, error) {
	executor := db.GetExecutor(ctx, r.db)

	var p domain.Post
	err := executor.QueryRowContext(ctx, getPostQuery, id).Scan(&p.ID, &p.Title, &p.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &p, nil
}

const nextIDQuery = `SELECT COALESCE(MAX(id), 0) + 1 FROM posts`

// CreatePost inserts a new post with the next available ID
func (r *SQLitePostRepository) CreatePost(ctx context.Context, title, content string) (*domain.Post, error) {
	if err := domain.ValidateNewPost(title, content); err != nil {
		return nil, err
	}

	post := &domain.Post{Title: title, Content: content}
	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		if err := executor.QueryRowContext(txCtx, nextIDQuery).Scan(&post.ID); err != nil {
			return fmt.Errorf("failed to compute next post id: %w", err)
		}

		if _, err := executor.ExecContext(txCtx, insertPostQuery, post.ID, post.Title, post.Content); err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Empty parameters keep the stored column value.
const updatePostQuery = `
	UPDATE posts
	SET title = COALESCE(NULLIF(?, ''), title),
		content = COALESCE(NULLIF(?, ''), content)
	WHERE id = ?
`

// UpdatePost applies the non-empty fields of upd and returns the stored result
func (r *SQLitePostRepository) UpdatePost(ctx context.Context, id int, upd domain.PostUpdate) (*domain.Post, error) {
	var updated *domain.Post
	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		res, err := executor.ExecContext(txCtx, updatePostQuery, upd.Title, upd.Content, id)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		updated, err = r.GetPost(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

const deletePostQuery = `DELETE FROM posts WHERE id = ?`

// DeletePost removes the post with the given ID
func (r *SQLitePostRepository) DeletePost(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deletePostQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return requireAffected(res)
}

// SearchPosts returns the posts matching q, in store order.
// Matching happens in Go because SQLite's lower() only folds ASCII.
func (r *SQLitePostRepository) SearchPosts(ctx context.Context, q domain.SearchQuery) ([]*domain.Post, error) {
	all, err := r.queryPosts(ctx, "SELECT id, title, content FROM posts ORDER BY seq")
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, 0, len(all))
	for _, p := range all {
		if q.Matches(p) {
			posts = append(posts, p)
		}
	}

	return posts, nil
}

func (r *SQLitePostRepository) queryPosts(ctx context.Context, query string) ([]*domain.Post, error) {
	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
